package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queuesim/queuesim/sim"
	"github.com/queuesim/queuesim/sim/analytic"
	"github.com/queuesim/queuesim/sim/trace"
)

// runCmd executes one simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation and print its metrics",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if traceOut != "" || printTable {
			cfg.Trace = string(trace.TraceLevelEvents)
		}

		opts := runOptions{TracePath: traceOut, Table: printTable, ResultsPath: resultsPath}
		if err := runSimulation(cfg, opts, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runOptions are the output settings of a single run.
type runOptions struct {
	TracePath   string // JSON Lines trace file, "" for none
	Table       bool   // print the trace table before the report
	ResultsPath string // JSON result file, "" for none
}

// runSimulation builds the engine and its trace sinks, runs it and writes
// the report to out.
func runSimulation(cfg sim.Config, opts runOptions, out io.Writer) error {
	tracePath := opts.TracePath
	var sinks sim.MultiTraceSink
	var recorder *sim.TraceRecorder
	if opts.Table || trace.TraceLevel(cfg.Trace) == trace.TraceLevelEvents {
		recorder = sim.NewTraceRecorder()
		sinks = append(sinks, recorder)
	}

	var jw *trace.JSONLWriter
	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			return fmt.Errorf("creating trace file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				logrus.Errorf("Error closing trace file %s: %v", tracePath, closeErr)
			}
		}()
		jw = trace.NewJSONLWriter(f)
		sinks = append(sinks, sim.JSONLTraceSink{W: jw})
	}

	var sink sim.TraceSink = sim.NopTraceSink{}
	if len(sinks) > 0 {
		sink = sinks
	}
	eng, err := sim.NewEngine(cfg, sink)
	if err != nil {
		return err
	}
	if jw != nil {
		if err := jw.WriteHeader(trace.Header{RunID: eng.RunID(), Seed: cfg.Seed}); err != nil {
			return err
		}
	}

	logrus.Infof("Starting simulation: clients=%d lambda=%.3f servers=%d rates=%v capacity=%d destinations=%v horizon=%.3f",
		cfg.NumClients, cfg.ArrivalRate, cfg.NumServers, cfg.Rates(), cfg.QueueCapacity, cfg.Destinations, cfg.Horizon)
	startTime := time.Now()
	res, err := eng.Run()
	if err != nil {
		return err
	}
	logrus.Infof("Simulation took %s", time.Since(startTime))

	if jw != nil {
		if err := jw.Flush(); err != nil {
			return err
		}
	}
	if opts.Table && recorder != nil {
		if err := trace.WriteTable(out, recorder.Trace.Events); err != nil {
			return fmt.Errorf("writing trace table: %w", err)
		}
	}
	res.Print(out)
	if opts.ResultsPath != "" {
		if err := res.SaveJSON(opts.ResultsPath); err != nil {
			return err
		}
		logrus.Infof("Results written to %s", opts.ResultsPath)
	}
	printAnalytic(cfg, out)
	if recorder != nil {
		s := trace.Summarize(recorder.Trace)
		fmt.Fprintf(out, "Trace                : %d events (%d SEND, %d ARRIVE, %d DEPART) from %d sources\n",
			s.TotalEvents, s.ByKind["SEND"], s.ByKind["ARRIVE"], s.ByKind["DEPART"], s.UniqueSource)
	}
	return nil
}

// printAnalytic prints the M/M/c/K prediction for one gateway when every
// server shares one rate. Traffic is split evenly over the destinations.
func printAnalytic(cfg sim.Config, out io.Writer) {
	mu, ok := cfg.HomogeneousRate()
	if !ok {
		logrus.Debug("Heterogeneous server rates; skipping analytic comparison")
		return
	}
	lambda := float64(cfg.NumClients) * cfg.ArrivalRate / float64(len(cfg.Destinations))
	m, err := analytic.NewMMcK(lambda, mu, cfg.NumServers, cfg.QueueCapacity)
	if err != nil {
		logrus.Warnf("Analytic model unavailable: %v", err)
		return
	}
	fmt.Fprintln(out, "--- M/M/c/K prediction per gateway ---")
	fmt.Fprintf(out, "Blocking Probability : %.6f\n", m.BlockingProbability())
	fmt.Fprintf(out, "Utilization          : %.6f\n", m.Utilization())
	fmt.Fprintf(out, "Mean Queue Wait      : %.6f s\n", m.MeanQueueWait())
	fmt.Fprintf(out, "Mean Sojourn         : %.6f s\n", m.MeanSojourn())
}
