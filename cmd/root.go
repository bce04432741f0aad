package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared by run and replicate
	configPath    string    // YAML config file (optional)
	seed          int64     // Master seed for every RNG stream
	horizon       float64   // Simulation horizon (simulated seconds)
	logLevel      string    // Log verbosity level
	numClients    int       // Number of Poisson arrival sources
	arrivalRate   float64   // λ per client
	numServers    int       // Servers per gateway
	serviceRate   float64   // μ shared by all servers
	serverRates   []float64 // Per-server μ (overrides --mu)
	queueCapacity int       // Queue slots per gateway
	destinations  []string  // Gateway labels

	// run only
	traceLevel  string // none | events
	traceOut    string // JSON Lines trace output path
	printTable  bool   // Print the trace table to stdout
	resultsPath string // JSON result output path

	// replicate only
	replications int // Number of independent runs
	parallelism  int // Max concurrent runs (0 = unlimited)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queuesim",
	Short: "Discrete-event simulator for bounded multi-server queueing gateways",
}

// setupLogging applies --log to the global logrus logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addModelFlags registers the flags describing the simulated system.
func addModelFlags(c *cobra.Command) {
	c.Flags().StringVar(&configPath, "config", "", "YAML simulation config; explicit flags override its values")
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for all random draws")
	c.Flags().Float64Var(&horizon, "horizon", 10.0, "Simulation horizon (simulated seconds)")
	c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	c.Flags().IntVar(&numClients, "clients", 3, "Number of Poisson arrival sources")
	c.Flags().Float64Var(&arrivalRate, "lambda", 4.0, "Arrival rate per client (messages per second)")
	c.Flags().IntVar(&numServers, "servers", 1, "Servers per gateway")
	c.Flags().Float64Var(&serviceRate, "mu", 8.0, "Service rate shared by every server")
	c.Flags().Float64SliceVar(&serverRates, "server-rates", nil, "Comma-separated per-server service rates (overrides --mu)")
	c.Flags().IntVar(&queueCapacity, "queue-capacity", 10, "Queue capacity per gateway")
	c.Flags().StringSliceVar(&destinations, "destinations", []string{"1", "2"}, "Comma-separated gateway labels")
}

// init sets up CLI flags and subcommands
func init() {
	addModelFlags(runCmd)
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, events)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the event trace as JSON Lines to this file (implies --trace events)")
	runCmd.Flags().BoolVar(&printTable, "table", false, "Print the event trace as a table (implies --trace events)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Also write the run metrics as JSON to this file")

	addModelFlags(replicateCmd)
	replicateCmd.Flags().IntVar(&replications, "replications", 10, "Number of independent replications")
	replicateCmd.Flags().IntVar(&parallelism, "parallelism", 0, "Maximum concurrent replications (0 = unlimited)")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replicateCmd)
}
