package replicate

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Estimate is a sample mean with its spread across replications.
type Estimate struct {
	N      int
	Mean   float64
	StdDev float64
	// HalfWidth is the half-width of the 95% Student t confidence interval.
	HalfWidth float64
}

// Summary aggregates the all-gateway totals of each replication.
type Summary struct {
	Replications   int
	DropRate       Estimate
	AvgQueueDelay  Estimate
	AvgServerDelay Estimate
	Served         Estimate
	Dropped        Estimate
}

// Summarize computes per-metric estimates. Safe for an empty slice.
func Summarize(reps []Replication) Summary {
	n := len(reps)
	dropRate := make([]float64, 0, n)
	queueDelay := make([]float64, 0, n)
	serverDelay := make([]float64, 0, n)
	served := make([]float64, 0, n)
	dropped := make([]float64, 0, n)
	for _, r := range reps {
		t := r.Result.Totals()
		dropRate = append(dropRate, t.DropRate)
		queueDelay = append(queueDelay, t.AvgQueueDelay)
		serverDelay = append(serverDelay, t.AvgServerDelay)
		served = append(served, float64(t.Served))
		dropped = append(dropped, float64(t.Dropped))
	}
	return Summary{
		Replications:   n,
		DropRate:       estimate(dropRate),
		AvgQueueDelay:  estimate(queueDelay),
		AvgServerDelay: estimate(serverDelay),
		Served:         estimate(served),
		Dropped:        estimate(dropped),
	}
}

func estimate(xs []float64) Estimate {
	e := Estimate{N: len(xs)}
	switch len(xs) {
	case 0:
		return e
	case 1:
		e.Mean = xs[0]
		return e
	}
	e.Mean, e.StdDev = stat.MeanStdDev(xs, nil)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(len(xs) - 1)}.Quantile(0.975)
	e.HalfWidth = t * e.StdDev / math.Sqrt(float64(len(xs)))
	return e
}

// Print writes the summary as "mean ± half-width" rows.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Replication Summary ===")
	fmt.Fprintf(w, "Replications         : %d\n", s.Replications)
	fmt.Fprintf(w, "Drop Rate            : %.6f ± %.6f\n", s.DropRate.Mean, s.DropRate.HalfWidth)
	fmt.Fprintf(w, "Average Queue Delay  : %.6f ± %.6f s\n", s.AvgQueueDelay.Mean, s.AvgQueueDelay.HalfWidth)
	fmt.Fprintf(w, "Average Server Delay : %.6f ± %.6f s\n", s.AvgServerDelay.Mean, s.AvgServerDelay.HalfWidth)
	fmt.Fprintf(w, "Served               : %.1f ± %.1f\n", s.Served.Mean, s.Served.HalfWidth)
	fmt.Fprintf(w, "Dropped              : %.1f ± %.1f\n", s.Dropped.Mean, s.Dropped.HalfWidth)
}
