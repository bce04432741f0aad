// Package replicate runs independent replications of one simulation config in
// parallel and summarizes them. Each replication is a separate single-threaded
// sim.Engine; only whole runs execute concurrently.
package replicate

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/queuesim/queuesim/sim"
)

// Replication is one finished run.
type Replication struct {
	Index  int
	Seed   int64
	Result *sim.Result
}

// Run executes n replications of cfg, the i-th with seed cfg.Seed+i, at most
// parallelism at a time (0 means unlimited). Results are ordered by index.
// The first failing replication cancels those not yet started.
func Run(ctx context.Context, cfg sim.Config, n, parallelism int) ([]Replication, error) {
	if n < 1 {
		return nil, fmt.Errorf("replications must be >= 1, got %d", n)
	}
	if parallelism < 0 {
		return nil, fmt.Errorf("parallelism must be >= 0, got %d", parallelism)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	out := make([]Replication, n)
	for i := 0; i < n; i++ {
		i := i // per-iteration copy; go 1.21 directive lacks Go 1.22 loopvar semantics
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := cfg
			c.Seed = cfg.Seed + int64(i)
			c.Destinations = append([]string(nil), cfg.Destinations...)
			c.ServerRates = append([]float64(nil), cfg.ServerRates...)
			eng, err := sim.NewEngine(c, nil)
			if err != nil {
				return fmt.Errorf("replication %d: %w", i, err)
			}
			res, err := eng.Run()
			if err != nil {
				return fmt.Errorf("replication %d: %w", i, err)
			}
			logrus.Debugf("replication %d (seed %d) finished: run %s", i, c.Seed, res.RunID)
			out[i] = Replication{Index: i, Seed: c.Seed, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
