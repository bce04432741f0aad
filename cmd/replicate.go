package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queuesim/queuesim/sim/replicate"
)

// replicateCmd runs independent replications of one configuration in parallel
var replicateCmd = &cobra.Command{
	Use:   "replicate",
	Short: "Run independent replications and print confidence intervals",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting %d replications from seed %d (parallelism %d)", replications, cfg.Seed, parallelism)
		reps, err := replicate.Run(cmd.Context(), cfg, replications, parallelism)
		if err != nil {
			logrus.Fatalf("Replications failed: %v", err)
		}
		replicate.Summarize(reps).Print(os.Stdout)
		printAnalytic(cfg, os.Stdout)
	},
}
