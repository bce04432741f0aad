package cmd

import (
	"github.com/spf13/pflag"

	"github.com/queuesim/queuesim/sim"
)

// resolveConfig starts from DefaultConfig or the --config file and applies
// every model flag the user set explicitly. Flag defaults never overwrite
// values that came from the file.
func resolveConfig(flags *pflag.FlagSet) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	applyFlagOverrides(&cfg, flags)
	return cfg, cfg.Validate()
}

// applyFlagOverrides copies each changed flag into cfg.
func applyFlagOverrides(cfg *sim.Config, flags *pflag.FlagSet) {
	// a file-less run takes every flag value, including defaults
	useAll := configPath == ""
	set := func(name string) bool { return useAll || flags.Changed(name) }

	if set("seed") {
		cfg.Seed = seed
	}
	if set("horizon") {
		cfg.Horizon = horizon
	}
	if set("clients") {
		cfg.NumClients = numClients
	}
	if set("lambda") {
		cfg.ArrivalRate = arrivalRate
	}
	if set("servers") {
		cfg.NumServers = numServers
	}
	if set("mu") {
		cfg.ServiceRate = serviceRate
	}
	if set("server-rates") {
		cfg.ServerRates = append([]float64(nil), serverRates...)
	}
	if set("queue-capacity") {
		cfg.QueueCapacity = queueCapacity
	}
	if set("destinations") {
		cfg.Destinations = append([]string(nil), destinations...)
	}
	if flags.Lookup("trace") != nil && set("trace") {
		cfg.Trace = traceLevel
	}
}
