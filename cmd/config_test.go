package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queuesim/queuesim/sim"
)

// parseModelFlags registers the model flags on a fresh command and parses args.
func parseModelFlags(t *testing.T, withTrace bool, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addModelFlags(c)
	if withTrace {
		c.Flags().StringVar(&traceLevel, "trace", "none", "")
	}
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolveConfig_NoFile_FlagDefaultsMatchDefaultConfig(t *testing.T) {
	c := parseModelFlags(t, true)

	cfg, err := resolveConfig(c.Flags())

	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

func TestResolveConfig_NoFile_FlagsApplied(t *testing.T) {
	c := parseModelFlags(t, false, "--lambda", "2.5", "--servers", "2", "--server-rates", "3,4",
		"--destinations", "a,b,c", "--queue-capacity", "0", "--seed", "11")

	cfg, err := resolveConfig(c.Flags())

	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.ArrivalRate)
	assert.Equal(t, 2, cfg.NumServers)
	assert.Equal(t, []float64{3, 4}, cfg.ServerRates)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Destinations)
	assert.Equal(t, 0, cfg.QueueCapacity)
	assert.Equal(t, int64(11), cfg.Seed)
}

// TestResolveConfig_FileThenExplicitFlags verifies only flags the user typed override the file.
func TestResolveConfig_FileThenExplicitFlags(t *testing.T) {
	// GIVEN a config file with seed 99 and λ 1.5
	path := writeYAML(t, "seed: 99\narrival_rate: 1.5\nnum_clients: 5\n")

	// WHEN --seed is passed explicitly
	c := parseModelFlags(t, false, "--config", path, "--seed", "5")
	cfg, err := resolveConfig(c.Flags())

	// THEN the flag wins for seed, the file for everything it sets
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.Seed)
	assert.Equal(t, 1.5, cfg.ArrivalRate)
	assert.Equal(t, 5, cfg.NumClients)
	// untouched fields keep DefaultConfig values, not flag defaults
	assert.Equal(t, sim.DefaultConfig().QueueCapacity, cfg.QueueCapacity)
}

func TestResolveConfig_TraceFlagOnlyWhenRegistered(t *testing.T) {
	path := writeYAML(t, "trace: events\n")

	c := parseModelFlags(t, false, "--config", path)
	cfg, err := resolveConfig(c.Flags())
	require.NoError(t, err)
	assert.Equal(t, "events", cfg.Trace)

	c = parseModelFlags(t, true, "--config", path, "--trace", "none")
	cfg, err = resolveConfig(c.Flags())
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Trace)
}

func TestResolveConfig_Invalid(t *testing.T) {
	c := parseModelFlags(t, false, "--servers", "0")
	_, err := resolveConfig(c.Flags())
	assert.Error(t, err)

	c = parseModelFlags(t, false, "--config", writeYAML(t, "bogus_key: 1\n"))
	_, err = resolveConfig(c.Flags())
	assert.Error(t, err)
}
