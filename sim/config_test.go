package sim

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_RejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative horizon", func(c *Config) { c.Horizon = -1 }},
		{"NaN horizon", func(c *Config) { c.Horizon = math.NaN() }},
		{"infinite horizon", func(c *Config) { c.Horizon = math.Inf(1) }},
		{"no clients", func(c *Config) { c.NumClients = 0 }},
		{"zero arrival rate", func(c *Config) { c.ArrivalRate = 0 }},
		{"NaN arrival rate", func(c *Config) { c.ArrivalRate = math.NaN() }},
		{"no servers", func(c *Config) { c.NumServers = 0 }},
		{"negative service rate", func(c *Config) { c.ServiceRate = -8 }},
		{"server rates length mismatch", func(c *Config) { c.ServerRates = []float64{1, 2} }},
		{"zero server rate", func(c *Config) { c.ServerRates = []float64{0} }},
		{"negative queue capacity", func(c *Config) { c.QueueCapacity = -1 }},
		{"no destinations", func(c *Config) { c.Destinations = nil }},
		{"empty destination", func(c *Config) { c.Destinations = []string{""} }},
		{"duplicate destination", func(c *Config) { c.Destinations = []string{"a", "a"} }},
		{"unknown trace level", func(c *Config) { c.Trace = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_Validate_AcceptsEdgeValues(t *testing.T) {
	cfg := testConfig()
	cfg.Horizon = 0
	cfg.QueueCapacity = 0
	cfg.ServiceRate = 0 // ignored when per-server rates are given
	cfg.NumServers = 2
	cfg.ServerRates = []float64{1, 3}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Rates(t *testing.T) {
	cfg := testConfig()
	cfg.NumServers = 3
	assert.Equal(t, []float64{8, 8, 8}, cfg.Rates())

	cfg.ServerRates = []float64{1, 2, 3}
	rates := cfg.Rates()
	assert.Equal(t, []float64{1, 2, 3}, rates)

	// returned slice is a copy
	rates[0] = 99
	assert.Equal(t, 1.0, cfg.ServerRates[0])
}

func TestConfig_HomogeneousRate(t *testing.T) {
	cfg := testConfig()
	cfg.NumServers = 2
	mu, ok := cfg.HomogeneousRate()
	assert.True(t, ok)
	assert.Equal(t, 8.0, mu)

	cfg.ServerRates = []float64{4, 4}
	mu, ok = cfg.HomogeneousRate()
	assert.True(t, ok)
	assert.Equal(t, 4.0, mu)

	cfg.ServerRates = []float64{4, 5}
	_, ok = cfg.HomogeneousRate()
	assert.False(t, ok)
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	// GIVEN a file that sets only some fields
	path := writeConfigFile(t, `
seed: 99
num_servers: 2
server_rates: [3.5, 7]
destinations: [east, west, north]
`)

	// WHEN loaded
	cfg, err := LoadConfig(path)

	// THEN file values win and everything else keeps its default
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 2, cfg.NumServers)
	assert.Equal(t, []float64{3.5, 7}, cfg.ServerRates)
	assert.Equal(t, []string{"east", "west", "north"}, cfg.Destinations)
	assert.Equal(t, def.Horizon, cfg.Horizon)
	assert.Equal(t, def.ArrivalRate, cfg.ArrivalRate)
	assert.Equal(t, def.QueueCapacity, cfg.QueueCapacity)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_UnknownField_Rejected(t *testing.T) {
	path := writeConfigFile(t, "seed: 1\nservice_rte: 3\n")

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_rte")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
