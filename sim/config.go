package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/queuesim/queuesim/sim/trace"
)

// Config groups every construction parameter of a simulation.
// Loaded from YAML via LoadConfig(path) or built from CLI flags.
type Config struct {
	Seed int64 `yaml:"seed"`
	// Horizon is the last logical time (simulated seconds) that is processed.
	Horizon    float64 `yaml:"horizon"`
	NumClients int     `yaml:"num_clients"`
	// ArrivalRate is λ of each client.
	ArrivalRate float64 `yaml:"arrival_rate"`
	// NumServers and QueueCapacity apply to every gateway.
	NumServers  int     `yaml:"num_servers"`
	ServiceRate float64 `yaml:"service_rate"`
	// ServerRates gives each server its own μ and overrides ServiceRate.
	ServerRates   []float64 `yaml:"server_rates,omitempty"`
	QueueCapacity int       `yaml:"queue_capacity"`
	// Destinations are the gateway labels; one gateway per label.
	Destinations []string `yaml:"destinations"`
	Trace        string   `yaml:"trace,omitempty"`
}

// DefaultConfig returns the parameters of the reference demo run.
func DefaultConfig() Config {
	return Config{
		Seed:          42,
		Horizon:       10.0,
		NumClients:    3,
		ArrivalRate:   4.0,
		NumServers:    1,
		ServiceRate:   8.0,
		QueueCapacity: 10,
		Destinations:  []string{"1", "2"},
		Trace:         string(trace.TraceLevelNone),
	}
}

// LoadConfig reads and parses a YAML simulation config on top of
// DefaultConfig. Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Rates returns the service rate of each server of a gateway.
func (c *Config) Rates() []float64 {
	if len(c.ServerRates) > 0 {
		return append([]float64(nil), c.ServerRates...)
	}
	rates := make([]float64, c.NumServers)
	for i := range rates {
		rates[i] = c.ServiceRate
	}
	return rates
}

// HomogeneousRate returns the common μ when all servers share one rate.
func (c *Config) HomogeneousRate() (float64, bool) {
	rates := c.Rates()
	if len(rates) == 0 {
		return 0, false
	}
	for _, r := range rates[1:] {
		if r != rates[0] {
			return 0, false
		}
	}
	return rates[0], true
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if math.IsNaN(c.Horizon) || math.IsInf(c.Horizon, 0) || c.Horizon < 0 {
		return fmt.Errorf("horizon must be a finite non-negative number, got %f", c.Horizon)
	}
	if c.NumClients < 1 {
		return fmt.Errorf("num_clients must be >= 1, got %d", c.NumClients)
	}
	if err := validateFinitePositive("arrival_rate", c.ArrivalRate); err != nil {
		return err
	}
	if c.NumServers < 1 {
		return fmt.Errorf("num_servers must be >= 1, got %d", c.NumServers)
	}
	if len(c.ServerRates) > 0 {
		if len(c.ServerRates) != c.NumServers {
			return fmt.Errorf("server_rates has %d entries, want num_servers=%d", len(c.ServerRates), c.NumServers)
		}
		for i, r := range c.ServerRates {
			if err := validateFinitePositive(fmt.Sprintf("server_rates[%d]", i), r); err != nil {
				return err
			}
		}
	} else if err := validateFinitePositive("service_rate", c.ServiceRate); err != nil {
		return err
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("queue_capacity must be >= 0, got %d", c.QueueCapacity)
	}
	if len(c.Destinations) == 0 {
		return fmt.Errorf("at least one destination required")
	}
	seen := make(map[string]bool, len(c.Destinations))
	for _, d := range c.Destinations {
		if d == "" {
			return fmt.Errorf("destination labels must not be empty")
		}
		if seen[d] {
			return fmt.Errorf("duplicate destination %q", d)
		}
		seen[d] = true
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, events", c.Trace)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
