package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"rcsim/internal/circuit"
)

const DefaultDuration = 10.0

// Config is the YAML-facing shape of a simulation setup: the four
// circuit parameters plus a headless run duration.
type Config struct {
	EMF          float64 `yaml:"emf"`
	Resistance   float64 `yaml:"resistance"`
	Capacitance  float64 `yaml:"capacitance"`
	SwitchClosed bool    `yaml:"switch_closed"`
	Duration     float64 `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		EMF:         circuit.DefaultEMF,
		Resistance:  circuit.DefaultResistance,
		Capacitance: circuit.DefaultCapacitance,
		Duration:    DefaultDuration,
	}
}

// Load reads a YAML config, filling omitted fields from defaults. Values
// that would be rejected by the circuit boundary are rejected here too,
// with the same typed error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := circuit.Validate(cfg.EMF, cfg.Resistance, cfg.Capacitance); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply pushes the configured parameters into a circuit.
func (c *Config) Apply(s *circuit.State) error {
	return s.SetParameters(c.EMF, c.Resistance, c.Capacitance, c.SwitchClosed)
}
