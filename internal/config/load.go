package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file. An empty path
// falls back to ./hydrosim.yaml when that file exists, otherwise defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile looks for config in the working directory.
func findConfigFile() string {
	if _, err := os.Stat("./hydrosim.yaml"); err == nil {
		return "./hydrosim.yaml"
	}
	return ""
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (cfg *Config) validate() error {
	if cfg.Simulation.Gravity <= 0 {
		return fmt.Errorf("config: gravity must be positive, got %g", cfg.Simulation.Gravity)
	}
	if cfg.Simulation.FluidDensity <= 0 {
		return fmt.Errorf("config: fluid density must be positive, got %g", cfg.Simulation.FluidDensity)
	}
	if cfg.Simulation.TickRate <= 0 {
		return fmt.Errorf("config: tick rate must be positive, got %d", cfg.Simulation.TickRate)
	}
	switch cfg.Hull.Shape {
	case "box", "sphere":
	default:
		return fmt.Errorf("config: unknown hull shape %q", cfg.Hull.Shape)
	}
	if cfg.Hull.Density <= 0 {
		return fmt.Errorf("config: hull density must be positive, got %g", cfg.Hull.Density)
	}
	return nil
}
