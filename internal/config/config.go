// Package config handles simulation configuration loading and management.
package config

// Config holds all simulation settings.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Hull       HullConfig       `yaml:"hull"`
	Loads      []LoadConfig     `yaml:"loads"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig holds the fluid environment and tick settings.
type SimulationConfig struct {
	Gravity      float64 `yaml:"gravity"`       // m/s²
	FluidDensity float64 `yaml:"fluid_density"` // kg/m³
	TickRate     int     `yaml:"tick_rate"`     // ticks per second
	Ticks        int     `yaml:"ticks"`         // total ticks to simulate
	Workers      int     `yaml:"workers"`
}

// HullConfig describes the procedurally generated hull mesh.
type HullConfig struct {
	Shape   string  `yaml:"shape"` // "box" or "sphere"
	Width   float64 `yaml:"width"`
	Length  float64 `yaml:"length"`
	Height  float64 `yaml:"height"`
	Radius  float64 `yaml:"radius"`
	Detail  int     `yaml:"detail"`  // sphere segment count
	Density float64 `yaml:"density"` // kg/m³
}

// LoadConfig describes one external point load on the hull.
type LoadConfig struct {
	Mass float64 `yaml:"mass"` // kg
	X    float64 `yaml:"x"`    // local position, meters
	Y    float64 `yaml:"y"`
	Z    float64 `yaml:"z"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values: a lightweight
// box hull floating in seawater.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Gravity:      9.81,
			FluidDensity: 1025,
			TickRate:     60,
			Ticks:        600,
			Workers:      1,
		},
		Hull: HullConfig{
			Shape:   "box",
			Width:   2,
			Length:  4,
			Height:  1.5,
			Radius:  1,
			Detail:  32,
			Density: 200,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
