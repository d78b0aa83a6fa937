package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/icrf-tools/icrlab/internal/plasma"
)

const (
	DefaultCurrent     = 1250.0 // A
	DefaultFrequency   = 55e6   // Hz
	DefaultHarmonic    = 1
	DefaultMaxHarmonic = 3
	DefaultRMin        = 0.5 // m
	DefaultRMax        = 6.0 // m
	DefaultPoints      = 200
)

type Config struct {
	Device   DeviceConfig `yaml:"device"`
	Wave     WaveConfig   `yaml:"wave"`
	Ion      IonConfig    `yaml:"ion"`
	Harmonic int          `yaml:"harmonic"`
	Scan     ScanConfig   `yaml:"scan"`
}

type DeviceConfig struct {
	CoilCurrent float64 `yaml:"coil_current"`
	RMin        float64 `yaml:"r_min"`
	RMax        float64 `yaml:"r_max"`
}

type WaveConfig struct {
	Frequency float64 `yaml:"frequency"`
}

// IonConfig names a built-in species or spells out Z and A directly.
// Species wins when both are given.
type IonConfig struct {
	Species string `yaml:"species"`
	Z       int    `yaml:"z"`
	A       int    `yaml:"a"`
}

type ScanConfig struct {
	Points      int `yaml:"points"`
	MaxHarmonic int `yaml:"max_harmonic"`
}

func DefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			CoilCurrent: DefaultCurrent,
			RMin:        DefaultRMin,
			RMax:        DefaultRMax,
		},
		Wave:     WaveConfig{Frequency: DefaultFrequency},
		Ion:      IonConfig{Species: "H"},
		Harmonic: DefaultHarmonic,
		Scan: ScanConfig{
			Points:      DefaultPoints,
			MaxHarmonic: DefaultMaxHarmonic,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
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

// ResolveIon turns the ion block into a validated species.
func (c *Config) ResolveIon() (plasma.Ion, error) {
	if c.Ion.Species != "" {
		return plasma.Species(c.Ion.Species)
	}
	ion := plasma.Ion{Z: c.Ion.Z, A: c.Ion.A}
	if err := ion.Validate(); err != nil {
		return plasma.Ion{}, fmt.Errorf("ion config: %w", err)
	}
	return ion, nil
}
