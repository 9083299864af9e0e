package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quadsim/internal/control"
	"github.com/san-kum/quadsim/internal/quad"
	"github.com/san-kum/quadsim/internal/sim"
)

const (
	DefaultDt       = 0.05 // 20 Hz control loop
	DefaultDuration = 20.0

	DefaultMass      = 1.0
	DefaultArmLength = 0.3
	DefaultIxx       = 0.01
	DefaultIyy       = 0.01
	DefaultIzz       = 0.02
)

// Config is the full simulation configuration: vehicle constants,
// controller gains, and loop timing. The zero-value gaps are filled by
// DefaultConfig, which Load uses as its base, so partial files work.
type Config struct {
	Vehicle VehicleConfig `yaml:"vehicle"`
	Gains   control.Gains `yaml:"gains"`
	Sim     SimConfig     `yaml:"sim"`
}

type VehicleConfig struct {
	Mass      float64 `yaml:"mass"`
	ArmLength float64 `yaml:"arm_length"`
	Ixx       float64 `yaml:"ixx"`
	Iyy       float64 `yaml:"iyy"`
	Izz       float64 `yaml:"izz"`
}

type SimConfig struct {
	Dt              float64 `yaml:"dt"`
	Duration        float64 `yaml:"duration"`
	HistoryCapacity int     `yaml:"history_capacity"`
	HistoryStride   int     `yaml:"history_stride"`
}

// DefaultConfig returns the tuned baseline: the 1 kg test vehicle with
// the documented gains at 20 Hz.
func DefaultConfig() *Config {
	return &Config{
		Vehicle: VehicleConfig{
			Mass:      DefaultMass,
			ArmLength: DefaultArmLength,
			Ixx:       DefaultIxx,
			Iyy:       DefaultIyy,
			Izz:       DefaultIzz,
		},
		Gains: control.DefaultGains(),
		Sim: SimConfig{
			Dt:              DefaultDt,
			Duration:        DefaultDuration,
			HistoryCapacity: sim.DefaultHistoryCapacity,
			HistoryStride:   sim.DefaultHistoryStride,
		},
	}
}

// Load reads a yaml config file over the defaults.
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

// Save writes the config as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the vehicle section into rigid-body parameters.
func (c *Config) Params() quad.Params {
	return quad.Params{
		Mass:      c.Vehicle.Mass,
		ArmLength: c.Vehicle.ArmLength,
		Ixx:       c.Vehicle.Ixx,
		Iyy:       c.Vehicle.Iyy,
		Izz:       c.Vehicle.Izz,
	}
}

// SimConfig converts the sim section into simulator options.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		HistoryCapacity: c.Sim.HistoryCapacity,
		HistoryStride:   c.Sim.HistoryStride,
	}
}
