package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leelasd/colvars"
	"github.com/leelasd/colvars/testbed"
)

// simConfig describes a synthetic run. All fields have working defaults;
// a YAML file overrides them.
type simConfig struct {
	Atoms        int        `yaml:"atoms"`
	Temperature  float64    `yaml:"temperature"`
	Timestep     float64    `yaml:"timestep"`
	Steps        int        `yaml:"steps"`
	Seed         int64      `yaml:"seed"`
	Replicas     int        `yaml:"replicas"`
	Box          [3]float64 `yaml:"box"`
	Pull         [3]float64 `yaml:"pull"`
	OutputPrefix string     `yaml:"output_prefix"`
	TrajStride   int        `yaml:"traj_stride"`
}

func defaultSimConfig() simConfig {
	return simConfig{
		Atoms:       16,
		Temperature: 300,
		Timestep:    2.0,
		Steps:       200,
		Seed:        1,
		Replicas:    1,
		Box:         [3]float64{32, 32, 32},
		Pull:        [3]float64{0.5, 0, 0},
		TrajStride:  10,
	}
}

// loadSimConfig reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func loadSimConfig(path string) (simConfig, error) {
	cfg := defaultSimConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Atoms < 1 {
		return cfg, fmt.Errorf("config: atoms must be at least 1, got %d", cfg.Atoms)
	}
	if cfg.Replicas < 1 {
		return cfg, fmt.Errorf("config: replicas must be at least 1, got %d", cfg.Replicas)
	}
	if cfg.Steps < 0 {
		return cfg, fmt.Errorf("config: steps must not be negative, got %d", cfg.Steps)
	}
	return cfg, nil
}

func (c simConfig) engineConfig(rank int) testbed.Config {
	return testbed.Config{
		Atoms:       c.Atoms,
		Temperature: c.Temperature + 10*float64(rank), // replica temperature ladder
		Timestep:    c.Timestep,
		Box:         colvars.Vec3(c.Box),
		Seed:        c.Seed + int64(rank),
	}
}

func (c simConfig) pull() colvars.Vec3 {
	return colvars.Vec3(c.Pull)
}
