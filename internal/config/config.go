package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duncanam/particle-interactions-puzzle/internal/metrics"
	"github.com/duncanam/particle-interactions-puzzle/internal/vicsek"
)

const (
	DefaultParticles = 100
	DefaultBoundary  = 10.0
	DefaultNoise     = 0.2
	DefaultSpeed     = 0.5
	DefaultTimestep  = 0.1
	DefaultRadius    = 1.0
	DefaultSteps     = 500
)

type Config struct {
	Particles         int     `yaml:"particles"`
	BoundarySide      float64 `yaml:"boundary_side_length"`
	Noise             float64 `yaml:"noise"`
	Speed             float64 `yaml:"speed"`
	Timestep          float64 `yaml:"dt"`
	InteractionRadius float64 `yaml:"interaction_radius"`
	Seed              int64   `yaml:"seed"`
	Steps             int     `yaml:"steps"`

	Estimator EstimatorConfig `yaml:"estimator"`
	Sweep     SweepConfig     `yaml:"sweep"`
	Critical  CriticalConfig  `yaml:"critical"`
}

type EstimatorConfig struct {
	BurnInSteps int `yaml:"burn_in_steps"`
	WindowSteps int `yaml:"window_steps"`
}

type SweepConfig struct {
	Points int     `yaml:"points"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

type CriticalConfig struct {
	Target    float64 `yaml:"target"`
	Tolerance float64 `yaml:"tolerance"`
	MaxProbes int     `yaml:"max_probes"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles:         DefaultParticles,
		BoundarySide:      DefaultBoundary,
		Noise:             DefaultNoise,
		Speed:             DefaultSpeed,
		Timestep:          DefaultTimestep,
		InteractionRadius: DefaultRadius,
		Steps:             DefaultSteps,
		Estimator: EstimatorConfig{
			BurnInSteps: metrics.DefaultBurnInSteps,
			WindowSteps: metrics.DefaultWindowSteps,
		},
		Sweep:    SweepConfig{Points: 20, Min: 0.05, Max: 0.95},
		Critical: CriticalConfig{Target: 0.5, Tolerance: 0.02, MaxProbes: 12},
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

// Params maps the config onto simulation parameters. Validation happens
// in vicsek.New, not here.
func (c *Config) Params() vicsek.Params {
	return vicsek.Params{
		NumParticles:       c.Particles,
		BoundarySideLength: c.BoundarySide,
		Noise:              c.Noise,
		Speed:              c.Speed,
		Timestep:           c.Timestep,
		InteractionRadius:  c.InteractionRadius,
	}
}

// StationaryEstimator maps the estimator section onto its runtime type.
func (c *Config) StationaryEstimator() metrics.StationaryEstimator {
	return metrics.StationaryEstimator{
		BurnInSteps: c.Estimator.BurnInSteps,
		WindowSteps: c.Estimator.WindowSteps,
	}
}
