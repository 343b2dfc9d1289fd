package config

// Presets are named parameter sets for common regimes of the model.
var Presets = map[string]*Config{
	// The parameter set the estimator horizons were tuned on.
	"reference": {
		Particles: 100, BoundarySide: 10.0, Noise: 0.2,
		Speed: 0.5, Timestep: 0.1, InteractionRadius: 1.0, Steps: 500,
	},
	// High density, strong local averaging: orders quickly.
	"dense": {
		Particles: 400, BoundarySide: 10.0, Noise: 0.2,
		Speed: 0.5, Timestep: 0.1, InteractionRadius: 1.0, Steps: 500,
	},
	// Sparse box where clusters take a long time to meet.
	"dilute": {
		Particles: 100, BoundarySide: 25.0, Noise: 0.1,
		Speed: 0.5, Timestep: 0.1, InteractionRadius: 1.0, Steps: 2000,
	},
	// Near the transition: large psi fluctuations, good for sweeps.
	"critical": {
		Particles: 100, BoundarySide: 10.0, Noise: 0.45,
		Speed: 0.5, Timestep: 0.1, InteractionRadius: 1.0, Steps: 1000,
	},
	// Fully noisy gas: headings decorrelate every step.
	"gas": {
		Particles: 100, BoundarySide: 10.0, Noise: 1.0,
		Speed: 0.5, Timestep: 0.1, InteractionRadius: 1.0, Steps: 500,
	},
}

func GetPreset(name string) *Config {
	base, ok := Presets[name]
	if !ok {
		return nil
	}
	// Presets only pin the ensemble parameters; fill the tool sections
	// from the defaults.
	cfg := DefaultConfig()
	cfg.Particles = base.Particles
	cfg.BoundarySide = base.BoundarySide
	cfg.Noise = base.Noise
	cfg.Speed = base.Speed
	cfg.Timestep = base.Timestep
	cfg.InteractionRadius = base.InteractionRadius
	cfg.Steps = base.Steps
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
