package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Particles != DefaultParticles {
		t.Errorf("expected %d particles, got %d", DefaultParticles, cfg.Particles)
	}
	if cfg.Timestep <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Estimator.BurnInSteps <= 0 || cfg.Estimator.WindowSteps <= 0 {
		t.Error("estimator horizons should be positive")
	}

	if err := cfg.Params().Validate(); err != nil {
		t.Errorf("default config should produce valid params, got %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flock.yaml")
	body := "particles: 42\nnoise: 0.7\nsweep:\n  points: 8\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Particles != 42 {
		t.Errorf("expected 42 particles, got %d", cfg.Particles)
	}
	if cfg.Noise != 0.7 {
		t.Errorf("expected noise 0.7, got %f", cfg.Noise)
	}
	if cfg.Sweep.Points != 8 {
		t.Errorf("expected 8 sweep points, got %d", cfg.Sweep.Points)
	}
	// Untouched fields keep their defaults.
	if cfg.Speed != DefaultSpeed {
		t.Errorf("expected default speed, got %f", cfg.Speed)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flock.yaml")

	cfg := DefaultConfig()
	cfg.Noise = 0.33
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Noise != 0.33 {
		t.Errorf("expected noise 0.33 after round trip, got %f", loaded.Noise)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Particles != 400 {
		t.Errorf("expected 400 particles, got %d", cfg.Particles)
	}
	if cfg.Sweep.Points == 0 {
		t.Error("preset should inherit default sweep section")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected presets")
	}
	for _, name := range names {
		if cfg := GetPreset(name); cfg == nil {
			t.Errorf("listed preset %q should resolve", name)
		} else if err := cfg.Params().Validate(); err != nil {
			t.Errorf("preset %q has invalid params: %v", name, err)
		}
	}
}
