package vicsek

import "fmt"

// Params holds the fixed parameters of a simulation. All fields are set
// once at construction and never mutated by Step.
type Params struct {
	NumParticles       int
	BoundarySideLength float64
	Noise              float64
	Speed              float64
	Timestep           float64
	InteractionRadius  float64
}

// DefaultParams returns the reference parameter set: a moderately dense
// box where neighbor averaging reliably orders the flock at low noise.
func DefaultParams() Params {
	return Params{
		NumParticles:       100,
		BoundarySideLength: 10.0,
		Noise:              0.2,
		Speed:              0.5,
		Timestep:           0.1,
		InteractionRadius:  1.0,
	}
}

// Validate reports the first invalid parameter, if any.
func (p Params) Validate() error {
	if p.NumParticles <= 0 {
		return fmt.Errorf("%w, got %d", ErrParticleCount, p.NumParticles)
	}
	if p.BoundarySideLength <= 0 {
		return fmt.Errorf("%w, got %f", ErrBoundarySize, p.BoundarySideLength)
	}
	if p.Timestep <= 0 {
		return fmt.Errorf("%w, got %f", ErrTimestep, p.Timestep)
	}
	if p.InteractionRadius < 0 {
		return fmt.Errorf("%w, got %f", ErrRadius, p.InteractionRadius)
	}
	if p.Noise < 0 || p.Noise > 1 {
		return fmt.Errorf("%w, got %f", ErrNoiseRange, p.Noise)
	}
	if p.Speed < 0 {
		return fmt.Errorf("%w, got %f", ErrSpeed, p.Speed)
	}
	return nil
}
