package vicsek

import "errors"

// Domain errors for simulation construction and neighbor queries.
var (
	// ErrParticleCount indicates a non-positive particle count.
	ErrParticleCount = errors.New("vicsek: particle count must be positive")

	// ErrBoundarySize indicates a non-positive boundary side length.
	ErrBoundarySize = errors.New("vicsek: boundary side length must be positive")

	// ErrTimestep indicates a non-positive timestep.
	ErrTimestep = errors.New("vicsek: timestep must be positive")

	// ErrRadius indicates a negative interaction radius.
	ErrRadius = errors.New("vicsek: interaction radius must be non-negative")

	// ErrNoiseRange indicates a noise amplitude outside [0, 1].
	ErrNoiseRange = errors.New("vicsek: noise amplitude must be in [0, 1]")

	// ErrSpeed indicates a negative particle speed.
	ErrSpeed = errors.New("vicsek: speed must be non-negative")
)
