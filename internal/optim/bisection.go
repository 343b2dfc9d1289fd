// Package optim searches the noise axis of the Vicsek model: bisection
// for the critical noise and parallel sweeps of the order parameter.
package optim

import (
	"context"

	"github.com/duncanam/particle-interactions-puzzle/internal/metrics"
	"github.com/duncanam/particle-interactions-puzzle/internal/vicsek"
)

// Probe records one bisection evaluation.
type Probe struct {
	Noise          float64
	OrderParameter float64
}

// CriticalNoise bisects over the noise amplitude for the point where the
// stationary order parameter crosses Target. The stationary estimates
// carry statistical noise, so the search runs to a bracket tolerance
// under a hard probe budget rather than trusting monotonicity exactly.
type CriticalNoise struct {
	Target    float64
	Tolerance float64
	MaxProbes int
	Estimator metrics.StationaryEstimator
	Seed      int64
}

// NewCriticalNoise returns a finder targeting psi = 0.5 with a bracket
// tolerance of 0.02, which bisection reaches in six probes.
func NewCriticalNoise() *CriticalNoise {
	return &CriticalNoise{
		Target:    0.5,
		Tolerance: 0.02,
		MaxProbes: 12,
		Estimator: metrics.DefaultEstimator(),
		Seed:      1,
	}
}

// Result holds the outcome of a critical-noise search. Converged is false
// when the probe budget ran out before the bracket met tolerance; Noise
// is then the best-effort bracket midpoint, not a converged value.
type Result struct {
	Noise     float64
	Converged bool
	Probes    []Probe
}

// Find runs the bisection over noise in [0, 1]. Each probe constructs a
// fresh simulation from p with the probe noise and a distinct seed, and
// estimates its stationary order parameter.
func (c *CriticalNoise) Find(ctx context.Context, p vicsek.Params) (Result, error) {
	lo, hi := 0.0, 1.0
	res := Result{}

	for i := 0; i < c.MaxProbes && hi-lo > c.Tolerance; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		mid := (lo + hi) / 2
		probe := p
		probe.Noise = mid

		sim, err := vicsek.New(probe, c.Seed+int64(i))
		if err != nil {
			return res, err
		}

		psi := c.Estimator.Estimate(sim)
		res.Probes = append(res.Probes, Probe{Noise: mid, OrderParameter: psi})

		if psi > c.Target {
			lo = mid // still ordered, transition lies at higher noise
		} else {
			hi = mid
		}
	}

	res.Noise = (lo + hi) / 2
	res.Converged = hi-lo <= c.Tolerance
	return res, nil
}
