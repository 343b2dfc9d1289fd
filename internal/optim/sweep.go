package optim

import (
	"context"
	"sync"

	"github.com/duncanam/particle-interactions-puzzle/internal/metrics"
	"github.com/duncanam/particle-interactions-puzzle/internal/vicsek"
)

// SweepPoint is one sample of the order-parameter curve.
type SweepPoint struct {
	Noise          float64
	OrderParameter float64
	Susceptibility float64
}

// NoiseSweep samples the stationary order parameter on a linear noise
// grid. Every grid point owns an independent simulation and random
// stream, so the points run as parallel goroutines.
type NoiseSweep struct {
	Points    int
	Min, Max  float64
	Estimator metrics.StationaryEstimator
	SeedStart int64
}

// NewNoiseSweep returns a sweep over [0.05, 0.95] with the given number
// of grid points.
func NewNoiseSweep(points int) *NoiseSweep {
	return &NoiseSweep{
		Points:    points,
		Min:       0.05,
		Max:       0.95,
		Estimator: metrics.DefaultEstimator(),
		SeedStart: 1,
	}
}

// Run evaluates the sweep, returning points in ascending noise order.
func (s *NoiseSweep) Run(ctx context.Context, p vicsek.Params) ([]SweepPoint, error) {
	points := make([]SweepPoint, s.Points)
	errs := make([]error, s.Points)

	step := 0.0
	if s.Points > 1 {
		step = (s.Max - s.Min) / float64(s.Points-1)
	}

	var wg sync.WaitGroup
	for i := 0; i < s.Points; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			probe := p
			probe.Noise = s.Min + step*float64(idx)
			points[idx], errs[idx] = s.evaluate(probe, s.SeedStart+int64(idx))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

func (s *NoiseSweep) evaluate(p vicsek.Params, seed int64) (SweepPoint, error) {
	sim, err := vicsek.New(p, seed)
	if err != nil {
		return SweepPoint{}, err
	}

	for i := 0; i < s.Estimator.BurnInSteps; i++ {
		sim.Step()
	}

	align := metrics.NewAlignment()
	chi := metrics.NewSusceptibility()
	for i := 0; i < s.Estimator.WindowSteps; i++ {
		sim.Step()
		align.Observe(sim, sim.CurrentTime())
		chi.Observe(sim, sim.CurrentTime())
	}

	return SweepPoint{
		Noise:          p.Noise,
		OrderParameter: align.Value(),
		Susceptibility: chi.Value(),
	}, nil
}
