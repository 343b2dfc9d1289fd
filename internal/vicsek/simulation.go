package vicsek

import (
	"math"
	"math/rand"
)

// Simulation owns a particle ensemble on a periodic square domain and
// advances it with the Vicsek update rule. Construct with New; the zero
// value is not usable.
type Simulation struct {
	params      Params
	x, y, theta []float64
	currentTime float64
	steps       int
	rng         *rand.Rand

	// scratch buffers for the synchronous update
	nextX, nextY, nextTheta []float64
	cosT, sinT              []float64
}

// New builds a simulation with positions drawn uniformly over the domain
// and headings drawn uniformly over [0, 2π), using a private random
// stream seeded with seed. Identical params and seed reproduce identical
// trajectories.
func New(p Params, seed int64) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.NumParticles
	s := &Simulation{
		params:    p,
		x:         make([]float64, n),
		y:         make([]float64, n),
		theta:     make([]float64, n),
		rng:       rand.New(rand.NewSource(seed)),
		nextX:     make([]float64, n),
		nextY:     make([]float64, n),
		nextTheta: make([]float64, n),
		cosT:      make([]float64, n),
		sinT:      make([]float64, n),
	}

	for i := 0; i < n; i++ {
		s.x[i] = p.BoundarySideLength * s.rng.Float64()
		s.y[i] = p.BoundarySideLength * s.rng.Float64()
		s.theta[i] = 2 * math.Pi * s.rng.Float64()
	}

	return s, nil
}

// Step advances the ensemble by one timestep.
//
// The update is synchronous: every particle's new heading is the circular
// mean over its neighbor set evaluated on the pre-step positions and
// headings, plus angular noise drawn uniformly from [-noise*π, noise*π].
// Positions then move at constant speed along the new heading and wrap
// onto the torus.
func (s *Simulation) Step() {
	p := s.params

	// Params are validated at construction, so the query cannot fail.
	neighbors, _ := NeighborsWithin(s.x, s.y, p.InteractionRadius, p.BoundarySideLength)

	for i := range s.theta {
		s.cosT[i] = math.Cos(s.theta[i])
		s.sinT[i] = math.Sin(s.theta[i])
	}

	for i := range s.x {
		var sumCos, sumSin float64
		for _, j := range neighbors[i] {
			sumCos += s.cosT[j]
			sumSin += s.sinT[j]
		}

		// Averaging the unit vectors handles angle wraparound; a plain
		// mean of angles does not.
		heading := math.Atan2(sumSin, sumCos)
		heading += (2*s.rng.Float64() - 1) * p.Noise * math.Pi

		s.nextTheta[i] = heading
		s.nextX[i] = wrap(s.x[i]+p.Speed*math.Cos(heading)*p.Timestep, p.BoundarySideLength)
		s.nextY[i] = wrap(s.y[i]+p.Speed*math.Sin(heading)*p.Timestep, p.BoundarySideLength)
	}

	s.x, s.nextX = s.nextX, s.x
	s.y, s.nextY = s.nextY, s.y
	s.theta, s.nextTheta = s.nextTheta, s.theta

	s.currentTime += p.Timestep
	s.steps++
}

// wrap maps v onto [0, domain) with periodic topology.
func wrap(v, domain float64) float64 {
	v = math.Mod(v, domain)
	if v < 0 {
		v += domain
	}
	if v >= domain {
		v -= domain // float rounding at the seam
	}
	return v
}

// OrderParameter returns the normalized magnitude of the mean heading
// vector: 1 for perfect alignment, near 0 for uncorrelated headings.
func (s *Simulation) OrderParameter() float64 {
	var sumCos, sumSin float64
	for _, t := range s.theta {
		sumCos += math.Cos(t)
		sumSin += math.Sin(t)
	}
	psi := math.Hypot(sumCos, sumSin) / float64(len(s.theta))
	return math.Min(psi, 1)
}

// StationaryOrderParameter advances the simulation past its transient and
// returns the order parameter averaged over the following window. The
// simulation is left in its post-window state.
func (s *Simulation) StationaryOrderParameter(burnIn, window int) float64 {
	for i := 0; i < burnIn; i++ {
		s.Step()
	}
	if window < 1 {
		window = 1
	}
	var sum float64
	for i := 0; i < window; i++ {
		s.Step()
		sum += s.OrderParameter()
	}
	return sum / float64(window)
}

// Data returns copies of the position and velocity component arrays
// (x, y, u, v) for rendering. It never mutates simulation state.
func (s *Simulation) Data() (x, y, u, v []float64) {
	n := len(s.x)
	x = make([]float64, n)
	y = make([]float64, n)
	u = make([]float64, n)
	v = make([]float64, n)
	copy(x, s.x)
	copy(y, s.y)
	for i, t := range s.theta {
		u[i] = s.params.Speed * math.Cos(t)
		v[i] = s.params.Speed * math.Sin(t)
	}
	return x, y, u, v
}

// Params returns the simulation's fixed parameters.
func (s *Simulation) Params() Params { return s.params }

// BoundarySideLength returns the side length of the periodic domain.
func (s *Simulation) BoundarySideLength() float64 { return s.params.BoundarySideLength }

// CurrentTime returns the elapsed simulation time.
func (s *Simulation) CurrentTime() float64 { return s.currentTime }

// Steps returns the number of timesteps taken so far.
func (s *Simulation) Steps() int { return s.steps }
