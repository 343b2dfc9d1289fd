package metrics

import "github.com/duncanam/particle-interactions-puzzle/internal/vicsek"

// Metric accumulates a scalar diagnostic over simulation steps.
type Metric interface {
	Name() string
	Observe(s *vicsek.Simulation, t float64)
	Value() float64
	Reset()
}

// Alignment tracks the mean order parameter over the observed steps.
type Alignment struct {
	name    string
	sum     float64
	samples int
}

func NewAlignment() *Alignment {
	return &Alignment{name: "alignment"}
}

func (a *Alignment) Name() string { return a.name }

func (a *Alignment) Observe(s *vicsek.Simulation, t float64) {
	a.sum += s.OrderParameter()
	a.samples++
}

func (a *Alignment) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *Alignment) Reset() {
	a.sum = 0
	a.samples = 0
}

// Susceptibility tracks N·Var(ψ), the fluctuation of the order parameter
// scaled by particle count. It peaks near the order-disorder transition,
// which makes it a useful companion readout in noise sweeps.
type Susceptibility struct {
	name    string
	n       int
	sum     float64
	sumSq   float64
	samples int
}

func NewSusceptibility() *Susceptibility {
	return &Susceptibility{name: "susceptibility"}
}

func (x *Susceptibility) Name() string { return x.name }

func (x *Susceptibility) Observe(s *vicsek.Simulation, t float64) {
	psi := s.OrderParameter()
	x.n = s.Params().NumParticles
	x.sum += psi
	x.sumSq += psi * psi
	x.samples++
}

func (x *Susceptibility) Value() float64 {
	if x.samples == 0 {
		return 0
	}
	mean := x.sum / float64(x.samples)
	variance := x.sumSq/float64(x.samples) - mean*mean
	if variance < 0 {
		variance = 0 // rounding
	}
	return float64(x.n) * variance
}

func (x *Susceptibility) Reset() {
	x.sum = 0
	x.sumSq = 0
	x.samples = 0
}
