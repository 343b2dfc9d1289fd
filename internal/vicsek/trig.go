package vicsek

import "math"

// TrigTable provides precomputed sin/cos lookup with linear interpolation.
// The renderer calls SinCos once per particle per frame; table lookup is
// plenty accurate for placing arrows on a character grid. The simulation
// update itself uses exact math.Sin/Cos so trajectories stay bit-exact
// across table sizes.
type TrigTable struct {
	sin, cos []float64
	n        int
}

// NewTrigTable builds a table with n entries over [0, 2π).
func NewTrigTable(n int) *TrigTable {
	t := &TrigTable{
		sin: make([]float64, n),
		cos: make([]float64, n),
		n:   n,
	}
	for i := 0; i < n; i++ {
		a := float64(i) * 2 * math.Pi / float64(n)
		t.sin[i] = math.Sin(a)
		t.cos[i] = math.Cos(a)
	}
	return t
}

// SinCos returns interpolated sin and cos of x.
func (t *TrigTable) SinCos(x float64) (sin, cos float64) {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := idx - float64(i)

	i0 := i % t.n
	i1 := (i + 1) % t.n

	sin = t.sin[i0]*(1-frac) + t.sin[i1]*frac
	cos = t.cos[i0]*(1-frac) + t.cos[i1]*frac
	return sin, cos
}

// 1024 entries ≈ 0.006 rad resolution, far below one canvas sub-pixel.
var defaultTrigTable = NewTrigTable(1024)

// FastSinCos looks up sin and cos in the package default table.
func FastSinCos(x float64) (sin, cos float64) {
	return defaultTrigTable.SinCos(x)
}
