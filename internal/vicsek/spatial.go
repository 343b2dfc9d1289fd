package vicsek

import (
	"fmt"
	"math"
)

// Below this many particles the grid bookkeeping costs more than the
// pairwise scan it avoids.
const gridMinParticles = 64

// NeighborsWithin returns, for each particle, the indices of all particles
// whose periodic (toroidal) distance is at most radius. Every particle is
// a member of its own neighbor set, so an isolated particle averages only
// its own heading.
//
// Uses a uniform cell grid with cell size >= radius and a wrapped 3x3 cell
// scan, falling back to the direct pairwise comparison when the grid
// degenerates. Both strategies return exactly the same sets.
func NeighborsWithin(x, y []float64, radius, domain float64) ([][]int, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w, got %f", ErrRadius, radius)
	}
	if domain <= 0 {
		return nil, fmt.Errorf("%w, got %f", ErrBoundarySize, domain)
	}

	cells := 0
	if radius > 0 {
		cells = int(domain / radius)
	}

	// A wrapped 3x3 scan needs at least 3 distinct cells per axis,
	// otherwise the same bucket is visited twice.
	if len(x) < gridMinParticles || cells < 3 {
		return bruteNeighbors(x, y, radius, domain), nil
	}
	return gridNeighbors(x, y, radius, domain, cells), nil
}

// periodicDelta is the shortest separation along one axis of the torus.
func periodicDelta(a, b, domain float64) float64 {
	d := math.Abs(a - b)
	if d > domain-d {
		d = domain - d
	}
	return d
}

// PeriodicDistance is the Euclidean distance on the torus.
func PeriodicDistance(x1, y1, x2, y2, domain float64) float64 {
	dx := periodicDelta(x1, x2, domain)
	dy := periodicDelta(y1, y2, domain)
	return math.Hypot(dx, dy)
}

func bruteNeighbors(x, y []float64, radius, domain float64) [][]int {
	n := len(x)
	r2 := radius * radius
	sets := make([][]int, n)
	for i := 0; i < n; i++ {
		sets[i] = append(sets[i], i)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := periodicDelta(x[i], x[j], domain)
			dy := periodicDelta(y[i], y[j], domain)
			if dx*dx+dy*dy <= r2 {
				sets[i] = append(sets[i], j)
				sets[j] = append(sets[j], i)
			}
		}
	}
	return sets
}

func gridNeighbors(x, y []float64, radius, domain float64, cells int) [][]int {
	n := len(x)
	r2 := radius * radius
	cellSize := domain / float64(cells)

	cellOf := func(v float64) int {
		c := int(v / cellSize)
		if c >= cells {
			c = cells - 1 // float rounding at the upper seam
		}
		return c
	}

	buckets := make([][]int, cells*cells)
	for i := 0; i < n; i++ {
		c := cellOf(y[i])*cells + cellOf(x[i])
		buckets[c] = append(buckets[c], i)
	}

	sets := make([][]int, n)
	for i := 0; i < n; i++ {
		cx := cellOf(x[i])
		cy := cellOf(y[i])

		for dy := -1; dy <= 1; dy++ {
			ny := (cy + dy + cells) % cells
			for dx := -1; dx <= 1; dx++ {
				nx := (cx + dx + cells) % cells
				for _, j := range buckets[ny*cells+nx] {
					sx := periodicDelta(x[i], x[j], domain)
					sy := periodicDelta(y[i], y[j], domain)
					if sx*sx+sy*sy <= r2 {
						sets[i] = append(sets[i], j)
					}
				}
			}
		}
	}
	return sets
}
