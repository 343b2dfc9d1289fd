package vicsek

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"
)

func randomPoints(n int, domain float64, seed int64) (x, y []float64) {
	rng := rand.New(rand.NewSource(seed))
	x = make([]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = domain * rng.Float64()
		y[i] = domain * rng.Float64()
	}
	return x, y
}

func TestSelfNeighborInclusion(t *testing.T) {
	x, y := randomPoints(50, 10.0, 1)

	for _, radius := range []float64{0, 0.5, 3.0} {
		sets, err := NeighborsWithin(x, y, radius, 10.0)
		if err != nil {
			t.Fatalf("radius %f: %v", radius, err)
		}
		for i, set := range sets {
			found := false
			for _, j := range set {
				if j == i {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("radius %f: particle %d missing from its own neighbor set", radius, i)
			}
		}
	}
}

func TestNeighborSymmetry(t *testing.T) {
	x, y := randomPoints(80, 5.0, 2)

	sets, err := NeighborsWithin(x, y, 1.0, 5.0)
	if err != nil {
		t.Fatal(err)
	}

	member := make(map[[2]int]bool)
	for i, set := range sets {
		for _, j := range set {
			member[[2]int{i, j}] = true
		}
	}
	for i, set := range sets {
		for _, j := range set {
			if !member[[2]int{j, i}] {
				t.Errorf("asymmetric: %d has neighbor %d but not vice versa", i, j)
			}
		}
	}
}

func TestGridMatchesBruteForce(t *testing.T) {
	const domain = 10.0
	x, y := randomPoints(300, domain, 3)

	for _, radius := range []float64{0.3, 1.0, 2.5} {
		cells := int(domain / radius)
		if cells < 3 {
			t.Fatalf("radius %f gives a degenerate grid, pick another", radius)
		}

		brute := bruteNeighbors(x, y, radius, domain)
		grid := gridNeighbors(x, y, radius, domain, cells)

		for i := range brute {
			sort.Ints(brute[i])
			sort.Ints(grid[i])
			if len(brute[i]) != len(grid[i]) {
				t.Fatalf("radius %f particle %d: brute %d neighbors, grid %d",
					radius, i, len(brute[i]), len(grid[i]))
			}
			for k := range brute[i] {
				if brute[i][k] != grid[i][k] {
					t.Fatalf("radius %f particle %d: sets differ at %d", radius, i, k)
				}
			}
		}
	}
}

func TestWrapAroundNeighbors(t *testing.T) {
	// Two particles straddling the seam of the torus.
	x := []float64{0.05, 9.95}
	y := []float64{5.0, 5.0}

	sets, err := NeighborsWithin(x, y, 0.2, 10.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets[0]) != 2 || len(sets[1]) != 2 {
		t.Errorf("expected seam-crossing pair to be neighbors, got %v", sets)
	}
}

func TestNeighborsInvalidConfig(t *testing.T) {
	x, y := randomPoints(4, 1.0, 4)

	if _, err := NeighborsWithin(x, y, -1.0, 1.0); !errors.Is(err, ErrRadius) {
		t.Errorf("expected ErrRadius, got %v", err)
	}
	if _, err := NeighborsWithin(x, y, 1.0, 0); !errors.Is(err, ErrBoundarySize) {
		t.Errorf("expected ErrBoundarySize, got %v", err)
	}
}

func TestPeriodicDistance(t *testing.T) {
	if d := PeriodicDistance(0.5, 0, 9.5, 0, 10.0); math.Abs(d-1.0) > 1e-12 {
		t.Errorf("expected wrapped distance 1, got %f", d)
	}
	if d := PeriodicDistance(2, 3, 5, 7, 10.0); math.Abs(d-5.0) > 1e-12 {
		t.Errorf("expected distance 5, got %f", d)
	}
}
