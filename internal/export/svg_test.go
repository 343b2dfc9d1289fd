package export

import (
	"strings"
	"testing"

	"github.com/duncanam/particle-interactions-puzzle/internal/optim"
)

func TestQuiverSVG(t *testing.T) {
	svg := QuiverSVG(
		[]float64{1, 5},
		[]float64{2, 8},
		[]float64{0.5, 0},
		[]float64{0, 0},
		10.0, 400,
	)

	if !strings.HasPrefix(svg, "<?xml") {
		t.Error("expected XML prolog")
	}
	if !strings.Contains(svg, "<line") {
		t.Error("expected an arrow line for the moving particle")
	}
	if !strings.Contains(svg, "<circle") {
		t.Error("expected a dot for the stationary particle")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected closed svg document")
	}
}

func TestCurveSVG(t *testing.T) {
	points := []optim.SweepPoint{
		{Noise: 0.1, OrderParameter: 0.9},
		{Noise: 0.5, OrderParameter: 0.5},
		{Noise: 0.9, OrderParameter: 0.1},
	}

	svg := CurveSVG(points, 500, 300)
	if !strings.Contains(svg, "<path") {
		t.Error("expected a polyline path")
	}
	if strings.Count(svg, "<circle") != len(points) {
		t.Errorf("expected %d markers", len(points))
	}

	if CurveSVG(points[:1], 500, 300) != "" {
		t.Error("expected empty output for a single point")
	}
}
