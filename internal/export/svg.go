// Package export writes SVG figures: quiver snapshots of the ensemble
// and the order-parameter-vs-noise curve.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/duncanam/particle-interactions-puzzle/internal/optim"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`

// QuiverSVG renders particle positions and headings as arrows on the
// periodic domain [0, domain) mapped to a size x size image.
func QuiverSVG(x, y, u, v []float64, domain float64, size int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, size, size, size, size))
	sb.WriteString(`<g stroke="#00ff88" stroke-width="1.2">` + "\n")

	scale := float64(size) / domain
	arrow := 0.35 * scale // arrow length in px for the unit-ish heading

	for i := range x {
		px := x[i] * scale
		// SVG y grows downward.
		py := float64(size) - y[i]*scale

		speed := math.Hypot(u[i], v[i])
		if speed == 0 {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.2" fill="#00ff88"/>`+"\n", px, py))
			continue
		}

		hx := px + arrow*u[i]/speed
		hy := py - arrow*v[i]/speed
		tx := px - arrow*u[i]/speed
		ty := py + arrow*v[i]/speed
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", tx, ty, hx, hy))
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.0" fill="#00ff88"/>`+"\n", hx, hy))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CurveSVG renders sweep points as an order-parameter-vs-noise polyline
// with axes pinned to eta in [0,1] and psi in [0,1].
func CurveSVG(points []optim.SweepPoint, width, height int) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height))

	// Frame.
	sb.WriteString(fmt.Sprintf(
		`<rect x="0.5" y="0.5" width="%d" height="%d" fill="none" stroke="#333344"/>`+"\n",
		width-1, height-1))

	sb.WriteString(`<path fill="none" stroke="#00ccff" stroke-width="1.5" d="M`)
	for i, pt := range points {
		px := pt.Noise * float64(width)
		py := float64(height) - pt.OrderParameter*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}
	sb.WriteString(`"/>` + "\n")

	for _, pt := range points {
		px := pt.Noise * float64(width)
		py := float64(height) - pt.OrderParameter*float64(height)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5" fill="#00ccff"/>`+"\n", px, py))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
