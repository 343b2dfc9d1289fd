// Package viz renders the particle ensemble in the terminal: a braille
// sub-pixel canvas for quiver snapshots and a bubbletea model for live
// animation.
package viz

import (
	"math"
	"strings"

	"github.com/duncanam/particle-interactions-puzzle/internal/vicsek"
)

// Braille patterns pack 2x4 dots per character cell, offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights a sub-pixel; the canvas is (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws between sub-pixel coordinates (Bresenham).
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.Grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Tail length in sub-pixels for quiver rendering.
const tailLen = 4.0

// Quiver draws the ensemble: one dot per particle position plus a short
// tail opposite its heading. The domain [0,L) maps onto the full canvas.
func (c *Canvas) Quiver(sim *vicsek.Simulation) {
	x, y, u, v := sim.Data()
	domain := sim.BoundarySideLength()

	subW := float64(c.Width * 2)
	subH := float64(c.Height * 4)

	for i := range x {
		// Screen y grows downward.
		px := int(x[i] / domain * subW)
		py := int(subH - 1 - y[i]/domain*subH)

		speed := math.Hypot(u[i], v[i])
		if speed == 0 {
			c.Set(px, py)
			continue
		}

		tx := px - int(tailLen*u[i]/speed)
		ty := py + int(tailLen*v[i]/speed)
		c.DrawLine(tx, ty, px, py)
	}
}

// DrawArrow draws an arrow of the given sub-pixel length from (x0, y0)
// pointing along angle (math convention, y up), with a barbed head.
func (c *Canvas) DrawArrow(x0, y0 int, angle, length float64) {
	sin, cos := vicsek.FastSinCos(angle)
	x1 := x0 + int(length*cos)
	y1 := y0 - int(length*sin)
	c.DrawLine(x0, y0, x1, y1)

	barb := length / 3
	for _, offset := range []float64{2.6, -2.6} { // ~150 degrees
		bs, bc := vicsek.FastSinCos(angle + offset)
		c.DrawLine(x1, y1, x1+int(barb*bc), y1-int(barb*bs))
	}
}
