// Package layout holds the board geometry shared by renderers: where each
// cell sits in world units, which cell a point hits, and how the square world
// is fitted into a window of arbitrary aspect ratio.
package layout

import "math"

const (
	// SideSize is the edge length of one cell in world units.
	SideSize = 10.0
	// OffsetFactor is the gutter width relative to SideSize.
	OffsetFactor = 0.1

	Offset  = SideSize * OffsetFactor
	Spacing = SideSize + Offset
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r, right and bottom edges
// excluded.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Grid is the world-space layout of a Cells×Cells board.
type Grid struct {
	Cells int
}

// WorldSize is the edge length of the whole board including gutters.
func (g Grid) WorldSize() float64 {
	return Offset + Spacing*float64(g.Cells)
}

// CellRect returns the world rectangle of the cell at (row, col).
func (g Grid) CellRect(row, col int) Rect {
	return Rect{
		X: Offset + Spacing*float64(col),
		Y: Offset + Spacing*float64(row),
		W: SideSize,
		H: SideSize,
	}
}

// CellAt returns the cell containing the world point (x, y). Points in the
// gutters or outside the board report ok == false.
func (g Grid) CellAt(x, y float64) (row, col int, ok bool) {
	col = int(math.Floor((x - Offset) / Spacing))
	row = int(math.Floor((y - Offset) / Spacing))
	if row < 0 || row >= g.Cells || col < 0 || col >= g.Cells {
		return 0, 0, false
	}
	if !g.CellRect(row, col).Contains(x, y) {
		return 0, 0, false
	}
	return row, col, true
}

// AspectViewport returns the normalized viewport ([0,1] on both axes) that
// keeps a square scene square and centred in a width×height window.
func AspectViewport(width, height int) Rect {
	if width <= 0 || height <= 0 {
		return Rect{W: 1, H: 1}
	}
	if width >= height {
		ratio := float64(height) / float64(width)
		return Rect{X: (1 - ratio) * 0.5, Y: 0, W: ratio, H: 1}
	}
	ratio := float64(width) / float64(height)
	return Rect{X: 0, Y: (1 - ratio) * 0.5, W: 1, H: ratio}
}

// Transform maps world units to window pixels.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Fit returns the transform that draws g inside the aspect-preserving
// viewport of a width×height window.
func Fit(g Grid, width, height int) Transform {
	vp := AspectViewport(width, height)
	px := vp.W * float64(width)
	return Transform{
		Scale:   px / g.WorldSize(),
		OffsetX: vp.X * float64(width),
		OffsetY: vp.Y * float64(height),
	}
}

// ToScreen converts a world point to pixels.
func (t Transform) ToScreen(x, y float64) (float64, float64) {
	return t.OffsetX + x*t.Scale, t.OffsetY + y*t.Scale
}

// ToWorld converts a pixel position to world units.
func (t Transform) ToWorld(x, y float64) (float64, float64) {
	if t.Scale == 0 {
		return math.Inf(-1), math.Inf(-1)
	}
	return (x - t.OffsetX) / t.Scale, (y - t.OffsetY) / t.Scale
}

// RectToScreen converts a world rectangle to pixels.
func (t Transform) RectToScreen(r Rect) Rect {
	x, y := t.ToScreen(r.X, r.Y)
	return Rect{X: x, Y: y, W: r.W * t.Scale, H: r.H * t.Scale}
}
