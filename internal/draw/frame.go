// Package draw holds the frame model and everything that turns frames into terminal output.
package draw

import "github.com/tomz197/invaders/internal/config"

// Empty is the glyph of a cell nothing was drawn into.
const Empty rune = 0

// Frame is one tick's full-grid glyph snapshot. Frames are rebuilt from empty every
// tick and handed to the renderer over a channel; the producer must not touch a
// frame after sending it.
type Frame struct {
	grid  config.Grid
	cells []rune // Flat slice: [y * cols + x]
}

// NewFrame returns a frame with every cell empty.
func NewFrame(grid config.Grid) *Frame {
	return &Frame{
		grid:  grid,
		cells: make([]rune, grid.Cells()),
	}
}

// Grid returns the frame dimensions.
func (f *Frame) Grid() config.Grid {
	return f.grid
}

// Set writes a glyph into a cell. Writes outside the grid are ignored.
func (f *Frame) Set(x, y int, glyph rune) {
	if !f.grid.Contains(x, y) {
		return
	}
	f.cells[y*f.grid.Cols+x] = glyph
}

// At returns the glyph in a cell, or Empty when the cell is blank or out of range.
func (f *Frame) At(x, y int) rune {
	if !f.grid.Contains(x, y) {
		return Empty
	}
	return f.cells[y*f.grid.Cols+x]
}

// Drawable is anything that can paint its own state onto a frame.
// Draw must only write; it may not depend on what the frame already holds.
type Drawable interface {
	Draw(f *Frame)
}

// Compose builds a fresh frame by drawing each drawable in order.
// Later drawables win where two of them write the same cell.
func Compose(grid config.Grid, drawables ...Drawable) *Frame {
	f := NewFrame(grid)
	for _, d := range drawables {
		d.Draw(f)
	}
	return f
}
