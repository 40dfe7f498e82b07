package draw

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/invaders/internal/config"
)

// Glyph colors on the tcell backend.
var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	glyphStyles  = map[rune]tcell.Style{
		'A': tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		'|': tcell.StyleDefault.Foreground(tcell.ColorYellow),
		'*': tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		'x': tcell.StyleDefault.Foreground(tcell.ColorWhite),
		'+': tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
)

// TcellPainter paints grid cells into a tcell screen. tcell keeps its own
// back buffer, Flush pushes the painted cells to the terminal.
type TcellPainter struct {
	screen tcell.Screen
	offCol int
	offRow int
}

var _ Painter = (*TcellPainter)(nil)

// NewTcellPainter creates a painter for an initialised screen, centering the grid.
func NewTcellPainter(screen tcell.Screen, grid config.Grid) (*TcellPainter, error) {
	width, height := screen.Size()
	offCol, offRow, err := CenterOffsets(grid, width, height)
	if err != nil {
		return nil, err
	}
	return &TcellPainter{screen: screen, offCol: offCol, offRow: offRow}, nil
}

// Paint sets the cell content; empty cells become blanks.
func (p *TcellPainter) Paint(col, row int, glyph rune) {
	style, ok := glyphStyles[glyph]
	if !ok {
		style = styleDefault
	}
	if glyph == Empty {
		glyph = ' '
	}
	p.screen.SetContent(col+p.offCol, row+p.offRow, glyph, nil, style)
}

// Flush shows the painted cells.
func (p *TcellPainter) Flush() error {
	p.screen.Show()
	return nil
}

// DrawBorder boxes the playfield when the offsets leave room for it.
func (p *TcellPainter) DrawBorder(grid config.Grid) {
	if p.offCol < 1 || p.offRow < 1 {
		return
	}
	left, top := p.offCol-1, p.offRow-1
	right, bottom := p.offCol+grid.Cols, p.offRow+grid.Rows
	for x := left + 1; x < right; x++ {
		p.screen.SetContent(x, top, '─', nil, styleBorder)
		p.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := top + 1; y < bottom; y++ {
		p.screen.SetContent(left, y, '│', nil, styleBorder)
		p.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	p.screen.SetContent(left, top, '┌', nil, styleBorder)
	p.screen.SetContent(right, top, '┐', nil, styleBorder)
	p.screen.SetContent(left, bottom, '└', nil, styleBorder)
	p.screen.SetContent(right, bottom, '┘', nil, styleBorder)
}

// OpenTcell creates and initialises a tcell screen: raw mode, alternate screen,
// hidden cursor. The caller must Fini the screen on every exit path.
func OpenTcell() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}
