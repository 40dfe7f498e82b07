package draw

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomz197/invaders/internal/config"
	"golang.org/x/term"
)

// maxChunkSize caps a single write so a frame travels in MTU-sized pieces over SSH.
const maxChunkSize = 1400

// ANSI sequences used to bracket a game session.
const (
	seqClear          = "\033[H\033[2J"
	seqHideCursor     = "\033[?25l"
	seqShowCursor     = "\033[?25h"
	seqEnterAltScreen = "\033[?1049h"
	seqLeaveAltScreen = "\033[?1049l"
	seqReset          = "\033[0m"
)

// ErrTerminalTooSmall is returned when the terminal cannot fit the playfield.
var ErrTerminalTooSmall = errors.New("terminal too small for playfield")

// Painter receives the cells a renderer decides to write.
// Coordinates are 0-based grid cells.
type Painter interface {
	Paint(col, row int, glyph rune)
	Flush() error
}

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). Paint accumulates cursor moves and glyphs, Flush
// writes them to the underlying writer.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all cursor coordinates (for playfield centering).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based
// playfield coordinates; offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Paint positions the cursor on a grid cell and writes its glyph.
// Empty cells are written as a blank so stale glyphs disappear.
func (cw *ChunkWriter) Paint(col, row int, glyph rune) {
	cw.MoveCursor(col+1, row+1)
	if glyph == Empty {
		glyph = ' '
	}
	cw.buf.WriteRune(glyph)
}

// WriteAt writes a string at a specific position. col and row are 1-based playfield coordinates.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

var _ Painter = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// DrawBorder writes a box around the playfield when the offsets leave room for it.
// The border sits one cell outside the grid, so it needs offsets of at least 1.
func (cw *ChunkWriter) DrawBorder(grid config.Grid) {
	if cw.offCol < 1 || cw.offRow < 1 {
		return
	}
	bar := strings.Repeat("─", grid.Cols)
	cw.WriteAt(0, 0, "┌"+bar+"┐")
	cw.WriteAt(0, grid.Rows+1, "└"+bar+"┘")
	for row := 1; row <= grid.Rows; row++ {
		cw.WriteAt(0, row, "│")
		cw.WriteAt(grid.Cols+1, row, "│")
	}
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// CenterOffsets returns the 0-based column and row offsets that center the grid
// in a terminal of the given size. It fails when the grid does not fit.
func CenterOffsets(grid config.Grid, termWidth, termHeight int) (offCol, offRow int, err error) {
	if termWidth < grid.Cols || termHeight < grid.Rows {
		return 0, 0, fmt.Errorf("%w: need %dx%d, have %dx%d",
			ErrTerminalTooSmall, grid.Cols, grid.Rows, termWidth, termHeight)
	}
	return (termWidth - grid.Cols) / 2, (termHeight - grid.Rows) / 2, nil
}

// EnterScreen switches to the alternate screen, hides the cursor and clears it.
func EnterScreen(w io.Writer) error {
	_, err := io.WriteString(w, seqEnterAltScreen+seqHideCursor+seqClear)
	return err
}

// LeaveScreen shows the cursor and returns to the main screen.
func LeaveScreen(w io.Writer) error {
	_, err := io.WriteString(w, seqReset+seqShowCursor+seqLeaveAltScreen)
	return err
}

// Terminal is a local terminal in raw mode on the alternate screen.
type Terminal struct {
	fd       int
	out      io.Writer
	oldState *term.State
	offCol   int
	offRow   int
}

// OpenTerminal puts in into raw mode and out onto the alternate screen, checking
// that the playfield fits. Close undoes both.
func OpenTerminal(in *os.File, out io.Writer, grid config.Grid, sizeFunc TermSizeFunc) (*Terminal, error) {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	width, height, err := sizeFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to read terminal size: %w", err)
	}
	offCol, offRow, err := CenterOffsets(grid, width, height)
	if err != nil {
		return nil, err
	}

	fd := int(in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	if err := EnterScreen(out); err != nil {
		_ = term.Restore(fd, oldState)
		return nil, fmt.Errorf("failed to enter alternate screen: %w", err)
	}

	return &Terminal{fd: fd, out: out, oldState: oldState, offCol: offCol, offRow: offRow}, nil
}

// Painter returns a ChunkWriter positioned on the centered playfield.
func (t *Terminal) Painter() *ChunkWriter {
	return NewChunkWriter(t.out, t.offCol, t.offRow)
}

// Close leaves the alternate screen and restores the original terminal mode.
// Both steps are attempted; the first failure is returned.
func (t *Terminal) Close() error {
	screenErr := LeaveScreen(t.out)
	if err := term.Restore(t.fd, t.oldState); err != nil {
		return fmt.Errorf("failed to disable raw mode: %w", err)
	}
	if screenErr != nil {
		return fmt.Errorf("failed to leave alternate screen: %w", screenErr)
	}
	return nil
}

// EmergencyReset writes the sequences that bring a terminal back to a usable state.
// Used from panic handlers where the Terminal value may not be reachable.
func EmergencyReset(w io.Writer) {
	_, _ = io.WriteString(w, seqReset+seqShowCursor+seqLeaveAltScreen+"\r\n")
}
