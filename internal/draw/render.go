package draw

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/config"
)

// Render paints cur onto p. With force every cell is written; otherwise only the cells
// whose glyph differs from last. Returns the number of cells written.
// Frames must share the same grid.
func Render(p Painter, last, cur *Frame, force bool) (int, error) {
	grid := cur.Grid()
	written := 0
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			glyph := cur.At(x, y)
			if !force && glyph == last.At(x, y) {
				continue
			}
			p.Paint(x, y, glyph)
			written++
		}
	}
	return written, p.Flush()
}

// Renderer owns the previously painted frame and paints every frame it receives,
// on its own goroutine. The receive side of the frame channel is its only input;
// closing the channel is its only shutdown signal.
type Renderer struct {
	painter Painter
	frames  <-chan *Frame
	last    *Frame
	done    chan struct{}
	err     error
	painted int
	logger  *log.Logger
}

// StartRenderer spawns the render goroutine. It first force-paints an empty frame so
// the playfield starts from a known state, then diffs each received frame against the
// one before it.
func StartRenderer(p Painter, grid config.Grid, frames <-chan *Frame, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Renderer{
		painter: p,
		frames:  frames,
		last:    NewFrame(grid),
		done:    make(chan struct{}),
		logger:  logger,
	}
	go r.run()
	return r
}

func (r *Renderer) run() {
	defer close(r.done)

	if _, err := Render(r.painter, r.last, r.last, true); err != nil {
		r.fail(err)
	}

	for cur := range r.frames {
		// After a paint failure the terminal is gone; keep draining so the
		// producer never blocks, but stop writing.
		if r.err != nil {
			continue
		}
		if _, err := Render(r.painter, r.last, cur, false); err != nil {
			r.fail(err)
			continue
		}
		r.last = cur
		r.painted++
	}
	r.logger.Debug("renderer stopped", "frames", r.painted)
}

func (r *Renderer) fail(err error) {
	r.err = err
	r.logger.Warn("render failed, dropping further frames", "err", err)
}

// Wait blocks until the frame channel has been closed and the last frame painted.
// It returns the first paint error, if any.
func (r *Renderer) Wait() error {
	<-r.done
	return r.err
}
