package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
)

// Options configures a remote game.
type Options struct {
	Config config.Game
	Width  int // Remote terminal size in cells
	Height int
	Logger *log.Logger
}

// Play runs one game on a remote terminal: rw carries the raw key bytes in and
// the screen out. The game ends early once s is stopped. The terminal is put
// back on its main screen and a summary line is written before returning.
func Play(rw io.ReadWriter, s *Session, opts Options) (loop.Result, error) {
	grid := opts.Config.Grid
	offCol, offRow, err := draw.CenterOffsets(grid, opts.Width, opts.Height)
	if err != nil {
		fmt.Fprintf(rw, "Please resize your terminal to at least %dx%d and reconnect.\r\n", grid.Cols, grid.Rows)
		return loop.Result{}, err
	}

	if err := draw.EnterScreen(rw); err != nil {
		return loop.Result{}, fmt.Errorf("failed to enter alternate screen: %w", err)
	}

	cw := draw.NewChunkWriter(rw, offCol, offRow)
	cw.DrawBorder(grid)

	res, playErr := loop.Play(cw, loop.Options{
		Config: opts.Config,
		Input:  input.WithStop(input.StartStream(rw), s.Stopped()),
		Audio:  audio.Silent{},
		Logger: opts.Logger,
	})

	if err := draw.LeaveScreen(rw); err != nil && playErr == nil {
		playErr = fmt.Errorf("failed to leave alternate screen: %w", err)
	}
	if playErr != nil {
		return res, playErr
	}
	_, err = fmt.Fprintf(rw, "%s\r\n", res)
	return res, err
}
