// Package loop runs a game of invaders: the tick loop on the calling goroutine
// and the renderer on its own.
package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/draw"
)

// Run plays the game to its end on the calling goroutine with the
// Input → Update → Draw cycle, then closes the frame channel.
func (g *Game) Run() Result {
	defer close(g.frames)

	g.logger.Info("game started",
		"cols", g.cfg.Grid.Cols, "rows", g.cfg.Grid.Rows, "invaders", len(g.invaders.Army))
	g.audio.Play(audio.CueStartup)

	start := time.Now()
	last := start
	for {
		now := time.Now()
		delta := now.Sub(last)
		last = now

		if _, over := g.tick(delta); over {
			break
		}
	}
	g.result.Elapsed = time.Since(start)

	g.logger.Info("game over",
		"outcome", g.result.Outcome,
		"kills", g.result.Kills,
		"shots", g.result.ShotsFired,
		"ticks", g.result.Ticks,
		"dropped_frames", g.dropped,
		"elapsed", g.result.Elapsed)
	return g.result
}

// Play runs a complete game against p: it starts the renderer, runs the loop,
// and joins the renderer once the last frame has been painted.
func Play(p draw.Painter, opts Options) (Result, error) {
	g := New(opts)
	r := draw.StartRenderer(p, opts.Config.Grid, g.Frames(), g.logger)

	res := g.Run()
	if err := r.Wait(); err != nil {
		return res, fmt.Errorf("failed to render: %w", err)
	}
	return res, nil
}
