package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
)

// tick advances the game by delta: input, update, hit detection, frame
// submission, the tick pause and the end-of-game check. It reports the outcome
// once the game is over.
func (g *Game) tick(delta time.Duration) (Outcome, bool) {
	if !g.step(delta) {
		g.audio.Play(audio.CueLose)
		g.result.Outcome = OutcomeQuit
		return OutcomeQuit, true
	}

	time.Sleep(g.cfg.TickPause)

	outcome, over := g.verdict()
	if over {
		g.result.Outcome = outcome
	}
	return outcome, over
}

// step runs one tick up to and including frame submission.
// It returns false when the player quit.
func (g *Game) step(delta time.Duration) bool {
	g.result.Ticks++

	if !g.processInput() {
		return false
	}

	g.player.Update(delta)
	if g.invaders.Update(delta) {
		g.audio.Play(audio.CueMove)
		g.logger.Debug("formation stepped", "interval", g.invaders.MoveInterval(), "direction", g.invaders.Direction())
	}

	before := len(g.invaders.Army)
	if g.player.DetectHits(g.invaders) {
		g.result.Kills += before - len(g.invaders.Army)
		g.audio.Play(audio.CueExplode)
		g.logger.Debug("invader destroyed", "remaining", len(g.invaders.Army))
	}

	g.submit(draw.Compose(g.cfg.Grid, g.drawables...))
	return true
}

// processInput drains every pending key. It returns false on quit.
func (g *Game) processInput() bool {
	for {
		key, ok := g.input.Poll()
		if !ok {
			return true
		}
		switch key {
		case input.KeyLeft:
			g.player.MoveLeft()
		case input.KeyRight:
			g.player.MoveRight()
		case input.KeyFire:
			if g.player.Shoot() {
				g.result.ShotsFired++
				g.audio.Play(audio.CuePew)
			}
		case input.KeyQuit:
			return false
		}
	}
}

// submit hands f to the renderer without blocking. When the backlog is full the
// oldest queued frame is discarded, so the newest frame always gets through.
func (g *Game) submit(f *draw.Frame) {
	for {
		select {
		case g.frames <- f:
			return
		default:
		}
		select {
		case <-g.frames:
			g.dropped++
		default:
		}
	}
}

// verdict checks for a win, then a loss, playing the matching cue.
func (g *Game) verdict() (Outcome, bool) {
	switch {
	case g.invaders.AllKilled():
		g.audio.Play(audio.CueWin)
		return OutcomeWon, true
	case g.invaders.ReachedBottom():
		g.audio.Play(audio.CueLose)
		return OutcomeLost, true
	}
	return 0, false
}
