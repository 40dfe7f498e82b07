package object

import (
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
)

func newTestPlayer(t *testing.T) (*Player, config.Game) {
	t.Helper()
	cfg := config.DefaultGame()
	return NewPlayer(cfg), cfg
}

func TestPlayerStartsBottomCenter(t *testing.T) {
	p, cfg := newTestPlayer(t)
	if p.X != cfg.Grid.Cols/2 || p.Y != cfg.Grid.Rows-1 {
		t.Errorf("start = (%d,%d)", p.X, p.Y)
	}
}

func TestMoveLeftClampsAtWall(t *testing.T) {
	p, _ := newTestPlayer(t)
	p.X = 5
	for i := 0; i < 4; i++ {
		p.MoveLeft()
	}
	if p.X != 1 {
		t.Fatalf("x = %d after four moves, want 1", p.X)
	}
	p.MoveLeft()
	if p.X != 0 {
		t.Fatalf("x = %d after five moves, want 0", p.X)
	}
	p.MoveLeft()
	if p.X != 0 {
		t.Errorf("x = %d, moved past the left wall", p.X)
	}
}

func TestMoveRightClampsAtWall(t *testing.T) {
	p, cfg := newTestPlayer(t)
	p.X = cfg.Grid.Cols - 2
	p.MoveRight()
	p.MoveRight()
	if p.X != cfg.Grid.Cols-1 {
		t.Errorf("x = %d, want %d", p.X, cfg.Grid.Cols-1)
	}
}

func TestShootRespectsShotCap(t *testing.T) {
	p, cfg := newTestPlayer(t)
	for i := 0; i < cfg.MaxShots; i++ {
		if !p.Shoot() {
			t.Fatalf("shot %d refused", i)
		}
	}
	if p.Shoot() {
		t.Error("shot beyond the cap accepted")
	}
	if len(p.Shots) != cfg.MaxShots {
		t.Errorf("shots in flight = %d, want %d", len(p.Shots), cfg.MaxShots)
	}
	if s := p.Shots[0]; s.X != p.X || s.Y != p.Y-1 {
		t.Errorf("shot spawned at (%d,%d), want (%d,%d)", s.X, s.Y, p.X, p.Y-1)
	}
}

func TestShotsRiseAndLeaveGrid(t *testing.T) {
	p, cfg := newTestPlayer(t)
	p.Shoot()
	start := p.Shots[0].Y

	p.Update(cfg.ShotStep / 2)
	if p.Shots[0].Y != start {
		t.Fatal("shot moved before its step elapsed")
	}
	p.Update(cfg.ShotStep / 2)
	if p.Shots[0].Y != start-1 {
		t.Fatalf("shot row = %d, want %d", p.Shots[0].Y, start-1)
	}

	// start-1 more steps reach row 0, one more leaves the grid.
	for i := 0; i < start-1; i++ {
		p.Update(cfg.ShotStep)
	}
	if len(p.Shots) != 1 || p.Shots[0].Y != 0 {
		t.Fatalf("shots = %+v, want one shot on row 0", p.Shots)
	}
	p.Update(cfg.ShotStep)
	if len(p.Shots) != 0 {
		t.Errorf("shot still alive after leaving the grid: %+v", p.Shots)
	}
	if !p.Shoot() {
		t.Error("could not fire again after the shot left")
	}
}

func TestDetectHitsRemovesPair(t *testing.T) {
	p, cfg := newTestPlayer(t)
	inv := NewInvaders(cfg)
	inv.Army = []Invader{{X: 4, Y: 4}, {X: 8, Y: 4}}
	p.Shots = []Shot{NewShot(4, 4, cfg.ShotStep), NewShot(6, 4, cfg.ShotStep)}

	if !p.DetectHits(inv) {
		t.Fatal("DetectHits() = false with a matching pair")
	}
	if len(p.Shots) != 1 || p.Shots[0].X != 6 {
		t.Errorf("shots after hit = %+v", p.Shots)
	}
	if len(inv.Army) != 1 || inv.Army[0] != (Invader{X: 8, Y: 4}) {
		t.Errorf("army after hit = %+v", inv.Army)
	}
	if len(p.Blasts) != 1 || p.Blasts[0].X != 4 || p.Blasts[0].Y != 4 {
		t.Errorf("blasts = %+v", p.Blasts)
	}
}

func TestDetectHitsNoMatch(t *testing.T) {
	p, cfg := newTestPlayer(t)
	inv := NewInvaders(cfg)
	army := len(inv.Army)
	p.Shots = []Shot{NewShot(1, 1, cfg.ShotStep)}

	if p.DetectHits(inv) {
		t.Error("DetectHits() = true without a match")
	}
	if len(p.Shots) != 1 || len(inv.Army) != army {
		t.Error("state changed without a match")
	}
}

func TestDetectHitsOneInvaderPerShot(t *testing.T) {
	p, cfg := newTestPlayer(t)
	inv := NewInvaders(cfg)
	inv.Army = []Invader{{X: 4, Y: 4}}
	// Two shots on the same cell: only one invader to take.
	p.Shots = []Shot{NewShot(4, 4, cfg.ShotStep), NewShot(4, 4, cfg.ShotStep)}

	if !p.DetectHits(inv) {
		t.Fatal("DetectHits() = false")
	}
	if !inv.AllKilled() {
		t.Error("invader survived")
	}
	if len(p.Shots) != 1 {
		t.Errorf("shots = %d, want the second shot to survive", len(p.Shots))
	}
}

func TestBlastsExpire(t *testing.T) {
	p, _ := newTestPlayer(t)
	p.Blasts = []Blast{NewBlast(3, 3, config.BlastDuration)}
	p.Update(config.BlastDuration - time.Millisecond)
	if len(p.Blasts) != 1 {
		t.Fatal("blast expired early")
	}
	p.Update(time.Millisecond)
	if len(p.Blasts) != 0 {
		t.Error("blast outlived its duration")
	}
}

func TestPlayerDraw(t *testing.T) {
	p, cfg := newTestPlayer(t)
	p.Shoot()
	p.Blasts = []Blast{NewBlast(1, 1, config.BlastDuration)}

	f := draw.NewFrame(cfg.Grid)
	p.Draw(f)
	if f.At(p.X, p.Y) != GlyphPlayer {
		t.Error("player glyph missing")
	}
	if f.At(p.X, p.Y-1) != GlyphShot {
		t.Error("shot glyph missing")
	}
	if f.At(1, 1) != GlyphBlast {
		t.Error("blast glyph missing")
	}
}

func TestTimer(t *testing.T) {
	tm := NewTimer(100 * time.Millisecond)
	tm.Tick(40 * time.Millisecond)
	if tm.Finished() || tm.left != 60*time.Millisecond {
		t.Fatalf("left = %s", tm.left)
	}
	tm.Tick(time.Second)
	if !tm.Finished() || tm.left != 0 {
		t.Fatal("overshoot not clamped")
	}
	tm.Reset()
	if tm.left != tm.Duration() || tm.Fraction() != 1 {
		t.Errorf("after Reset left = %s", tm.left)
	}
}
