package object

import (
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
)

// Player is the cannon at the bottom of the playfield and everything it has fired.
type Player struct {
	X, Y   int
	Shots  []Shot
	Blasts []Blast

	grid     config.Grid
	maxShots int
	shotStep time.Duration
}

// NewPlayer places the player at the bottom row, centered.
func NewPlayer(cfg config.Game) *Player {
	return &Player{
		X:        cfg.Grid.Cols / 2,
		Y:        cfg.Grid.Rows - 1,
		Shots:    make([]Shot, 0, cfg.MaxShots),
		grid:     cfg.Grid,
		maxShots: cfg.MaxShots,
		shotStep: cfg.ShotStep,
	}
}

// MoveLeft shifts the player one column left, stopping at the wall.
func (p *Player) MoveLeft() {
	if p.X > 0 {
		p.X--
	}
}

// MoveRight shifts the player one column right, stopping at the wall.
func (p *Player) MoveRight() {
	if p.X < p.grid.Cols-1 {
		p.X++
	}
}

// Shoot fires a shot from just above the player. It fails, changing nothing,
// while the maximum number of shots is already in flight.
func (p *Player) Shoot() bool {
	if len(p.Shots) >= p.maxShots {
		return false
	}
	p.Shots = append(p.Shots, NewShot(p.X, p.Y-1, p.shotStep))
	return true
}

// Update moves every shot upward and drops the ones that left the grid,
// then ages the blast markers.
func (p *Player) Update(delta time.Duration) {
	kept := p.Shots[:0] // reuse backing array
	for i := range p.Shots {
		s := p.Shots[i]
		if !s.Update(delta) {
			kept = append(kept, s)
		}
	}
	p.Shots = kept

	blasts := p.Blasts[:0]
	for i := range p.Blasts {
		b := p.Blasts[i]
		if !b.Update(delta) {
			blasts = append(blasts, b)
		}
	}
	p.Blasts = blasts
}

// DetectHits removes every shot that shares a cell with an invader, together with
// that invader, leaving a blast marker behind. Returns true if anything was hit.
// Each shot is checked against the whole army: O(shots × invaders).
func (p *Player) DetectHits(inv *Invaders) bool {
	hit := false
	kept := p.Shots[:0]
	for _, s := range p.Shots {
		if inv.KillAt(s.X, s.Y) {
			p.Blasts = append(p.Blasts, NewBlast(s.X, s.Y, config.BlastDuration))
			hit = true
			continue
		}
		kept = append(kept, s)
	}
	p.Shots = kept
	return hit
}

// Draw paints the player, its shots and any blast markers.
func (p *Player) Draw(f *draw.Frame) {
	f.Set(p.X, p.Y, GlyphPlayer)
	for _, s := range p.Shots {
		f.Set(s.X, s.Y, GlyphShot)
	}
	for _, b := range p.Blasts {
		f.Set(b.X, b.Y, GlyphBlast)
	}
}

var _ draw.Drawable = (*Player)(nil)
