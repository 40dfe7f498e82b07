package object

import (
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
)

// Invader is one live member of the formation.
type Invader struct {
	X, Y int
}

// Invaders is the enemy formation. It steps sideways on every tick of its move
// timer; when the leading edge touches a wall it drops a row instead, reverses,
// and speeds up.
type Invaders struct {
	Army      []Invader
	grid      config.Grid
	bottomRow int
	moveTimer Timer
	direction int // -1 moving left, +1 moving right
}

// NewInvaders builds the starting formation: every even cell away from the side
// walls and the top row, above FormationRowLimit.
func NewInvaders(cfg config.Game) *Invaders {
	grid := cfg.Grid
	army := make([]Invader, 0, (grid.Cols/2)*(config.FormationRowLimit/2))
	for x := 0; x < grid.Cols; x++ {
		for y := 0; y < grid.Rows; y++ {
			if x < config.FormationEdgeCols || x >= grid.Cols-config.FormationEdgeCols {
				continue
			}
			if y == 0 || y >= config.FormationRowLimit {
				continue
			}
			if x%2 != 0 || y%2 != 0 {
				continue
			}
			army = append(army, Invader{X: x, Y: y})
		}
	}

	interval := cfg.MoveInterval
	if interval < config.MinMoveInterval {
		interval = config.MinMoveInterval
	}

	return &Invaders{
		Army:      army,
		grid:      grid,
		bottomRow: cfg.BottomRow,
		moveTimer: NewTimer(interval),
		direction: 1,
	}
}

// Update advances the move timer by delta and steps the formation when it fires.
// Returns true when the formation moved this tick.
func (inv *Invaders) Update(delta time.Duration) bool {
	// A landed formation stays put; the game is over at that point.
	if inv.ReachedBottom() {
		return false
	}

	inv.moveTimer.Tick(delta)
	if !inv.moveTimer.Finished() {
		return false
	}
	inv.moveTimer.Reset()

	descend := false
	if inv.direction == -1 {
		if inv.minX() == 0 {
			inv.direction = 1
			descend = true
		}
	} else {
		if inv.maxX() == inv.grid.Cols-1 {
			inv.direction = -1
			descend = true
		}
	}

	if descend {
		next := inv.moveTimer.Duration() - config.MoveIntervalStep
		if next < config.MinMoveInterval {
			next = config.MinMoveInterval
		}
		inv.moveTimer = NewTimer(next)
		for i := range inv.Army {
			inv.Army[i].Y++
		}
	} else {
		for i := range inv.Army {
			inv.Army[i].X += inv.direction
		}
	}

	return true
}

// minX returns the leftmost live column, or 0 for an empty army.
func (inv *Invaders) minX() int {
	if len(inv.Army) == 0 {
		return 0
	}
	m := inv.Army[0].X
	for _, in := range inv.Army[1:] {
		if in.X < m {
			m = in.X
		}
	}
	return m
}

// maxX returns the rightmost live column, or 0 for an empty army.
func (inv *Invaders) maxX() int {
	m := 0
	for _, in := range inv.Army {
		if in.X > m {
			m = in.X
		}
	}
	return m
}

// KillAt removes the invader occupying (x, y). Returns false if the cell is empty.
func (inv *Invaders) KillAt(x, y int) bool {
	for i, in := range inv.Army {
		if in.X == x && in.Y == y {
			last := len(inv.Army) - 1
			inv.Army[i] = inv.Army[last]
			inv.Army = inv.Army[:last]
			return true
		}
	}
	return false
}

// AllKilled reports whether the army is empty.
func (inv *Invaders) AllKilled() bool {
	return len(inv.Army) == 0
}

// ReachedBottom reports whether any invader has reached the bottom row.
func (inv *Invaders) ReachedBottom() bool {
	for _, in := range inv.Army {
		if in.Y >= inv.bottomRow {
			return true
		}
	}
	return false
}

// Direction returns -1 when the formation is marching left, +1 when right.
func (inv *Invaders) Direction() int {
	return inv.direction
}

// MoveInterval returns the current time between formation steps.
func (inv *Invaders) MoveInterval() time.Duration {
	return inv.moveTimer.Duration()
}

// Draw paints the formation, alternating glyphs across each move interval.
func (inv *Invaders) Draw(f *draw.Frame) {
	glyph := rune(GlyphInvaderStep)
	if inv.moveTimer.Fraction() > 0.5 {
		glyph = GlyphInvader
	}
	for _, in := range inv.Army {
		f.Set(in.X, in.Y, glyph)
	}
}

var _ draw.Drawable = (*Invaders)(nil)
