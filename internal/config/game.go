package config

import (
	"fmt"
	"time"
)

// Grid geometry defaults - the coordinate space shared by frames, invaders and the player.
const (
	DefaultCols = 40
	DefaultRows = 20
)

// Formation cadence
const (
	DefaultMoveInterval = 2000 * time.Millisecond // Starting time between formation steps
	MoveIntervalStep    = 250 * time.Millisecond  // Speed-up applied on every descent
	MinMoveInterval     = 250 * time.Millisecond  // Floor for the formation cadence
)

// Formation layout: invaders occupy even cells strictly inside these bounds.
const (
	FormationEdgeCols = 2 // Columns kept free on each side at start
	FormationRowLimit = 9 // Invaders start above this row
)

// Player
const (
	DefaultMaxShots  = 2
	DefaultShotStep  = 50 * time.Millisecond  // Time for a shot to rise one row
	BlastDuration    = 250 * time.Millisecond // How long a hit marker stays on screen
	DefaultTickPause = time.Millisecond       // Producer sleep per tick
)

// Rendering
const (
	DefaultFrameBacklog = 64 // Frames buffered between the loop and the renderer
)

// Audio
const (
	DefaultVolume   = 0.5
	AudioDrainLimit = 3 * time.Second // Longest wait for queued cues before exit
)

// Grid is the fixed playfield size in cells.
type Grid struct {
	Cols int
	Rows int
}

// Contains reports whether (x, y) lies inside the grid.
func (g Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Cols * g.Rows
}

// Game holds every tunable the game loop and its entities are built from.
type Game struct {
	Grid         Grid
	MoveInterval time.Duration // Initial formation cadence
	BottomRow    int           // Row at which the formation has landed
	MaxShots     int           // Shots allowed in flight at once
	ShotStep     time.Duration // Shot rise cadence
	TickPause    time.Duration // Producer sleep per tick
	FrameBacklog int           // Render channel capacity
	Mute         bool
	Volume       float64
}

// DefaultGame returns the stock 40x20 arcade configuration.
func DefaultGame() Game {
	return Game{
		Grid:         Grid{Cols: DefaultCols, Rows: DefaultRows},
		MoveInterval: DefaultMoveInterval,
		BottomRow:    DefaultRows - 1,
		MaxShots:     DefaultMaxShots,
		ShotStep:     DefaultShotStep,
		TickPause:    DefaultTickPause,
		FrameBacklog: DefaultFrameBacklog,
		Volume:       DefaultVolume,
	}
}

// GameFromEnv returns DefaultGame overridden by INVADERS_* environment variables.
func GameFromEnv() (Game, error) {
	cfg := DefaultGame()
	cfg.Grid.Cols = GetEnvInt("INVADERS_COLS", cfg.Grid.Cols)
	cfg.Grid.Rows = GetEnvInt("INVADERS_ROWS", cfg.Grid.Rows)
	cfg.BottomRow = cfg.Grid.Rows - 1
	cfg.MoveInterval = GetEnvDuration("INVADERS_MOVE_INTERVAL", cfg.MoveInterval)
	cfg.MaxShots = GetEnvInt("INVADERS_MAX_SHOTS", cfg.MaxShots)
	cfg.ShotStep = GetEnvDuration("INVADERS_SHOT_STEP", cfg.ShotStep)
	cfg.TickPause = GetEnvDuration("INVADERS_TICK", cfg.TickPause)
	cfg.Mute = GetEnvBool("INVADERS_MUTE", cfg.Mute)
	cfg.Volume = GetEnvFloat("INVADERS_VOLUME", cfg.Volume)
	return cfg, cfg.Validate()
}

// Validate checks that the configuration describes a playable game.
func (c Game) Validate() error {
	// The formation needs at least one even column strictly inside the edge margins
	// and the player needs a row below the formation to fire from.
	if c.Grid.Cols < 2*FormationEdgeCols+2 {
		return fmt.Errorf("grid too narrow: %d columns", c.Grid.Cols)
	}
	if c.Grid.Rows < FormationRowLimit+2 {
		return fmt.Errorf("grid too short: %d rows", c.Grid.Rows)
	}
	if c.BottomRow <= 0 || c.BottomRow >= c.Grid.Rows {
		return fmt.Errorf("bottom row %d outside grid", c.BottomRow)
	}
	if c.MaxShots < 1 {
		return fmt.Errorf("max shots must be positive, got %d", c.MaxShots)
	}
	if c.ShotStep <= 0 {
		return fmt.Errorf("shot step must be positive, got %s", c.ShotStep)
	}
	if c.MoveInterval <= 0 {
		return fmt.Errorf("move interval must be positive, got %s", c.MoveInterval)
	}
	if c.TickPause < 0 {
		return fmt.Errorf("tick pause must not be negative, got %s", c.TickPause)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be within [0, 1], got %g", c.Volume)
	}
	return nil
}
