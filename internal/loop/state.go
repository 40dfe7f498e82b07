package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

// Outcome is how a game ended.
type Outcome int

const (
	OutcomeQuit Outcome = iota // Player quit, input closed, or the game was stopped
	OutcomeWon                 // Every invader destroyed
	OutcomeLost                // An invader reached the bottom row
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "quit"
	}
}

// Result summarises a finished game.
type Result struct {
	Outcome    Outcome
	Kills      int
	ShotsFired int
	Ticks      int
	Elapsed    time.Duration
}

// String renders the one-line summary printed after the terminal is restored.
func (r Result) String() string {
	var head string
	switch r.Outcome {
	case OutcomeWon:
		head = "You win!"
	case OutcomeLost:
		head = "The invaders landed."
	default:
		head = "Game abandoned."
	}
	return fmt.Sprintf("%s %d kills, %d shots fired in %s.",
		head, r.Kills, r.ShotsFired, r.Elapsed.Round(time.Second))
}

// Options wires a game to its surroundings.
type Options struct {
	Config config.Game
	Input  input.Source
	Audio  audio.Player // nil plays nothing
	Logger *log.Logger  // nil discards
}

// Game holds the state of a single game. It is owned by the goroutine calling
// Run (or Tick); the only thing shared with the outside is the frame channel.
type Game struct {
	cfg    config.Game
	input  input.Source
	audio  audio.Player
	logger *log.Logger

	player    *object.Player
	invaders  *object.Invaders
	drawables []draw.Drawable
	frames    chan *draw.Frame

	result  Result
	dropped int
}

// New builds a game with a fresh formation and the player at the bottom.
func New(opts Options) *Game {
	player := object.NewPlayer(opts.Config)
	invaders := object.NewInvaders(opts.Config)

	g := &Game{
		cfg:      opts.Config,
		input:    opts.Input,
		audio:    opts.Audio,
		logger:   opts.Logger,
		player:   player,
		invaders: invaders,
		// Draw order is fixed: invaders overwrite a shot sharing their cell.
		drawables: []draw.Drawable{player, invaders},
		frames:    make(chan *draw.Frame, max(opts.Config.FrameBacklog, 1)),
	}
	if g.audio == nil {
		g.audio = audio.Silent{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

// Frames is the receive side of the frame channel. It is closed when Run returns.
func (g *Game) Frames() <-chan *draw.Frame {
	return g.frames
}

// Result returns the running tally.
func (g *Game) Result() Result {
	return g.result
}
