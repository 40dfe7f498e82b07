// Package audio plays the game's sound cues.
package audio

// Cue names one of the game's sound effects.
type Cue int

const (
	CueStartup Cue = iota
	CuePew
	CueMove
	CueExplode
	CueWin
	CueLose
)

// Cues lists every cue in declaration order.
var Cues = []Cue{CueStartup, CuePew, CueMove, CueExplode, CueWin, CueLose}

func (c Cue) String() string {
	switch c {
	case CueStartup:
		return "startup"
	case CuePew:
		return "pew"
	case CueMove:
		return "move"
	case CueExplode:
		return "explode"
	case CueWin:
		return "win"
	case CueLose:
		return "lose"
	default:
		return "unknown"
	}
}

// Player fires cues. Play must not block the caller for the length of the sound.
type Player interface {
	Play(c Cue)
}

// Silent is a Player that discards every cue. SSH sessions and muted local
// games use it.
type Silent struct{}

var _ Player = Silent{}

// Play implements Player.
func (Silent) Play(Cue) {}
