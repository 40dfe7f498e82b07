package input

import (
	"github.com/gdamore/tcell/v2"
)

// EventPoller is the part of tcell.Screen the key pump needs.
type EventPoller interface {
	PollEvent() tcell.Event
}

// TcellSource pumps key events from a tcell screen into a channel.
type TcellSource struct {
	keys chan Key
}

var _ Source = (*TcellSource)(nil)

// StartTcell spawns the pump goroutine. It exits when PollEvent returns nil,
// which tcell does once the screen is finalised.
func StartTcell(screen EventPoller) *TcellSource {
	s := &TcellSource{keys: make(chan Key, 128)}
	go func() {
		defer close(s.keys)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if kev, ok := ev.(*tcell.EventKey); ok {
				s.keys <- TcellKey(kev)
			}
		}
	}()
	return s
}

// Poll implements Source.
func (s *TcellSource) Poll() (Key, bool) {
	select {
	case k, ok := <-s.keys:
		if !ok {
			return KeyQuit, true
		}
		return k, true
	default:
		return KeyNone, false
	}
}

// TcellKey maps a tcell key event to a game key.
func TcellKey(ev *tcell.EventKey) Key {
	return tcellKey(ev.Key(), ev.Rune())
}

func tcellKey(k tcell.Key, r rune) Key {
	switch k {
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyEnter:
		return KeyFire
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyQuit
	case tcell.KeyRune:
		switch r {
		case ' ':
			return KeyFire
		case 'q', 'Q':
			return KeyQuit
		}
	}
	return KeyOther
}
