// Package input turns raw terminal input into the game's small set of keys.
package input

import (
	"io"
)

// Key is a recognised game key.
type Key int

const (
	KeyNone  Key = iota
	KeyLeft      // Left arrow
	KeyRight     // Right arrow
	KeyFire      // Space or Enter
	KeyQuit      // Esc, q or Ctrl-C; also sent once the input stream ends
	KeyOther     // Anything else; ignored by the game
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	case KeyQuit:
		return "quit"
	case KeyOther:
		return "other"
	default:
		return "none"
	}
}

// Source yields pending keys without blocking.
type Source interface {
	// Poll returns the next pending key, or false when nothing is waiting.
	Poll() (Key, bool)
}

// Stream delivers keys parsed from a raw byte reader (a terminal in raw mode or
// an SSH session).
type Stream struct {
	ch      chan byte
	closed  bool
	buf     []byte
	tail    []byte // Unfinished escape sequence held back for one poll
	held    bool
	pending []Key
}

var _ Source = (*Stream)(nil)

// StartStream spawns a goroutine that reads from r and feeds the stream.
// The goroutine exits when r returns an error (EOF included). Bytes that arrive
// while the stream's buffer is full are dropped, so a game that has stopped
// polling never holds the reader back from its EOF.
func StartStream(r io.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		var chunk [64]byte
		for {
			n, err := r.Read(chunk[:])
			for _, b := range chunk[:n] {
				select {
				case s.ch <- b:
				default:
				}
			}
			if err != nil {
				close(s.ch)
				return
			}
		}
	}()
	return s
}

// Poll implements Source. Once the underlying reader has ended every call
// reports KeyQuit.
func (s *Stream) Poll() (Key, bool) {
	if len(s.pending) == 0 {
		s.fill()
	}
	if len(s.pending) == 0 {
		if s.closed {
			return KeyQuit, true
		}
		return KeyNone, false
	}
	k := s.pending[0]
	s.pending = s.pending[1:]
	return k, true
}

// fill drains all available bytes (non-blocking) and parses them into keys.
// An escape sequence cut off at the end of the read is held back for one poll so
// its remaining bytes can arrive; if none do, it is parsed as typed.
func (s *Stream) fill() {
	s.buf = append(s.buf[:0], s.tail...)
	s.tail = s.tail[:0]
	arrived := 0
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
			arrived++
		default:
			break drain
		}
	}

	if n := unfinishedEscape(s.buf); n > 0 && !s.closed && (!s.held || arrived > 0) {
		cut := len(s.buf) - n
		s.tail = append(s.tail, s.buf[cut:]...)
		s.buf = s.buf[:cut]
		s.held = true
	} else {
		s.held = false
	}

	s.pending = ParseKeys(s.pending[:0], s.buf)
}

// unfinishedEscape returns the length of an escape sequence cut off at the end of buf.
func unfinishedEscape(buf []byte) int {
	for i := 0; i < len(buf); {
		if buf[i] != '\x1b' {
			i++
			continue
		}
		_, n, complete := escape(buf[i:])
		if !complete {
			return len(buf) - i
		}
		i += n
	}
	return 0
}

// ParseKeys appends the keys encoded in buf to dst. Handles CSI and SS3 arrow
// sequences and Alt (meta) chords; only a lone ESC is a quit.
func ParseKeys(dst []Key, buf []byte) []Key {
	for i := 0; i < len(buf); {
		if buf[i] == '\x1b' {
			k, n, _ := escape(buf[i:])
			dst = append(dst, k)
			i += n
			continue
		}
		dst = append(dst, byteKey(buf[i]))
		i++
	}
	return dst
}

// escape decodes the sequence starting at buf[0], which must be ESC. It returns
// the key, the number of bytes consumed and whether the sequence was complete.
func escape(buf []byte) (Key, int, bool) {
	if len(buf) == 1 {
		return KeyQuit, 1, false
	}
	switch buf[1] {
	case '[', 'O':
		// Arrow keys: ESC [ C / ESC [ D, ESC O C / ESC O D in application mode,
		// and modified forms such as ESC [ 1 ; 5 D.
		for j := 2; j < len(buf); j++ {
			c := buf[j]
			switch {
			case c >= 0x40 && c <= 0x7e:
				switch c {
				case 'C':
					return KeyRight, j + 1, true
				case 'D':
					return KeyLeft, j + 1, true
				}
				return KeyOther, j + 1, true
			case c < 0x20 || c > 0x3f:
				return KeyOther, j, true
			}
		}
		return KeyOther, len(buf), false
	case '\x1b':
		// Meta prefix on a sequence, e.g. Option+Left as ESC ESC [ D.
		k, n, complete := escape(buf[1:])
		if k == KeyQuit {
			k = KeyOther
		}
		return k, n + 1, complete
	default:
		// Alt chord: ESC followed by the key.
		return KeyOther, 2, true
	}
}

// byteKey maps a single byte to a key.
func byteKey(b byte) Key {
	switch b {
	case ' ', '\r', '\n':
		return KeyFire
	case 'q', 'Q', '\x03':
		return KeyQuit
	default:
		return KeyOther
	}
}

// Stoppable wraps a source so that closing stop injects a quit.
type Stoppable struct {
	src  Source
	stop <-chan struct{}
}

var _ Source = (*Stoppable)(nil)

// WithStop returns src, reporting KeyQuit once stop is closed.
func WithStop(src Source, stop <-chan struct{}) *Stoppable {
	return &Stoppable{src: src, stop: stop}
}

// Poll implements Source.
func (s *Stoppable) Poll() (Key, bool) {
	select {
	case <-s.stop:
		return KeyQuit, true
	default:
	}
	return s.src.Poll()
}
