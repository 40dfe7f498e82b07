package input

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{"arrows", "\x1b[D\x1b[C", []Key{KeyLeft, KeyRight}},
		{"application arrows", "\x1bOD\x1bOC", []Key{KeyLeft, KeyRight}},
		{"up arrow ignored", "\x1b[A", []Key{KeyOther}},
		{"fire", " \r\n", []Key{KeyFire, KeyFire, KeyFire}},
		{"quit keys", "qQ\x03", []Key{KeyQuit, KeyQuit, KeyQuit}},
		{"lone escape", "\x1b", []Key{KeyQuit}},
		{"alt chord", "\x1bb", []Key{KeyOther}},
		{"alt q is not a quit", "\x1bq", []Key{KeyOther}},
		{"option left", "\x1b\x1b[D", []Key{KeyLeft}},
		{"double escape", "\x1b\x1b", []Key{KeyOther}},
		{"modified arrow", "\x1b[1;5C", []Key{KeyRight}},
		{"cut off sequence", "\x1b[1;", []Key{KeyOther}},
		{"sequence then keys", "\x1b[1;5Aq", []Key{KeyOther, KeyQuit}},
		{"mixed", "a\x1b[C ", []Key{KeyOther, KeyRight, KeyFire}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKeys(nil, []byte(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("ParseKeys(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("key %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// pollUntil polls src until it yields a key or the deadline passes.
func pollUntil(t *testing.T, src Source) Key {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if k, ok := src.Poll(); ok {
			return k
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no key before deadline")
	return KeyNone
}

func TestStreamDeliversKeysThenQuitOnEOF(t *testing.T) {
	s := StartStream(strings.NewReader("\x1b[D "))

	if k := pollUntil(t, s); k != KeyLeft {
		t.Fatalf("first key = %v, want left", k)
	}
	if k := pollUntil(t, s); k != KeyFire {
		t.Fatalf("second key = %v, want fire", k)
	}
	// Reader is exhausted: the stream reports quit from now on.
	if k := pollUntil(t, s); k != KeyQuit {
		t.Fatalf("after EOF = %v, want quit", k)
	}
}

func TestStreamPollDoesNotBlock(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := StartStream(r)

	done := make(chan struct{})
	go func() {
		s.Poll()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll blocked on an idle reader")
	}
}

type fixedSource struct{ keys []Key }

func (f *fixedSource) Poll() (Key, bool) {
	if len(f.keys) == 0 {
		return KeyNone, false
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, true
}

func TestWithStop(t *testing.T) {
	stop := make(chan struct{})
	src := WithStop(&fixedSource{keys: []Key{KeyLeft}}, stop)

	if k, ok := src.Poll(); !ok || k != KeyLeft {
		t.Fatalf("Poll = %v,%v, want left", k, ok)
	}
	if _, ok := src.Poll(); ok {
		t.Fatal("Poll reported a key on an empty source")
	}
	close(stop)
	if k, ok := src.Poll(); !ok || k != KeyQuit {
		t.Errorf("Poll after stop = %v,%v, want quit", k, ok)
	}
}

func TestTcellKey(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want Key
	}{
		{tcell.KeyLeft, 0, KeyLeft},
		{tcell.KeyRight, 0, KeyRight},
		{tcell.KeyEnter, 0, KeyFire},
		{tcell.KeyRune, ' ', KeyFire},
		{tcell.KeyEscape, 0, KeyQuit},
		{tcell.KeyCtrlC, 0, KeyQuit},
		{tcell.KeyRune, 'q', KeyQuit},
		{tcell.KeyRune, 'z', KeyOther},
		{tcell.KeyUp, 0, KeyOther},
	}
	for _, tt := range tests {
		if got := tcellKey(tt.key, tt.r); got != tt.want {
			t.Errorf("tcellKey(%v, %q) = %v, want %v", tt.key, tt.r, got, tt.want)
		}
	}
}

type eventQueue struct{ events chan tcell.Event }

func (q *eventQueue) PollEvent() tcell.Event {
	ev, ok := <-q.events
	if !ok {
		return nil
	}
	return ev
}

func TestTcellSourceQuitsWhenScreenCloses(t *testing.T) {
	q := &eventQueue{events: make(chan tcell.Event, 2)}
	q.events <- tcell.NewEventResize(80, 24)
	close(q.events)

	src := StartTcell(q)
	// The resize is not a key; the only thing to surface is the quit on close.
	if k := pollUntil(t, src); k != KeyQuit {
		t.Fatalf("key = %v, want quit", k)
	}
}

func TestStreamJoinsSplitEscapeSequence(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}

	s.ch <- '\x1b'
	s.ch <- '['
	// The prefix alone must not surface as a quit while the rest is pending.
	if k, ok := s.Poll(); ok {
		t.Fatalf("Poll on a held prefix = %v", k)
	}
	s.ch <- 'C'
	if k, ok := s.Poll(); !ok || k != KeyRight {
		t.Fatalf("Poll = %v,%v, want right", k, ok)
	}
}

func TestStreamAltChordIsIgnored(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}

	s.ch <- '\x1b'
	s.ch <- 'b'
	if k, ok := s.Poll(); !ok || k != KeyOther {
		t.Fatalf("Poll = %v,%v, want other", k, ok)
	}
	if k, ok := s.Poll(); ok {
		t.Errorf("extra key %v after the chord", k)
	}
}

func TestUnfinishedEscape(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"ab", 0},
		{"a\x1b", 1},
		{"\x1b[", 2},
		{"x\x1b[1;5", 5},
		{"\x1b\x1b[", 3},
		{"\x1b[D", 0},
		{"\x1bb", 0},
	}
	for _, tt := range tests {
		if got := unfinishedEscape([]byte(tt.in)); got != tt.want {
			t.Errorf("unfinishedEscape(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// floodReader hands out n bytes of 'x', then EOF, and closes eof on reaching it.
type floodReader struct {
	n   int
	eof chan struct{}
}

func (r *floodReader) Read(p []byte) (int, error) {
	if r.n == 0 {
		close(r.eof)
		return 0, io.EOF
	}
	k := min(len(p), r.n)
	for i := range p[:k] {
		p[i] = 'x'
	}
	r.n -= k
	return k, nil
}

func TestStreamReaderReachesEOFWithoutPolling(t *testing.T) {
	r := &floodReader{n: 1000, eof: make(chan struct{})}
	s := StartStream(r)

	select {
	case <-r.eof:
	case <-time.After(2 * time.Second):
		t.Fatal("reader goroutine stuck behind a full buffer")
	}
	if k := pollUntil(t, s); k != KeyOther {
		t.Fatalf("first key = %v, want other", k)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		k, ok := s.Poll()
		if ok && k == KeyQuit {
			return
		}
		if !ok {
			time.Sleep(time.Millisecond)
		}
	}
	t.Error("stream never reported the end of input")
}

func TestStreamLoneEscapeQuitsAfterOnePoll(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}

	s.ch <- '\x1b'
	if _, ok := s.Poll(); ok {
		t.Fatal("lone escape reported before the hold expired")
	}
	if k, ok := s.Poll(); !ok || k != KeyQuit {
		t.Fatalf("Poll = %v,%v, want quit", k, ok)
	}
}
