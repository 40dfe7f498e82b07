package object

import "time"

// Timer is a countdown driven by elapsed frame deltas rather than the wall clock,
// so it behaves the same whatever the tick rate.
type Timer struct {
	duration time.Duration
	left     time.Duration
}

// NewTimer creates a timer that finishes after d of accumulated deltas.
func NewTimer(d time.Duration) Timer {
	return Timer{duration: d, left: d}
}

// Tick consumes delta from the remaining time. Overshoot past zero is discarded.
func (t *Timer) Tick(delta time.Duration) {
	if delta >= t.left {
		t.left = 0
		return
	}
	t.left -= delta
}

// Finished reports whether the full duration has elapsed.
func (t *Timer) Finished() bool {
	return t.left == 0
}

// Reset restarts the countdown from the full duration.
func (t *Timer) Reset() {
	t.left = t.duration
}

// Duration returns the configured duration.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Fraction returns the share of the duration still remaining, in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 0
	}
	return float64(t.left) / float64(t.duration)
}
