package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
}

func newOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = -1
			if o.phase < 0.5 {
				v = 1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		gain := 1.0
		if e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			gain = math.Min(gain, float64(left)/float64(e.release))
		}

		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one shaped tone of a cue.
type note struct {
	freq    float64
	dur     time.Duration
	wave    Wave
	attack  time.Duration
	release time.Duration
}

// cueScore holds the notes each cue plays in sequence, plus its level.
var cueScore = map[Cue]struct {
	level float64
	notes []note
}{
	CueStartup: {0.6, []note{
		{523.25, 90 * time.Millisecond, WaveSquare, 5 * time.Millisecond, 30 * time.Millisecond},
		{659.25, 90 * time.Millisecond, WaveSquare, 5 * time.Millisecond, 30 * time.Millisecond},
		{783.99, 90 * time.Millisecond, WaveSquare, 5 * time.Millisecond, 30 * time.Millisecond},
		{1046.50, 200 * time.Millisecond, WaveSquare, 5 * time.Millisecond, 120 * time.Millisecond},
	}},
	CuePew: {0.4, []note{
		{1400, 40 * time.Millisecond, WaveSaw, 2 * time.Millisecond, 10 * time.Millisecond},
		{900, 60 * time.Millisecond, WaveSaw, 2 * time.Millisecond, 40 * time.Millisecond},
	}},
	CueMove: {0.5, []note{
		{110, 80 * time.Millisecond, WaveSquare, 2 * time.Millisecond, 50 * time.Millisecond},
	}},
	CueExplode: {0.7, []note{
		{0, 250 * time.Millisecond, WaveNoise, 2 * time.Millisecond, 220 * time.Millisecond},
	}},
	CueWin: {0.6, []note{
		{523.25, 120 * time.Millisecond, WaveSine, 5 * time.Millisecond, 40 * time.Millisecond},
		{659.25, 120 * time.Millisecond, WaveSine, 5 * time.Millisecond, 40 * time.Millisecond},
		{783.99, 120 * time.Millisecond, WaveSine, 5 * time.Millisecond, 40 * time.Millisecond},
		{1046.50, 120 * time.Millisecond, WaveSine, 5 * time.Millisecond, 40 * time.Millisecond},
		{1318.51, 400 * time.Millisecond, WaveSine, 5 * time.Millisecond, 300 * time.Millisecond},
	}},
	CueLose: {0.6, []note{
		{392.00, 180 * time.Millisecond, WaveSaw, 5 * time.Millisecond, 60 * time.Millisecond},
		{329.63, 180 * time.Millisecond, WaveSaw, 5 * time.Millisecond, 60 * time.Millisecond},
		{261.63, 180 * time.Millisecond, WaveSaw, 5 * time.Millisecond, 60 * time.Millisecond},
		{196.00, 500 * time.Millisecond, WaveSaw, 5 * time.Millisecond, 400 * time.Millisecond},
	}},
}

// CueStreamer synthesises c at the given rate and master volume. It returns nil
// for an unknown cue.
func CueStreamer(c Cue, rate beep.SampleRate, master float64) beep.Streamer {
	score, ok := cueScore[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(score.notes))
	for _, n := range score.notes {
		osc := newOscillator(n.freq, n.dur, n.wave, rate)
		parts = append(parts, newEnvelope(osc, n.dur, n.attack, n.release, rate))
	}
	return newVolume(beep.Seq(parts...), score.level*master)
}
