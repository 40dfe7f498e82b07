package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate cues are synthesised and played at.
const SampleRate = beep.SampleRate(44100)

// Synth plays cues on the default output device.
type Synth struct {
	rate    beep.SampleRate
	volume  float64
	playing sync.WaitGroup
}

var _ Player = (*Synth)(nil)

// NewSynth opens the speaker. volume is the master level in [0, 1].
func NewSynth(volume float64) (*Synth, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to open speaker: %w", err)
	}
	return &Synth{rate: SampleRate, volume: volume}, nil
}

// Play queues c on the speaker mixer and returns immediately.
func (s *Synth) Play(c Cue) {
	st := CueStreamer(c, s.rate, s.volume)
	if st == nil {
		return
	}
	s.playing.Add(1)
	speaker.Play(beep.Seq(st, beep.Callback(s.playing.Done)))
}

// Wait blocks until every queued cue has finished, or limit passes.
// It reports whether the queue drained.
func (s *Synth) Wait(limit time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.playing.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(limit):
		return false
	}
}

// Close stops playback and releases the device.
func (s *Synth) Close() {
	speaker.Clear()
	speaker.Close()
}
