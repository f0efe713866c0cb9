// Package beeptone plays the session chirp on the default audio device.
package beeptone

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"pomodoro/focus/internal/tone"
)

var errClosed = errors.New("tone player closed")

var _ tone.Player = (*Beep)(nil)

const (
	DefaultSampleRate = beep.SampleRate(44100)

	chirpLength = 300 * time.Millisecond
	chirpStep   = 100 * time.Millisecond
	startGain   = 0.3
	endGain     = 0.01
)

var chirpFrequencies = []float64{800, 600, 800}

// Beep plays the chirp on the default audio device. The speaker is
// initialized on first use.
type Beep struct {
	sampleRate beep.SampleRate
	volume     float64

	mu       sync.Mutex
	initOnce sync.Once
	initErr  error
	ready    bool
	closed   bool
}

func NewBeep(volume float64) *Beep {
	return &Beep{
		sampleRate: DefaultSampleRate,
		volume:     volume,
	}
}

func (b *Beep) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errClosed
	}

	b.initOnce.Do(func() {
		b.initErr = speaker.Init(b.sampleRate, b.sampleRate.N(time.Second/10))
		b.ready = b.initErr == nil
	})
	if b.initErr != nil {
		return fmt.Errorf("init speaker: %w", b.initErr)
	}

	speaker.Play(&effects.Volume{
		Streamer: Chirp(b.sampleRate),
		Base:     2,
		Volume:   b.volume,
	})
	return nil
}

// Close drops anything still queued and releases the audio device. Play
// fails after Close.
func (b *Beep) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.ready {
		speaker.Clear()
		speaker.Close()
		b.ready = false
	}
	return nil
}

// Chirp returns the three-step 800/600/800 Hz tone with an exponential fade.
func Chirp(sampleRate beep.SampleRate) beep.Streamer {
	total := sampleRate.N(chirpLength)
	step := sampleRate.N(chirpStep)
	rate := float64(sampleRate)
	position := 0
	phase := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		n := 0
		for n < len(samples) && position < total {
			index := position / step
			if index >= len(chirpFrequencies) {
				index = len(chirpFrequencies) - 1
			}
			progress := float64(position) / float64(total)
			gain := startGain * math.Pow(endGain/startGain, progress)
			value := gain * math.Sin(phase)

			samples[n][0] = value
			samples[n][1] = value
			phase += 2 * math.Pi * chirpFrequencies[index] / rate
			position++
			n++
		}
		return n, true
	})
}
