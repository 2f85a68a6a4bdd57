// Package audio plays short synthesized sound effects through the system speaker.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Effect identifies a game sound.
type Effect int

const (
	EffectFire Effect = iota
	EffectAlienDestroyed
	EffectShipHit
	EffectWaveCleared
	EffectGameOver
)

// String returns the effect name, used in logs.
func (e Effect) String() string {
	switch e {
	case EffectFire:
		return "fire"
	case EffectAlienDestroyed:
		return "alien_destroyed"
	case EffectShipHit:
		return "ship_hit"
	case EffectWaveCleared:
		return "wave_cleared"
	case EffectGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("effect(%d)", int(e))
	}
}

// Player mixes effects into one speaker stream. Until Init succeeds every
// play call is a no-op, so a machine without audio just plays muted.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a muted player with the given volume (0..1).
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Fire plays the shot sound.
func (p *Player) Fire() { p.Play(EffectFire) }

// AlienDestroyed plays the hit sound.
func (p *Player) AlienDestroyed() { p.Play(EffectAlienDestroyed) }

// ShipHit plays the ship explosion.
func (p *Player) ShipHit() { p.Play(EffectShipHit) }

// WaveCleared plays the wave fanfare.
func (p *Player) WaveCleared() { p.Play(EffectWaveCleared) }

// GameOver plays the game over tune.
func (p *Player) GameOver() { p.Play(EffectGameOver) }

// Play queues an effect on the mixer.
func (p *Player) Play(e Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Streamer(e, sampleRate, p.volume)
	if err != nil || s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Streamer builds the finite sound for an effect at the given rate.
func Streamer(e Effect, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	var (
		s   beep.Streamer
		err error
	)
	switch e {
	case EffectFire:
		s, err = sweep(rate, 1400, 500, 80*time.Millisecond)
	case EffectAlienDestroyed:
		s = beep.Take(rate.N(150*time.Millisecond), newNoise(rate, 10))
	case EffectShipHit:
		s = beep.Take(rate.N(500*time.Millisecond), newNoise(rate, 4))
	case EffectWaveCleared:
		s, err = notes(rate, 90*time.Millisecond, 523.25, 659.25, 783.99, 1046.5)
	case EffectGameOver:
		s, err = notes(rate, 200*time.Millisecond, 392.00, 329.63, 261.63)
	default:
		return nil, fmt.Errorf("unknown effect %v", e)
	}
	if err != nil {
		return nil, fmt.Errorf("build %v: %w", e, err)
	}
	return withVolume(s, volume), nil
}

// notes plays sine tones one after another.
func notes(rate beep.SampleRate, each time.Duration, freqs ...float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, fadeOut(beep.Take(rate.N(each), tone), rate.N(each)))
	}
	return beep.Seq(parts...), nil
}

// sweep is a short falling tone made of 8 stepped sine segments.
func sweep(rate beep.SampleRate, from, to float64, d time.Duration) (beep.Streamer, error) {
	const steps = 8
	parts := make([]beep.Streamer, 0, steps)
	for i := 0; i < steps; i++ {
		f := from + (to-from)*float64(i)/float64(steps-1)
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(rate.N(d/steps), tone))
	}
	return fadeOut(beep.Seq(parts...), rate.N(d)), nil
}

// fadeOut scales a stream linearly to silence over total samples.
func fadeOut(s beep.Streamer, total int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			vol := 1 - float64(pos)/float64(total)
			if vol < 0 {
				vol = 0
			}
			samples[i][0] *= vol
			samples[i][1] *= vol
			pos++
		}
		return n, ok
	})
}

// withVolume applies a linear volume on a log2 scale, silent at 0.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// noise is exponentially decaying white noise over a low rumble.
type noise struct {
	rate  beep.SampleRate
	decay float64
	pos   int
	seed  uint32
}

func newNoise(rate beep.SampleRate, decay float64) *noise {
	return &noise{rate: rate, decay: decay, seed: 0x2545f491}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(n.pos) / float64(n.rate)
		env := math.Exp(-t * n.decay)

		// xorshift32
		n.seed ^= n.seed << 13
		n.seed ^= n.seed >> 17
		n.seed ^= n.seed << 5
		white := float64(n.seed)/float64(math.MaxUint32)*2 - 1

		v := env * (0.6*white + 0.4*math.Sin(2*math.Pi*70*t))
		samples[i][0] = v
		samples[i][1] = v
		n.pos++
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }
