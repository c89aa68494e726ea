// Package audio plays short synthesized cues for snake events.
// Audio is optional: when the speaker cannot be opened the player stays
// silent and the game runs as usual.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound.
type Cue int

const (
	CueNone Cue = iota
	CueEat
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueEat:
		return "eat"
	case CueGameOver:
		return "game-over"
	default:
		return "none"
	}
}

// CueFor picks the cue for a tick. Game over wins over eating.
func CueFor(r snake.TickResult) Cue {
	switch {
	case r.GameOver:
		return CueGameOver
	case r.Ate:
		return CueEat
	default:
		return CueNone
	}
}

// tone is a sine at freq Hz cut to d.
func tone(freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("audio: tone %gHz: %w", freq, err)
	}
	return beep.Take(sampleRate.N(d), sine), nil
}

// Stream builds the streamer for c at the given volume (0..1).
// CueNone yields a nil streamer.
func Stream(c Cue, volume float64) (beep.Streamer, error) {
	var s beep.Streamer
	switch c {
	case CueEat:
		t, err := tone(880, 50*time.Millisecond)
		if err != nil {
			return nil, err
		}
		s = t
	case CueGameOver:
		hi, err := tone(440, 120*time.Millisecond)
		if err != nil {
			return nil, err
		}
		lo, err := tone(220, 240*time.Millisecond)
		if err != nil {
			return nil, err
		}
		s = beep.Seq(hi, lo)
	default:
		return nil, nil
	}
	return withVolume(s, volume), nil
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Player turns tick results into sounds. It implements snake.Observer.
type Player struct {
	volume float64
	ready  bool
	logger *log.Logger
	play   func(beep.Streamer)
}

// NewPlayer opens the speaker. Failure is logged and leaves the player muted.
func NewPlayer(cfg config.SoundConfig, logger *log.Logger) *Player {
	p := &Player{
		volume: cfg.Volume,
		logger: logger,
		play:   func(s beep.Streamer) { speaker.Play(s) },
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Warn("audio unavailable", "error", err)
		return p
	}
	p.ready = true
	return p
}

// Observe plays the cue for r, if any.
func (p *Player) Observe(_ snake.Frame, r snake.TickResult) {
	if !p.ready {
		return
	}
	c := CueFor(r)
	if c == CueNone {
		return
	}
	s, err := Stream(c, p.volume)
	if err != nil {
		p.logger.Debug("cue skipped", "cue", c, "error", err)
		return
	}
	p.play(s)
}

// Close releases the speaker.
func (p *Player) Close() {
	if p.ready {
		speaker.Close()
		p.ready = false
	}
}
