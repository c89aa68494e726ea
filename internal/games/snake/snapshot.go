package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// FoodView is the render-side description of the food.
type FoodView struct {
	Position core.Vec `json:"position"`
	Colour   string   `json:"colour"`
	Visible  bool     `json:"visible"`
}

// Frame is the per-tick render surface: everything an external renderer or
// spectator needs, with no reference back into the session.
type Frame struct {
	Tick         uint64     `json:"tick"`
	Session      int        `json:"session"`
	State        State      `json:"state"`
	Heading      Heading    `json:"heading"`
	Segments     []core.Vec `json:"segments"`
	Food         FoodView   `json:"food"`
	Score        int        `json:"score"`
	HighScore    int        `json:"high_score"`
	NewHighScore bool       `json:"new_high_score"`
	Ate          bool       `json:"ate"`
	Cause        Cause      `json:"cause"`
}

// Head returns the head position of the frame.
func (f Frame) Head() core.Vec {
	if len(f.Segments) == 0 {
		return core.Vec{}
	}
	return f.Segments[0]
}

// Pacer decides how long to wait before the next tick.
type Pacer struct {
	step  time.Duration
	pause time.Duration
}

// NewPacer builds a pacer from the timing configuration.
func NewPacer(t config.TimingConfig) Pacer {
	return Pacer{step: t.TimeStep, pause: t.ScorePause}
}

// Delay is the fixed frame step plus the score pause when food was just eaten.
func (p Pacer) Delay(r TickResult) time.Duration {
	if r.Ate {
		return p.step + p.pause
	}
	return p.step
}

// Step returns the fixed frame step.
func (p Pacer) Step() time.Duration {
	return p.step
}

// Observer receives every frame after it is produced.
type Observer interface {
	Observe(f Frame, r TickResult)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame, r TickResult)

// Observe implements Observer.
func (fn ObserverFunc) Observe(f Frame, r TickResult) {
	fn(f, r)
}
