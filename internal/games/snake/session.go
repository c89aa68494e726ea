package snake

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// State is the session controller state.
type State int

const (
	StateRunning State = iota
	StateGameOver
	StateAwaitingReplay
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	case StateAwaitingReplay:
		return "awaiting_replay"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Cause records why a session ended.
type Cause int

const (
	CauseNone Cause = iota
	CauseWall
	CauseSelf
)

func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Cause) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// HighScoreStore persists the all-time high score.
type HighScoreStore interface {
	HighScore() (int, error)
	SaveHighScore(score int) error
}

// SessionRecord describes a finished session.
type SessionRecord struct {
	StartingSegments int
	Score            int
	Length           int
	Ticks            uint64
	Cause            Cause
}

// SessionRecorder is optionally implemented by a HighScoreStore that keeps
// a history of finished sessions.
type SessionRecorder interface {
	RecordSession(rec SessionRecord) error
}

var (
	// ErrNotAwaitingReplay is returned by Replay outside the AwaitingReplay state.
	ErrNotAwaitingReplay = errors.New("snake: session is not awaiting a replay answer")

	// ErrStaleHighScore is returned by a HighScoreStore when it already holds
	// an equal or higher score than the one being saved.
	ErrStaleHighScore = errors.New("snake: store already holds an equal or higher high score")
)

// TickResult reports what happened during one tick.
type TickResult struct {
	State        State
	Ate          bool
	GameOver     bool
	Cause        Cause
	NewHighScore bool
}

// Session owns the chain, food and score and drives them one tick at a time.
// It is not safe for concurrent use; the front end owns it exclusively.
type Session struct {
	cfg     config.SnakeConfig
	palette []core.Color
	rng     *rand.Rand
	store   HighScoreStore
	logger  *log.Logger

	chain *Chain
	food  Food
	score Score
	state State
	cause Cause

	pending    Heading
	hasPending bool
	ate        bool
	newHigh    bool
	tick       uint64
	played     int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRand sets the random source used for food placement.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed seeds the random source. 0 means time-based.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewSession builds a running session. The high score is read from store here
// and again at every game over and replay.
func NewSession(cfg config.SnakeConfig, startingSegments int, store HighScoreStore, opts ...Option) (*Session, error) {
	if store == nil {
		return nil, errors.New("snake: nil high score store")
	}

	s := &Session{
		cfg:     cfg,
		palette: cfg.Palette(),
		store:   store,
		logger:  log.New(io.Discard),
		chain:   NewChain(cfg, startingSegments),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	high, err := store.HighScore()
	if err != nil {
		return nil, fmt.Errorf("snake: cannot read high score: %w", err)
	}
	s.score.High = high

	s.start()
	return s, nil
}

// start begins a fresh Running state.
func (s *Session) start() {
	s.state = StateRunning
	s.cause = CauseNone
	s.score.ResetCurrent()
	s.hasPending = false
	s.ate = false
	s.newHigh = false
	s.tick = 0
	s.played++
	s.food.Show()
	s.food.Relocate(s.rng, s.cfg.Bounds(), s.cfg.Food.Diameter, s.palette)

	s.logger.Debug("session started",
		"session", s.played,
		"segments", s.chain.StartingLength(),
		"high", s.score.High,
	)
}

// RequestHeading buffers a heading change. The last request before a tick wins;
// it is applied at the start of the next Tick.
func (s *Session) RequestHeading(h Heading) {
	if s.state != StateRunning {
		return
	}
	s.pending = h
	s.hasPending = true
}

// Tick advances the session by one frame. Outside the Running state it does nothing.
// A non-nil error means the new high score could not be persisted; the
// session still moved to AwaitingReplay.
func (s *Session) Tick() (TickResult, error) {
	if s.state != StateRunning {
		return TickResult{State: s.state}, nil
	}

	if s.hasPending {
		s.chain.SetHeading(s.pending)
		s.hasPending = false
	}

	s.chain.Advance()
	s.tick++
	s.ate = false

	side := s.cfg.Segment.SideLength
	if s.food.Visible && FoodCollision(s.chain.Head(), s.food.Position, s.cfg.Food.Diameter, side) {
		s.food.Relocate(s.rng, s.cfg.Bounds(), s.cfg.Food.Diameter, s.palette)
		s.score.Increment()
		s.chain.Grow()
		s.ate = true
		s.logger.Debug("food eaten", "score", s.score.Current, "length", s.chain.Len())
	}

	switch {
	case WallCollision(s.chain, s.cfg.Bounds(), side):
		s.cause = CauseWall
	case SelfCollision(s.chain, side):
		s.cause = CauseSelf
	}

	res := TickResult{Ate: s.ate}
	var err error
	if s.cause != CauseNone {
		err = s.gameOver()
		res.GameOver = true
		res.Cause = s.cause
		res.NewHighScore = s.newHigh
	}
	res.State = s.state
	return res, err
}

// gameOver hides the food, settles the high score and moves on to AwaitingReplay.
func (s *Session) gameOver() error {
	s.state = StateGameOver
	s.food.Hide()
	s.refreshHigh()

	var errs []error
	s.newHigh = s.score.Settle()
	if s.newHigh {
		err := s.store.SaveHighScore(s.score.High)
		switch {
		case errors.Is(err, ErrStaleHighScore):
			s.newHigh = false
			s.refreshHigh()
		case err != nil:
			errs = append(errs, fmt.Errorf("snake: cannot save high score: %w", err))
		}
	}

	if rec, ok := s.store.(SessionRecorder); ok {
		err := rec.RecordSession(SessionRecord{
			StartingSegments: s.chain.StartingLength(),
			Score:            s.score.Current,
			Length:           s.chain.Len(),
			Ticks:            s.tick,
			Cause:            s.cause,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("snake: cannot record session: %w", err))
		}
	}

	s.logger.Info("game over",
		"cause", s.cause,
		"score", s.score.Current,
		"high", s.score.High,
		"new_high", s.newHigh,
		"ticks", s.tick,
	)

	s.state = StateAwaitingReplay
	return errors.Join(errs...)
}

// Replay answers the play-again prompt. Yes rebuilds the chain and starts a
// new Running state; no terminates the session.
func (s *Session) Replay(again bool) error {
	if s.state != StateAwaitingReplay {
		return ErrNotAwaitingReplay
	}
	if !again {
		s.state = StateTerminated
		s.logger.Debug("session terminated", "sessions", s.played)
		return nil
	}
	s.chain.Reset()
	s.refreshHigh()
	s.start()
	return nil
}

// refreshHigh raises the in-memory high score to the stored one. Another
// writer may have saved a higher score since the last read. A read failure
// keeps the current value.
func (s *Session) refreshHigh() {
	high, err := s.store.HighScore()
	if err != nil {
		s.logger.Warn("cannot refresh high score", "error", err)
		return
	}
	s.score.High = max(s.score.High, high)
}

// State returns the controller state.
func (s *Session) State() State {
	return s.state
}

// Score returns the current and high score.
func (s *Session) Score() Score {
	return s.score
}

// Chain exposes the chain for inspection.
func (s *Session) Chain() *Chain {
	return s.chain
}

// Food returns the food item.
func (s *Session) Food() Food {
	return s.food
}

// Frame captures everything a renderer needs for the current tick.
func (s *Session) Frame() Frame {
	return Frame{
		Tick:         s.tick,
		Session:      s.played,
		State:        s.state,
		Heading:      s.chain.Heading(),
		Segments:     s.chain.Positions(),
		Food:         FoodView{Position: s.food.Position, Colour: s.food.Colour.String(), Visible: s.food.Visible},
		Score:        s.score.Current,
		HighScore:    s.score.High,
		NewHighScore: s.newHigh,
		Ate:          s.ate,
		Cause:        s.cause,
	}
}
