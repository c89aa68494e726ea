package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Starting segment limits accepted from the player.
const (
	MinStartingSegments = 1
	MaxStartingSegments = 10
)

var (
	// ErrInvalidStartingSegments is returned for input that is not an integer in [1, 10].
	ErrInvalidStartingSegments = errors.New("starting segments must be a whole number from 1 to 10")

	// ErrInvalidReplayAnswer is returned for replay input other than yes/no.
	ErrInvalidReplayAnswer = errors.New("answer y or n")
)

// Validate checks that the configuration describes a playable game.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		errs = append(errs, fmt.Errorf("surface must be positive, got %gx%g", c.Surface.Width, c.Surface.Height))
	}
	if c.Segment.SideLength <= 0 {
		errs = append(errs, fmt.Errorf("segment.side_length must be positive, got %g", c.Segment.SideLength))
	}
	if c.Segment.Gap < 0 {
		errs = append(errs, fmt.Errorf("segment.gap must not be negative, got %g", c.Segment.Gap))
	}
	if c.Segment.MoveDistance <= 0 {
		errs = append(errs, fmt.Errorf("segment.move_distance must be positive, got %g", c.Segment.MoveDistance))
	}
	if c.Food.Diameter <= 0 {
		errs = append(errs, fmt.Errorf("food.diameter must be positive, got %g", c.Food.Diameter))
	}
	if len(c.Food.Colours) == 0 {
		errs = append(errs, errors.New("food.colours must not be empty"))
	}
	for _, name := range c.Food.Colours {
		if _, ok := core.ParseColor(name); !ok {
			errs = append(errs, fmt.Errorf("food.colours: unknown colour %q", name))
		}
	}
	if c.Surface.Width/2 < 2*c.Food.Diameter || c.Surface.Height/2 < 2*c.Food.Diameter {
		errs = append(errs, errors.New("surface too small for food placement margin"))
	}
	if c.Timing.TimeStep <= 0 {
		errs = append(errs, fmt.Errorf("timing.time_step must be positive, got %s", c.Timing.TimeStep))
	}
	if c.Timing.ScorePause < 0 {
		errs = append(errs, fmt.Errorf("timing.score_pause must not be negative, got %s", c.Timing.ScorePause))
	}
	if n := c.Session.StartingSegments; n != 0 && (n < MinStartingSegments || n > MaxStartingSegments) {
		errs = append(errs, fmt.Errorf("session.starting_segments: %w", ErrInvalidStartingSegments))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("sound.volume must be within [0, 1], got %g", c.Sound.Volume))
	}
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.Storage.Backend))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// ParseStartingSegments validates the player's starting segment count.
func ParseStartingSegments(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < MinStartingSegments || n > MaxStartingSegments {
		return 0, ErrInvalidStartingSegments
	}
	return n, nil
}

// ParseReplayAnswer validates a play-again answer (case-insensitive y/yes or n/no).
func ParseReplayAnswer(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, ErrInvalidReplayAnswer
}
