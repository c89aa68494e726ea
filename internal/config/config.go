// Package config provides YAML-based game configuration loading and
// validation for the snake game.
package config

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for the snake game.
// It is loaded once at process start and never mutated afterwards.
type SnakeConfig struct {
	Surface SurfaceConfig `yaml:"surface"`
	Segment SegmentConfig `yaml:"segment"`
	Food    FoodConfig    `yaml:"food"`
	Timing  TimingConfig  `yaml:"timing"`
	Session SessionConfig `yaml:"session"`
	Storage StorageConfig `yaml:"storage"`
	Sound   SoundConfig   `yaml:"sound"`
}

// SurfaceConfig defines the playing surface in world units.
type SurfaceConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SegmentConfig defines snake body geometry.
type SegmentConfig struct {
	SideLength   float64 `yaml:"side_length"`
	Gap          float64 `yaml:"gap"`
	MoveDistance float64 `yaml:"move_distance"`
	Colour       string  `yaml:"colour"`
}

// FoodConfig defines food size and palette.
type FoodConfig struct {
	Diameter float64  `yaml:"diameter"`
	Colours  []string `yaml:"colours"`
}

// TimingConfig defines frame pacing.
type TimingConfig struct {
	TimeStep   time.Duration `yaml:"time_step"`
	ScorePause time.Duration `yaml:"score_pause"` // 0 disables the pause after eating
}

// SessionConfig defines per-session settings.
type SessionConfig struct {
	StartingSegments int `yaml:"starting_segments"` // 0 = ask the player
}

// StorageBackend selects the high-score persistence collaborator.
type StorageBackend string

const (
	BackendFile   StorageBackend = "file"
	BackendSQLite StorageBackend = "sqlite"
)

// StorageConfig defines where the high score lives.
type StorageConfig struct {
	Backend       StorageBackend `yaml:"backend"`
	HighScorePath string         `yaml:"high_score_path"`
	DBPath        string         `yaml:"db_path"`
}

// SoundConfig defines the optional audio cues.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// Bounds returns the surface as a core.Bounds.
func (c SnakeConfig) Bounds() core.Bounds {
	return core.Bounds{W: c.Surface.Width, H: c.Surface.Height}
}

// Pitch is the spacing between adjacent segments at initialization.
func (c SnakeConfig) Pitch() float64 {
	return c.Segment.SideLength + c.Segment.Gap
}

// Step is the distance the head travels each tick.
func (c SnakeConfig) Step() float64 {
	return c.Segment.MoveDistance + c.Segment.Gap
}

// Palette resolves the food colour names. Unknown names are skipped;
// Validate reports them.
func (c SnakeConfig) Palette() []core.Color {
	palette := make([]core.Color, 0, len(c.Food.Colours))
	for _, name := range c.Food.Colours {
		if col, ok := core.ParseColor(name); ok {
			palette = append(palette, col)
		}
	}
	return palette
}

// SegmentColour resolves the body colour, falling back to white.
func (c SnakeConfig) SegmentColour() core.Color {
	if col, ok := core.ParseColor(c.Segment.Colour); ok {
		return col
	}
	return core.ColorWhite
}
