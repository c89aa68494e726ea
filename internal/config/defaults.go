package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Surface: SurfaceConfig{
			Width:  600,
			Height: 600,
		},
		Segment: SegmentConfig{
			SideLength:   15,
			Gap:          3,
			MoveDistance: 15,
			Colour:       "white",
		},
		Food: FoodConfig{
			Diameter: 12,
			Colours:  []string{"red", "orange", "yellow", "green", "blue", "purple"},
		},
		Timing: TimingConfig{
			TimeStep:   80 * time.Millisecond,
			ScorePause: 100 * time.Millisecond,
		},
		Session: SessionConfig{
			StartingSegments: 0,
		},
		Storage: StorageConfig{
			Backend:       BackendFile,
			HighScorePath: "~/.snake/high_score.txt",
			DBPath:        "~/.snake/scores.db",
		},
		Sound: SoundConfig{
			Enabled: false,
			Volume:  0.5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
