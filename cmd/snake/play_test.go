package main

import (
	"errors"
	"io"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
)

func TestStartingSegments(t *testing.T) {
	tests := []struct {
		name     string
		flag     int
		fromCfg  int
		expected int
		wantErr  bool
	}{
		{"ask the player", 0, 0, 0, false},
		{"config value", 0, 4, 4, false},
		{"flag wins", 2, 4, 2, false},
		{"flag too large", 11, 0, 0, true},
		{"negative flag", -1, 3, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultSnakeConfig()
			cfg.Session.StartingSegments = tc.fromCfg

			got, err := startingSegments(tc.flag, cfg)
			if tc.wantErr {
				if !errors.Is(err, config.ErrInvalidStartingSegments) {
					t.Errorf("expected ErrInvalidStartingSegments, got %v", err)
				}
				return
			}
			if err != nil || got != tc.expected {
				t.Errorf("startingSegments(%d) = %d, %v; expected %d", tc.flag, got, err, tc.expected)
			}
		})
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	old := flagLogLevel
	t.Cleanup(func() { flagLogLevel = old })

	flagLogLevel = "loud"
	if _, _, err := newLogger(io.Discard, "snake"); err == nil {
		t.Error("expected an error for an unknown level")
	}

	flagLogLevel = "debug"
	logger, closeFn, err := newLogger(io.Discard, "snake")
	if err != nil || logger == nil {
		t.Fatalf("newLogger() = %v, %v", logger, err)
	}
	closeFn()
}
