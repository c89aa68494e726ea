// Package storage provides persistence for the all-time high score and the
// history of finished sessions.
package storage

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Backend is a high-score store the CLI can open, reset and close.
type Backend interface {
	snake.HighScoreStore
	ResetHighScore() error
	Close() error
}

var (
	_ Backend               = (*FileStore)(nil)
	_ Backend               = (*Store)(nil)
	_ snake.SessionRecorder = (*Store)(nil)
)

// OpenBackend opens the store selected by the storage configuration.
func OpenBackend(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return OpenFile(cfg.HighScorePath)
	case config.BackendSQLite:
		return Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
