package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// ErrMalformedHighScore is returned when the high score file does not hold
// a single non-negative integer.
var ErrMalformedHighScore = errors.New("storage: malformed high score file")

// FileStore keeps the high score as one integer in a plain-text file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// OpenFile prepares the high score file at path, creating it with 0 if it
// does not exist yet.
func OpenFile(path string) (*FileStore, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte("0"), 0o644); err != nil {
			return nil, fmt.Errorf("storage: cannot create high score file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("storage: cannot stat high score file: %w", err)
	}

	return &FileStore{path: path}, nil
}

// Path returns the resolved file path.
func (f *FileStore) Path() string {
	return f.path
}

// HighScore reads the stored high score.
func (f *FileStore) HighScore() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read high score: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedHighScore, text)
	}
	return n, nil
}

// SaveHighScore overwrites the file with score.
func (f *FileStore) SaveHighScore(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: negative high score %d", score)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// ResetHighScore sets the stored high score back to 0.
func (f *FileStore) ResetHighScore() error {
	return f.SaveHighScore(0)
}

// Close is a no-op; the file is opened per call.
func (f *FileStore) Close() error {
	return nil
}
