// Package registry provides a global registry for front-end factories.
// Front ends register themselves in init() functions, allowing the CLI
// to discover and launch them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Frontend drives a snake session on some terminal technology.
// The engine stays free of any UI dependency; the front end owns input
// mapping, timing and drawing.
type Frontend interface {
	// Name returns the identifier used by `play --backend`.
	Name() string

	// Description returns a one-line summary for help output.
	Description() string

	// Run plays sessions until the player declines a replay or quits.
	Run(l Launch) error
}

// ErrAborted is returned by Frontend.Run when the player quit mid-game.
var ErrAborted = errors.New("aborted by player")

// Launch carries everything a front end needs to start playing.
type Launch struct {
	Config    config.SnakeConfig
	Store     snake.HighScoreStore
	Logger    *log.Logger
	Segments  int   // 0 means ask the player
	Seed      int64 // 0 means time-based
	Observers []snake.Observer
}

// SessionOptions returns the engine options implied by the launch.
func (l Launch) SessionOptions() []snake.Option {
	return []snake.Option{
		snake.WithLogger(l.Log()),
		snake.WithSeed(l.Seed),
	}
}

// Notify forwards a frame to every observer.
func (l Launch) Notify(f snake.Frame, r snake.TickResult) {
	for _, o := range l.Observers {
		o.Observe(f, r)
	}
}

// Log returns the launch logger, discarding output when none was set.
func (l Launch) Log() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

// Info contains metadata about a registered front end.
type Info struct {
	Name        string
	Description string
}

// Factory is a function that creates a new front end.
type Factory func() Frontend

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a front-end factory to the registry.
// Typically called from a front end's init() function.
// Panics if a front end with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: front end %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = f().Description()
}

// List returns information about all registered front ends, sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for name := range factories {
		result = append(result, Info{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a front end by name.
// Returns an error if the name is not registered.
func Create(name string) (Frontend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown front end %q", name)
	}

	return f(), nil
}

// Exists checks if a front end with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
