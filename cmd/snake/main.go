// snake is a real-time snake game for the terminal.
//
// Usage:
//
//	snake play               - Play snake
//	snake scores             - Show the high score and recent sessions
//	snake serve              - Start SSH server for remote play
//	snake reset-high-score   - Reset the all-time high score to 0
//	snake backends           - List available front ends
//
// Global flags:
//
//	--config <path>     - Custom game config YAML
//	--log-level <level> - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file (the game screen stays clean)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"

	// Import front ends to register them
	_ "github.com/vovakirdan/tui-snake/internal/platform/tcellview"
	_ "github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is a real-time terminal game. Steer the snake with the arrow
keys or WASD, eat food to grow, and avoid the walls and your own tail.

Available commands:
  play              - Play snake
  scores            - Show the high score and finished sessions
  serve             - Start SSH server for remote play
  reset-high-score  - Reset the all-time high score
  backends          - List available front ends

Examples:
  snake play
  snake play --segments 5 --backend tcell
  snake scores --interactive
  snake serve --ssh :23235`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(backendsCmd)
}

// fail prints an error the way every command does and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the process logger. Without --log-file, logs go to
// fallback; pass io.Discard for full-screen commands.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig loads the game config honoring --config.
func loadConfig() config.SnakeConfig {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	return cfg
}

// openStore opens the configured high score store.
func openStore(cfg config.SnakeConfig) storage.Backend {
	store, err := storage.OpenBackend(cfg.Storage)
	if err != nil {
		fail("could not open high score storage: %v", err)
	}
	return store
}
