package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/spectate"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSegments int
	flagBackend  string
	flagSound    bool
	flagSpectate string
	flagSeed     int64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start playing snake. Unless --segments is given (or the config sets
session.starting_segments), you are asked for the starting length first.

Controls:
  Arrows/WASD/HJKL - Steer
  Q/Esc/Ctrl+C     - Quit

After a game over answer y or n to play again.

Examples:
  snake play
  snake play --segments 1
  snake play --backend tcell
  snake play --sound
  snake play --spectate :8080   # watchers connect to ws://host:8080/watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSegments, "segments", 0, "Starting number of segments (1-10, 0 = ask)")
	playCmd.Flags().StringVar(&flagBackend, "backend", "tea", "Front end: tea or tcell")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
}

// startingSegments picks the segment count: the flag wins over the config.
func startingSegments(flag int, cfg config.SnakeConfig) (int, error) {
	n := flag
	if n == 0 {
		n = cfg.Session.StartingSegments
	}
	if n != 0 && (n < config.MinStartingSegments || n > config.MaxStartingSegments) {
		return 0, config.ErrInvalidStartingSegments
	}
	return n, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fail("play needs an interactive terminal")
	}

	if !registry.Exists(flagBackend) {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q\n", flagBackend)
		fmt.Fprintln(os.Stderr, "Run 'snake backends' to see available front ends.")
		os.Exit(1)
	}

	err := play()
	switch {
	case err == nil:
		fmt.Println("Thanks for playing!")
	case errors.Is(err, registry.ErrAborted):
	default:
		fail("%v", err)
	}
}

// play wires config, storage, logging and observers into a launch and runs
// the selected front end.
func play() error {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}
	segments, err := startingSegments(flagSegments, cfg)
	if err != nil {
		return fmt.Errorf("--segments: %w", err)
	}

	logger, closeLog, err := newLogger(io.Discard, "snake")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.OpenBackend(cfg.Storage)
	if err != nil {
		return fmt.Errorf("could not open high score storage: %w", err)
	}
	defer store.Close()

	launch := registry.Launch{
		Config:   cfg,
		Store:    store,
		Logger:   logger,
		Segments: segments,
		Seed:     flagSeed,
	}

	if flagSound || cfg.Sound.Enabled {
		player := audio.NewPlayer(cfg.Sound, logger)
		defer player.Close()
		launch.Observers = append(launch.Observers, player)
	}

	if flagSpectate != "" {
		hub := spectate.NewHub(logger)
		addr, err := hub.Start(flagSpectate)
		if err != nil {
			return fmt.Errorf("spectator feed: %w", err)
		}
		defer hub.Close()
		logger.Info("spectator feed listening", "address", addr)
		launch.Observers = append(launch.Observers, hub)
	}

	frontend, err := registry.Create(flagBackend)
	if err != nil {
		return err
	}

	err = frontend.Run(launch)
	if err != nil && !errors.Is(err, registry.ErrAborted) {
		logger.Error("game ended with an error", "backend", flagBackend, "error", err)
	}
	return err
}
