package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves one snake session per SSH connection.
// All connections share the launch's high score store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	launch registry.Launch
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, l registry.Launch) (*SSHServer, error) {
	if l.Store == nil {
		return nil, errors.New("tui: ssh server needs a high score store")
	}

	logger := l.Log()
	l.Store = newSharedStore(l.Store)

	srv := &SSHServer{
		config: cfg,
		launch: l,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = "~/.snake/host_key"
	}
	hostKeyPath, err := config.ExpandHome(hostKeyPath)
	if err != nil {
		return nil, err
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	l := s.launch
	l.Logger = s.logger.With("user", sshSession.User())
	// Spectators follow the local player only.
	l.Observers = nil

	model := NewModel(l, pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sharedStore serializes access to a store used by concurrent SSH sessions.
// A save that would not raise the known high score is refused with
// snake.ErrStaleHighScore, so one session never lowers another's score.
type sharedStore struct {
	mu    sync.Mutex
	inner snake.HighScoreStore
	high  int
	read  bool
}

func newSharedStore(inner snake.HighScoreStore) *sharedStore {
	return &sharedStore{inner: inner}
}

func (s *sharedStore) HighScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	high, err := s.inner.HighScore()
	if err != nil {
		return 0, err
	}
	s.high = max(s.high, high)
	s.read = true
	return s.high, nil
}

func (s *sharedStore) SaveHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.read && score <= s.high {
		return snake.ErrStaleHighScore
	}
	if err := s.inner.SaveHighScore(score); err != nil {
		return err
	}
	s.high = score
	s.read = true
	return nil
}

func (s *sharedStore) RecordSession(rec snake.SessionRecord) error {
	rr, ok := s.inner.(snake.SessionRecorder)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return rr.RecordSession(rec)
}
