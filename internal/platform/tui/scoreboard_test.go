package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

type fakeSource struct {
	high   int
	top    []storage.SessionEntry
	recent []storage.SessionEntry
	err    error
}

func (f fakeSource) HighScore() (int, error) { return f.high, nil }

func (f fakeSource) TopSessions(int) ([]storage.SessionEntry, error) { return f.top, f.err }

func (f fakeSource) RecentSessions(int) ([]storage.SessionEntry, error) { return f.recent, f.err }

func TestScoreboardViews(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	src := fakeSource{
		high: 9,
		top: []storage.SessionEntry{
			{Score: 9, StartingSegments: 3, Length: 12, Cause: "wall", CreatedAt: now},
			{Score: 2, StartingSegments: 1, Length: 3, Cause: "self", CreatedAt: now},
		},
		recent: []storage.SessionEntry{
			{Score: 2, StartingSegments: 1, Length: 3, Cause: "self", CreatedAt: now},
		},
	}

	m := NewScoreboardModel(src, 100, 30)
	view := m.View()
	if !strings.Contains(view, "ALL-TIME HIGH SCORE: 9") || !strings.Contains(view, "Best runs") {
		t.Errorf("unexpected view:\n%s", view)
	}
	if len(m.sessions) != 2 {
		t.Errorf("loaded %d sessions, expected 2", len(m.sessions))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.viewCursor != 1 || len(m.sessions) != 1 {
		t.Errorf("tab should switch to recent, cursor %d sessions %d", m.viewCursor, len(m.sessions))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.viewCursor != 0 {
		t.Errorf("shift+tab should go back, cursor %d", m.viewCursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(ScoreboardModel)
	if !m.quitting || !isQuit(cmd) || m.View() != "" {
		t.Error("q should quit the scoreboard")
	}
}

func TestScoreboardEmptyAndErrors(t *testing.T) {
	m := NewScoreboardModel(fakeSource{}, 60, 20)
	if !strings.Contains(m.View(), "No sessions recorded yet") {
		t.Errorf("expected empty message:\n%s", m.View())
	}

	m = NewScoreboardModel(fakeSource{err: errors.New("locked")}, 60, 20)
	if !strings.Contains(m.View(), "locked") {
		t.Errorf("expected load error:\n%s", m.View())
	}

	m = NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No sessions recorded yet") {
		t.Error("nil source should render as empty")
	}
}
