package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected fresh high score 0, got %d", high)
	}

	if err := store.SaveHighScore(12); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	if err := store.SaveHighScore(15); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 15 {
		t.Errorf("Expected high score 15, got %d", high)
	}

	if err := store.ResetHighScore(); err != nil {
		t.Fatalf("ResetHighScore() failed: %v", err)
	}
	if high, _ := store.HighScore(); high != 0 {
		t.Errorf("Expected 0 after reset, got %d", high)
	}
}

func TestStoreHighScorePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveHighScore(42); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if high, err := reopened.HighScore(); err != nil || high != 42 {
		t.Errorf("HighScore() after reopen = %d, %v; expected 42", high, err)
	}
}

func TestStoreSessions(t *testing.T) {
	store := openTestStore(t)

	records := []snake.SessionRecord{
		{StartingSegments: 3, Score: 4, Length: 7, Ticks: 120, Cause: snake.CauseWall},
		{StartingSegments: 1, Score: 9, Length: 10, Ticks: 300, Cause: snake.CauseSelf},
		{StartingSegments: 5, Score: 0, Length: 5, Ticks: 16, Cause: snake.CauseWall},
	}
	for _, rec := range records {
		if err := store.RecordSession(rec); err != nil {
			t.Fatalf("RecordSession() failed: %v", err)
		}
	}

	top, err := store.TopSessions(10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(top))
	}
	wantScores := []int{9, 4, 0}
	for i, want := range wantScores {
		if top[i].Score != want {
			t.Errorf("TopSessions[%d].Score = %d, expected %d", i, top[i].Score, want)
		}
	}
	if top[0].Cause != "self" || top[0].Ticks != 300 || top[0].StartingSegments != 1 || top[0].Length != 10 {
		t.Errorf("Unexpected top session %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	recent, err := store.RecentSessions(2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 recent sessions, got %d", len(recent))
	}
	if recent[0].StartingSegments != 5 || recent[1].StartingSegments != 1 {
		t.Errorf("Recent sessions out of order: %+v", recent)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if stats.Games != 0 || stats.BestRun != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Unexpected empty stats %+v", stats)
	}

	for _, score := range []int{2, 4, 6} {
		if err := store.RecordSession(snake.SessionRecord{StartingSegments: 3, Score: score, Length: 3 + score, Cause: snake.CauseWall}); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.SaveHighScore(6); err != nil {
		t.Fatal(err)
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 3 {
		t.Errorf("Games = %d, expected 3", stats.Games)
	}
	if stats.BestRun != 6 || stats.HighScore != 6 {
		t.Errorf("BestRun = %d, HighScore = %d, expected 6", stats.BestRun, stats.HighScore)
	}
	if stats.AvgScore != 4 {
		t.Errorf("AvgScore = %v, expected 4", stats.AvgScore)
	}
	if stats.TotalScore != 12 {
		t.Errorf("TotalScore = %d, expected 12", stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}

	if err := store.ClearSessions(); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}
	if top, _ := store.TopSessions(10); len(top) != 0 {
		t.Errorf("Expected no sessions after clear, got %d", len(top))
	}
	if high, _ := store.HighScore(); high != 6 {
		t.Errorf("ClearSessions must keep the high score, got %d", high)
	}
}

func TestStoreRecordsFromSession(t *testing.T) {
	store := openTestStore(t)

	s, err := snake.NewSession(defaultConfig(), 3, store, snake.WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	for s.State() == snake.StateRunning {
		if _, err := s.Tick(); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
	}

	recent, err := store.RecentSessions(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected the finished session to be recorded, got %d", len(recent))
	}
	if high, _ := store.HighScore(); high != s.Score().High {
		t.Errorf("Stored high score %d, session reports %d", high, s.Score().High)
	}
}
