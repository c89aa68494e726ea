package snake

import (
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// memStore is an in-memory HighScoreStore that also records sessions.
type memStore struct {
	high    int
	saves   []int
	records []SessionRecord
	readErr error
	saveErr error
}

func (m *memStore) HighScore() (int, error) {
	return m.high, m.readErr
}

func (m *memStore) SaveHighScore(score int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.high = score
	m.saves = append(m.saves, score)
	return nil
}

func (m *memStore) RecordSession(rec SessionRecord) error {
	m.records = append(m.records, rec)
	return nil
}

// plainStore does not implement SessionRecorder.
type plainStore struct{ high int }

func (p *plainStore) HighScore() (int, error) {
	return p.high, nil
}

func (p *plainStore) SaveHighScore(s int) error {
	p.high = s
	return nil
}

// staleStore holds a score saved by another writer that HighScore only
// reports once a save has been refused.
type staleStore struct {
	memStore
	held int
}

func (st *staleStore) SaveHighScore(score int) error {
	if score <= st.held {
		st.high = st.held
		return ErrStaleHighScore
	}
	return st.memStore.SaveHighScore(score)
}

var farAway = core.V(0, -250)

func newTestSession(t *testing.T, segments int, store HighScoreStore) *Session {
	t.Helper()
	s, err := NewSession(config.DefaultSnakeConfig(), segments, store,
		WithRand(rand.New(rand.NewSource(1))),
		WithLogger(log.New(io.Discard)),
	)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	// Keep food out of the way unless a test puts it somewhere on purpose.
	s.food.Position = farAway
	return s
}

func runUntilOver(t *testing.T, s *Session) (TickResult, error) {
	t.Helper()
	for i := 0; i < 200; i++ {
		res, err := s.Tick()
		if res.GameOver {
			return res, err
		}
		if err != nil {
			t.Fatalf("tick %d: unexpected error %v", i, err)
		}
	}
	t.Fatal("session never ended")
	return TickResult{}, nil
}

func TestNewSession(t *testing.T) {
	store := &memStore{high: 7}
	s := newTestSession(t, 3, store)

	if s.State() != StateRunning {
		t.Errorf("State = %v, expected running", s.State())
	}
	if s.Score().High != 7 || s.Score().Current != 0 {
		t.Errorf("Score = %+v, expected high 7 current 0", s.Score())
	}
	if !s.Food().Visible {
		t.Error("food should be visible at start")
	}
	if s.Chain().Len() != 3 {
		t.Errorf("chain length = %d, expected 3", s.Chain().Len())
	}

	f := s.Frame()
	if f.Session != 1 || f.Tick != 0 || len(f.Segments) != 3 || f.Heading != East {
		t.Errorf("unexpected initial frame %+v", f)
	}
}

func TestNewSessionErrors(t *testing.T) {
	cfg := config.DefaultSnakeConfig()

	if _, err := NewSession(cfg, 3, nil); err == nil {
		t.Error("expected error for nil store")
	}

	readErr := errors.New("disk gone")
	_, err := NewSession(cfg, 3, &memStore{readErr: readErr})
	if !errors.Is(err, readErr) {
		t.Errorf("expected wrapped read error, got %v", err)
	}
}

func TestRequestHeadingAppliedOnTick(t *testing.T) {
	s := newTestSession(t, 3, &memStore{})

	s.RequestHeading(West)
	if _, err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if s.Chain().Head() != core.V(18, 0) || s.Chain().Heading() != East {
		t.Errorf("reverse request should be ignored; head %v heading %v", s.Chain().Head(), s.Chain().Heading())
	}

	s.RequestHeading(North)
	s.RequestHeading(South)
	if _, err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if s.Chain().Heading() != South || s.Chain().Head() != core.V(18, -18) {
		t.Errorf("last request should win; head %v heading %v", s.Chain().Head(), s.Chain().Heading())
	}
}

func TestTickEatsFood(t *testing.T) {
	s := newTestSession(t, 3, &memStore{})
	s.food.Position = core.V(18, 0)

	res, err := s.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Ate || res.GameOver {
		t.Fatalf("expected Ate without game over, got %+v", res)
	}
	if s.Score().Current != 1 {
		t.Errorf("score = %d, expected 1", s.Score().Current)
	}
	if s.Chain().Len() != 4 {
		t.Errorf("length = %d, expected 4", s.Chain().Len())
	}
	if !s.Frame().Ate {
		t.Error("frame should report the meal")
	}

	s.food.Position = farAway
	res, _ = s.Tick()
	if res.Ate || s.Frame().Ate {
		t.Error("Ate must only be set on the tick food was eaten")
	}
}

func TestSingleSegmentGrowthDoesNotCollide(t *testing.T) {
	s := newTestSession(t, 1, &memStore{})
	s.food.Position = core.V(18, 0)

	res, err := s.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if !res.Ate || res.GameOver {
		t.Fatalf("first tick: %+v", res)
	}
	if got := s.Chain().Positions(); got[1] != core.V(0, 0) {
		t.Errorf("new segment at %v, expected (0, 0)", got[1])
	}

	s.food.Position = farAway
	res, _ = s.Tick()
	if res.GameOver {
		t.Fatalf("second tick ended the game: %+v", res)
	}
}

func TestWallEndsSession(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, 3, store)

	for i := 1; i <= 15; i++ {
		res, err := s.Tick()
		if err != nil || res.GameOver {
			t.Fatalf("tick %d ended early: %+v %v", i, res, err)
		}
	}
	res, err := s.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if !res.GameOver || res.Cause != CauseWall {
		t.Fatalf("tick 16: expected wall game over, got %+v", res)
	}
	if res.State != StateAwaitingReplay || s.State() != StateAwaitingReplay {
		t.Errorf("state = %v, expected awaiting_replay", s.State())
	}
	if s.Food().Visible {
		t.Error("food should be hidden after game over")
	}
	if res.NewHighScore || len(store.saves) != 0 {
		t.Errorf("score 0 must not be a new high score: %+v saves %v", res, store.saves)
	}

	if len(store.records) != 1 {
		t.Fatalf("recorded %d sessions, expected 1", len(store.records))
	}
	rec := store.records[0]
	if rec.Cause != CauseWall || rec.Ticks != 16 || rec.StartingSegments != 3 || rec.Length != 3 {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestSelfCollisionEndsSession(t *testing.T) {
	s := newTestSession(t, 5, &memStore{})

	for _, h := range []Heading{North, West} {
		s.RequestHeading(h)
		if res, _ := s.Tick(); res.GameOver {
			t.Fatalf("ended early turning %v", h)
		}
	}
	s.RequestHeading(South)
	res, _ := s.Tick()
	if !res.GameOver || res.Cause != CauseSelf {
		t.Fatalf("expected self collision, got %+v", res)
	}
}

func TestTickOutsideRunningIsNoop(t *testing.T) {
	s := newTestSession(t, 3, &memStore{})
	runUntilOver(t, s)

	before := s.Frame()
	res, err := s.Tick()
	if err != nil || res.GameOver || res.State != StateAwaitingReplay {
		t.Errorf("tick while awaiting replay: %+v %v", res, err)
	}
	if s.Frame().Tick != before.Tick {
		t.Error("tick counter moved while awaiting replay")
	}

	s.RequestHeading(North)
	if s.hasPending {
		t.Error("heading requests must be ignored outside running")
	}
}

func TestHighScoreUpdates(t *testing.T) {
	tests := []struct {
		name      string
		startHigh int
		newHigh   bool
		saves     int
	}{
		{"beats stored", 0, true, 1},
		{"ties stored", 1, false, 0},
		{"below stored", 5, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{high: tc.startHigh}
			s := newTestSession(t, 3, store)

			s.food.Position = core.V(18, 0)
			if res, _ := s.Tick(); !res.Ate {
				t.Fatal("expected to eat")
			}
			s.food.Position = farAway

			res, err := runUntilOver(t, s)
			if err != nil {
				t.Fatal(err)
			}
			if res.NewHighScore != tc.newHigh {
				t.Errorf("NewHighScore = %v, expected %v", res.NewHighScore, tc.newHigh)
			}
			if len(store.saves) != tc.saves {
				t.Errorf("saves = %v, expected %d", store.saves, tc.saves)
			}
			want := max(tc.startHigh, 1)
			if s.Score().High != want {
				t.Errorf("High = %d, expected %d", s.Score().High, want)
			}
			if s.Frame().NewHighScore != tc.newHigh {
				t.Error("frame should carry the new-high flag")
			}
		})
	}
}

func TestHighScoreSaveFailure(t *testing.T) {
	saveErr := errors.New("read-only")
	store := &memStore{saveErr: saveErr}
	s := newTestSession(t, 3, store)

	s.food.Position = core.V(18, 0)
	s.Tick()
	s.food.Position = farAway

	res, err := runUntilOver(t, s)
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if s.State() != StateAwaitingReplay || !res.NewHighScore {
		t.Errorf("state = %v, result %+v", s.State(), res)
	}
	if s.Score().High != 1 {
		t.Errorf("in-memory high = %d, expected 1", s.Score().High)
	}
}

func TestHighScoreRaisedByAnotherWriter(t *testing.T) {
	tests := []struct {
		name     string
		store    HighScoreStore
		raise    func(HighScoreStore)
		wantHigh int
		wantNew  bool
	}{
		{
			name:     "store raised above session score",
			store:    &memStore{},
			raise:    func(st HighScoreStore) { st.(*memStore).high = 5 },
			wantHigh: 5,
		},
		{
			name:     "store raised to tie session score",
			store:    &memStore{},
			raise:    func(st HighScoreStore) { st.(*memStore).high = 1 },
			wantHigh: 1,
		},
		{
			name:     "store refuses stale save",
			store:    &staleStore{},
			raise:    func(st HighScoreStore) { st.(*staleStore).held = 4 },
			wantHigh: 4,
		},
		{
			name:     "store read fails at game over",
			store:    &memStore{},
			raise:    func(st HighScoreStore) { st.(*memStore).readErr = errors.New("busy") },
			wantHigh: 1,
			wantNew:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, 3, tc.store)

			s.food.Position = core.V(18, 0)
			if res, _ := s.Tick(); !res.Ate {
				t.Fatal("expected to eat")
			}
			s.food.Position = farAway
			tc.raise(tc.store)

			res, err := runUntilOver(t, s)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if res.NewHighScore != tc.wantNew || s.Frame().NewHighScore != tc.wantNew {
				t.Errorf("NewHighScore = %v, expected %v", res.NewHighScore, tc.wantNew)
			}
			if s.Score().High != tc.wantHigh || s.Frame().HighScore != tc.wantHigh {
				t.Errorf("High = %d, expected %d", s.Score().High, tc.wantHigh)
			}
		})
	}
}

func TestReplayRefreshesHighScore(t *testing.T) {
	store := &memStore{high: 2}
	s := newTestSession(t, 3, store)
	runUntilOver(t, s)

	store.high = 9
	if err := s.Replay(true); err != nil {
		t.Fatal(err)
	}
	if s.Score().High != 9 || s.Frame().HighScore != 9 {
		t.Errorf("High after replay = %d, expected 9", s.Score().High)
	}

	// A failed read keeps what the session already knows.
	runUntilOver(t, s)
	store.readErr = errors.New("busy")
	if err := s.Replay(true); err != nil {
		t.Fatal(err)
	}
	if s.Score().High != 9 {
		t.Errorf("High after failed refresh = %d, expected 9", s.Score().High)
	}
}

func TestStoreWithoutRecorder(t *testing.T) {
	store := &plainStore{}
	s := newTestSession(t, 2, store)
	if _, err := runUntilOver(t, s); err != nil {
		t.Fatal(err)
	}
}

func TestReplay(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, 3, store)

	if err := s.Replay(true); !errors.Is(err, ErrNotAwaitingReplay) {
		t.Errorf("Replay while running: %v", err)
	}

	s.food.Position = core.V(18, 0)
	s.Tick()
	s.food.Position = farAway
	runUntilOver(t, s)

	if err := s.Replay(true); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateRunning {
		t.Errorf("state after replay = %v", s.State())
	}
	if s.Score().Current != 0 || s.Score().High != 1 {
		t.Errorf("score after replay = %+v", s.Score())
	}
	if s.Chain().Len() != 3 || s.Chain().Head() != core.V(0, 0) || s.Chain().Heading() != East {
		t.Errorf("chain not rebuilt: %v heading %v", s.Chain().Positions(), s.Chain().Heading())
	}
	if !s.Food().Visible {
		t.Error("food should be visible again")
	}
	f := s.Frame()
	if f.Session != 2 || f.Tick != 0 || f.Cause != CauseNone || f.NewHighScore {
		t.Errorf("unexpected frame after replay %+v", f)
	}

	s.food.Position = farAway
	runUntilOver(t, s)
	if err := s.Replay(false); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateTerminated {
		t.Errorf("state = %v, expected terminated", s.State())
	}
	if res, err := s.Tick(); err != nil || res.State != StateTerminated {
		t.Errorf("tick after terminate: %+v %v", res, err)
	}
	if err := s.Replay(true); !errors.Is(err, ErrNotAwaitingReplay) {
		t.Errorf("Replay after terminate: %v", err)
	}
}

func TestSessionDeterministicWithSeed(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	a, err := NewSession(cfg, 3, &memStore{}, WithSeed(99))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSession(cfg, 3, &memStore{}, WithSeed(99))
	if err != nil {
		t.Fatal(err)
	}

	turns := []Heading{North, East, South, East}
	for i := 0; i < 12; i++ {
		a.RequestHeading(turns[i%len(turns)])
		b.RequestHeading(turns[i%len(turns)])
		ra, _ := a.Tick()
		rb, _ := b.Tick()
		if ra != rb || a.Food() != b.Food() {
			t.Fatalf("tick %d diverged: %+v / %+v", i, ra, rb)
		}
	}
}

func TestPacer(t *testing.T) {
	p := NewPacer(config.TimingConfig{TimeStep: 80 * time.Millisecond, ScorePause: 100 * time.Millisecond})

	if got := p.Delay(TickResult{}); got != 80*time.Millisecond {
		t.Errorf("Delay(no meal) = %v", got)
	}
	if got := p.Delay(TickResult{Ate: true}); got != 180*time.Millisecond {
		t.Errorf("Delay(meal) = %v", got)
	}
	if p.Step() != 80*time.Millisecond {
		t.Errorf("Step() = %v", p.Step())
	}

	noPause := NewPacer(config.TimingConfig{TimeStep: 50 * time.Millisecond})
	if got := noPause.Delay(TickResult{Ate: true}); got != 50*time.Millisecond {
		t.Errorf("Delay with zero pause = %v", got)
	}
}

func TestObserverFunc(t *testing.T) {
	var got Frame
	var obs Observer = ObserverFunc(func(f Frame, _ TickResult) { got = f })
	obs.Observe(Frame{Tick: 3}, TickResult{})
	if got.Tick != 3 {
		t.Errorf("observer saw tick %d", got.Tick)
	}
}

func TestFoodUnderBodyIsNotEaten(t *testing.T) {
	s := newTestSession(t, 3, &memStore{})
	// After one tick east the tail sits at (-18,0).
	s.food.Position = core.V(-18, 0)

	res, err := s.Tick()
	if err != nil || res.Ate || res.GameOver {
		t.Fatalf("Tick() = %+v, %v", res, err)
	}
	if s.Food().Position != core.V(-18, 0) || !s.Food().Visible {
		t.Errorf("food under the body should stay put, got %+v", s.Food())
	}
	if s.Score().Current != 0 {
		t.Errorf("score = %d, expected 0", s.Score().Current)
	}
}
