package snake

import "fmt"

// Score tracks the current session score and the all-time high score.
type Score struct {
	Current int
	High    int
}

// Increment adds one point for eaten food.
func (s *Score) Increment() {
	s.Current++
}

// ResetCurrent zeroes the session score. The high score is kept.
func (s *Score) ResetCurrent() {
	s.Current = 0
}

// Settle raises High to Current if Current beats it.
// A tie does not count as a new high score.
func (s *Score) Settle() bool {
	if s.Current > s.High {
		s.High = s.Current
		return true
	}
	return false
}

// HUD is the running scoreboard line.
func (s Score) HUD() string {
	return fmt.Sprintf("YOUR SCORE: %d (HIGH SCORE: %d)", s.Current, s.High)
}

// HighScoreLine is shown under the game-over banner.
func (s Score) HighScoreLine(isNew bool) string {
	if isNew {
		return fmt.Sprintf("NEW HIGH SCORE: %d", s.High)
	}
	return fmt.Sprintf("ALL-TIME HIGH SCORE: %d", s.High)
}
