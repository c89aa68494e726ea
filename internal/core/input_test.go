package core

import "testing"

func TestInputFrameLastDirectionWins(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionLeft)
	f.Set(ActionQuit)

	if got := f.LastDirection(); got != ActionLeft {
		t.Errorf("LastDirection() = %v, expected Left", got)
	}

	f.Clear()
	if f.LastDirection() != ActionNone {
		t.Error("Clear should reset the buffered direction")
	}
}

func TestActionIsDirection(t *testing.T) {
	tests := []struct {
		action   Action
		expected bool
	}{
		{ActionNone, false},
		{ActionUp, true},
		{ActionDown, true},
		{ActionLeft, true},
		{ActionRight, true},
		{ActionQuit, false},
	}

	for _, tc := range tests {
		if got := tc.action.IsDirection(); got != tc.expected {
			t.Errorf("%v.IsDirection() = %v, expected %v", tc.action, got, tc.expected)
		}
	}
}
