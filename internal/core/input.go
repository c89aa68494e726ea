package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the engine to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone  Action = iota
	ActionUp           // W, Up arrow - head north
	ActionDown         // S, Down arrow - head south
	ActionLeft         // A, Left arrow - head west
	ActionRight        // D, Right arrow - head east
	ActionQuit         // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the direction requested between two simulation ticks.
// The last request wins.
type InputFrame struct {
	last Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records a direction request. Non-direction actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a.IsDirection() {
		f.last = a
	}
}

// LastDirection returns the most recently requested direction action,
// or ActionNone when no direction was pressed this frame.
func (f InputFrame) LastDirection() Action {
	return f.last
}

// Clear forgets the buffered direction for the next frame.
func (f *InputFrame) Clear() {
	f.last = ActionNone
}

// IsDirection reports whether the action requests a heading change.
func (a Action) IsDirection() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}
