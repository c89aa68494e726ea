package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Heading represents the snake's movement direction.
// Only axis-aligned movement exists, so it is an enumeration rather than an angle.
type Heading int

const (
	East Heading = iota
	North
	West
	South
)

// Opposite returns the direction pointing the other way.
func (h Heading) Opposite() Heading {
	switch h {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Unit returns the unit vector for the heading. North is +Y.
func (h Heading) Unit() core.Vec {
	switch h {
	case North:
		return core.V(0, 1)
	case South:
		return core.V(0, -1)
	case West:
		return core.V(-1, 0)
	default:
		return core.V(1, 0)
	}
}

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (h Heading) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Heading) UnmarshalText(text []byte) error {
	switch string(text) {
	case "north":
		*h = North
	case "south":
		*h = South
	case "east":
		*h = East
	case "west":
		*h = West
	default:
		return fmt.Errorf("snake: unknown heading %q", text)
	}
	return nil
}

// HeadingFor maps a direction action to a heading.
func HeadingFor(a core.Action) (Heading, bool) {
	switch a {
	case core.ActionUp:
		return North, true
	case core.ActionDown:
		return South, true
	case core.ActionLeft:
		return West, true
	case core.ActionRight:
		return East, true
	}
	return East, false
}
