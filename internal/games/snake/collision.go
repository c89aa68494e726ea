package snake

import (
	"math"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SelfCollision reports whether the head is closer than half a side length
// to any other segment.
func SelfCollision(c *Chain, side float64) bool {
	head := c.Head()
	for _, s := range c.segments[1:] {
		if core.Distance(head, s.Pos) < side/2 {
			return true
		}
	}
	return false
}

// WallCollision reports whether the head is past the wall on either axis.
// The limit is one side length inside the surface edge so the hit registers
// while the head is still drawn inside the border. Equality is not a hit.
func WallCollision(c *Chain, bounds core.Bounds, side float64) bool {
	head := c.Head()
	return math.Abs(head.X) > bounds.HalfW()-side || math.Abs(head.Y) > bounds.HalfH()-side
}

// FoodCollision reports whether the head and the food touch.
func FoodCollision(head, food core.Vec, foodDiameter, side float64) bool {
	return core.Distance(head, food) < (foodDiameter+side)/2
}
