package snake

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Food is the single food item. It is never destroyed, only moved and hidden.
// Placement does not avoid the snake; food may appear under the body.
type Food struct {
	Position core.Vec
	Colour   core.Color
	Visible  bool
}

// Relocate moves the food to a random whole-unit position at least
// 2*margin inside every edge and picks a random palette colour.
func (f *Food) Relocate(rng *rand.Rand, bounds core.Bounds, margin float64, palette []core.Color) {
	f.Position = core.V(
		randAxis(rng, bounds.HalfW()-2*margin),
		randAxis(rng, bounds.HalfH()-2*margin),
	)
	if len(palette) > 0 {
		f.Colour = palette[rng.Intn(len(palette))]
	}
}

// randAxis draws a uniform integer in [-limit, limit].
func randAxis(rng *rand.Rand, limit float64) float64 {
	hi := math.Floor(limit)
	lo := math.Ceil(-limit)
	if hi < lo {
		return 0
	}
	return lo + float64(rng.Intn(int(hi-lo)+1))
}

// Hide removes the food from display.
func (f *Food) Hide() {
	f.Visible = false
}

// Show puts the food back on display.
func (f *Food) Show() {
	f.Visible = true
}
