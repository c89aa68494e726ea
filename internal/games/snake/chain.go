package snake

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Segment is one body part. It has no identity beyond its index in the chain.
type Segment struct {
	Pos core.Vec
}

// Chain is the snake: an ordered run of segments with the head at index 0.
type Chain struct {
	segments       []Segment
	heading        Heading
	startingLength int
	pitch          float64 // spacing between segments at initialization
	step           float64 // distance the head travels per Advance
}

// NewChain lays out n segments along the X axis, head at the origin facing east.
// n below 1 is treated as 1 so the chain is never empty.
func NewChain(cfg config.SnakeConfig, n int) *Chain {
	c := &Chain{
		startingLength: max(n, 1),
		pitch:          cfg.Pitch(),
		step:           cfg.Step(),
	}
	c.layout()
	return c
}

func (c *Chain) layout() {
	c.segments = make([]Segment, c.startingLength)
	for i := range c.segments {
		c.segments[i] = Segment{Pos: core.V(-float64(i)*c.pitch, 0)}
	}
	c.heading = East
}

// Reset discards all segments and rebuilds the chain at its starting length.
func (c *Chain) Reset() {
	c.layout()
}

// SetHeading turns the head unless h is the reverse of the current heading.
// Returns false when the request was dropped.
func (c *Chain) SetHeading(h Heading) bool {
	if h == c.heading.Opposite() {
		return false
	}
	c.heading = h
	return true
}

// Advance moves the snake one tick: every segment takes the previous position
// of the one ahead of it (tail first), then the head steps along its heading.
func (c *Chain) Advance() {
	for i := len(c.segments) - 1; i > 0; i-- {
		c.segments[i].Pos = c.segments[i-1].Pos
	}
	c.segments[0].Pos = c.segments[0].Pos.Add(c.heading.Unit().Scale(c.step))
}

// Grow appends one segment at the tail.
//
// A snake that started with a single segment would place the new segment on
// top of the head, so in that case it goes one pitch behind the tail against
// the current heading instead.
func (c *Chain) Grow() {
	tail := c.segments[len(c.segments)-1].Pos
	pos := tail
	if c.startingLength == 1 {
		pos = tail.Sub(c.heading.Unit().Scale(c.pitch))
	}
	c.segments = append(c.segments, Segment{Pos: pos})
}

// Head returns the head position.
func (c *Chain) Head() core.Vec {
	return c.segments[0].Pos
}

// Heading returns the current heading.
func (c *Chain) Heading() Heading {
	return c.heading
}

// Len returns the number of segments.
func (c *Chain) Len() int {
	return len(c.segments)
}

// StartingLength returns the segment count the chain is built and reset with.
func (c *Chain) StartingLength() int {
	return c.startingLength
}

// Positions returns a copy of all segment positions, head first.
func (c *Chain) Positions() []core.Vec {
	out := make([]core.Vec, len(c.segments))
	for i, s := range c.segments {
		out[i] = s.Pos
	}
	return out
}
