package snake

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Screen layout constants.
const (
	hudHeight   = 2 // score line + hint line
	promptLines = 2 // reserved under the board for front-end prompts
	minCols     = 10
	minRows     = 5
)

// Renderer maps a Frame in world units onto a cell screen.
// It holds no game state; the same renderer serves every front end.
type Renderer struct {
	bounds    core.Bounds
	side      float64
	pitch     float64
	segColour core.Color

	area        core.Rect // play area inside the border, in cells
	unitsPerCol float64
	unitsPerRow float64
	tooSmall    bool
	screenH     int
}

// NewRenderer creates a renderer sized for a w x h terminal.
func NewRenderer(cfg config.SnakeConfig, w, h int) *Renderer {
	r := &Renderer{
		bounds:    cfg.Bounds(),
		side:      cfg.Segment.SideLength,
		pitch:     cfg.Pitch(),
		segColour: cfg.SegmentColour(),
	}
	r.Resize(w, h)
	return r
}

// Resize recomputes the layout for a new terminal size.
// One pitch maps to one row and two columns when there is room, which keeps
// segments roughly square on typical terminal fonts.
func (r *Renderer) Resize(w, h int) {
	r.screenH = h
	prefRows := int(math.Ceil(r.bounds.H / r.pitch))
	prefCols := 2 * int(math.Ceil(r.bounds.W/r.pitch))

	rows := min(prefRows, h-hudHeight-2-promptLines)
	cols := min(prefCols, w-2)
	if rows < minRows || cols < minCols {
		r.tooSmall = true
		return
	}
	r.tooSmall = false
	r.unitsPerRow = r.bounds.H / float64(rows)
	r.unitsPerCol = r.bounds.W / float64(cols)
	r.area = core.NewRect((w-cols)/2, hudHeight+1, cols, rows)
}

// TooSmall reports whether the terminal cannot fit the board.
func (r *Renderer) TooSmall() bool {
	return r.tooSmall
}

// Area returns the play area in cells.
func (r *Renderer) Area() core.Rect {
	return r.area
}

// PromptRow is the first free row below the board.
func (r *Renderer) PromptRow() int {
	if r.tooSmall {
		return max(r.screenH-promptLines, 0)
	}
	return r.area.Bottom() + 1
}

// ToCell converts a world position to a screen cell.
func (r *Renderer) ToCell(v core.Vec) (x, y int, ok bool) {
	if r.tooSmall {
		return 0, 0, false
	}
	x = r.area.X + int(math.Floor((v.X+r.bounds.HalfW())/r.unitsPerCol))
	y = r.area.Y + int(math.Floor((r.bounds.HalfH()-v.Y)/r.unitsPerRow))
	return x, y, r.area.Contains(x, y)
}

// Draw renders the frame. The screen is cleared first.
func (r *Renderer) Draw(dst *core.Screen, f Frame) {
	dst.Clear()

	dst.DrawTextCentered(0, Score{Current: f.Score, High: f.HighScore}.HUD(), core.ColorWhite)
	dst.DrawTextCentered(1, "arrows/wasd: steer   q: quit", core.ColorGray)

	if r.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorYellow)
		return
	}

	dst.DrawBox(core.NewRect(r.area.X-1, r.area.Y-1, r.area.W+2, r.area.H+2), core.ColorGray)

	if f.Food.Visible {
		if x, y, ok := r.ToCell(f.Food.Position); ok {
			col, _ := core.ParseColor(f.Food.Colour)
			dst.SetCell(x, y, core.Cell{Rune: '●', Color: col})
		}
	}

	width := max(1, int(math.Round(r.side/r.unitsPerCol)))
	// Tail first so the head is drawn on top when they overlap.
	for i := len(f.Segments) - 1; i >= 0; i-- {
		glyph := '█'
		if i == 0 {
			glyph = '▓'
		}
		x, y, ok := r.ToCell(f.Segments[i])
		if !ok {
			continue
		}
		for k := range width {
			cx := x + k - width/2
			if r.area.Contains(cx, y) {
				dst.SetCell(cx, y, core.Cell{Rune: glyph, Color: r.segColour})
			}
		}
	}

	if f.Ate {
		dst.DrawTextCentered(r.area.Y+r.area.H/2, "+1", core.ColorYellow)
	}

	if f.State == StateGameOver || f.State == StateAwaitingReplay {
		r.drawGameOver(dst, f)
	}
}

func (r *Renderer) drawGameOver(dst *core.Screen, f Frame) {
	y := r.area.Y + r.area.H/4
	score := Score{Current: f.Score, High: f.HighScore}
	dst.DrawTextCentered(y, "GAME OVER", core.ColorRed)
	dst.DrawTextCentered(y+2, fmt.Sprintf("SCORE: %d", f.Score), core.ColorWhite)
	dst.DrawTextCentered(y+4, score.HighScoreLine(f.NewHighScore), core.ColorYellow)
}
