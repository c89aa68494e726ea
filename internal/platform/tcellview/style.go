package tcellview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
)

var colorStyles = map[core.Color]tcell.Style{
	core.ColorRed:     tcell.StyleDefault.Foreground(tcell.ColorRed),
	core.ColorGreen:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorYellow:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	core.ColorBlue:    tcell.StyleDefault.Foreground(tcell.ColorBlue),
	core.ColorMagenta: tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	core.ColorCyan:    tcell.StyleDefault.Foreground(tcell.ColorAqua),
	core.ColorWhite:   tcell.StyleDefault.Foreground(tcell.ColorWhite),
	core.ColorOrange:  tcell.StyleDefault.Foreground(tcell.ColorOrange),
	core.ColorPurple:  tcell.StyleDefault.Foreground(tcell.ColorPurple),
	core.ColorGray:    tcell.StyleDefault.Foreground(tcell.ColorGray),
}

func styleFor(c core.Color) tcell.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return tcell.StyleDefault
}

// blit copies every buffer cell onto the tcell screen.
func blit(dst tcell.Screen, src *core.Screen) {
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			c := src.GetCell(x, y)
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			dst.SetContent(x, y, r, nil, styleFor(c.Color))
		}
	}
}
