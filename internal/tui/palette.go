package tui

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// palette holds the screen colors. Match highlights are blended between
// two anchors by normalized score, so stronger matches read warmer.
type palette struct {
	defaultFg tcell.Color
	cursorFg  tcell.Color
	cursorBg  tcell.Color
	promptFg  tcell.Color
	promptBg  tcell.Color
	markerFg  tcell.Color

	matchLow  colorful.Color
	matchHigh colorful.Color
}

func defaultPalette() palette {
	low, _ := colorful.Hex("#5fafd7")
	high, _ := colorful.Hex("#ffaf5f")
	return palette{
		defaultFg: tcell.ColorDefault,
		cursorFg:  tcell.ColorBlack,
		cursorBg:  tcell.ColorSilver,
		promptFg:  tcell.ColorBlack,
		promptBg:  tcell.ColorAqua,
		markerFg:  tcell.ColorRed,
		matchLow:  low,
		matchHigh: high,
	}
}

// matchFg returns the highlight color for a match score. score is clamped
// to [0, maxScore]; the blend runs in Lab space to stay perceptually even.
func (p *palette) matchFg(score, maxScore float32) tcell.Color {
	t := float64(0)
	if maxScore > 0 {
		t = float64(score / maxScore)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	c := p.matchLow.BlendLab(p.matchHigh, t).Clamped()
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
