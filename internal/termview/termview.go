// Package termview draws a 1-bit SSD1306-style frame on a terminal using
// half-block characters, two pixel rows per cell.
package termview

import (
	"github.com/gdamore/tcell/v2"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'
	fullBlock = '█'
)

// View renders frames of a fixed size onto a tcell screen.
type View struct {
	screen tcell.Screen
	width  int
	height int
	on     tcell.Style
	off    tcell.Style
}

// New returns a view for width×height frames.
func New(screen tcell.Screen, width, height int) *View {
	return &View{
		screen: screen,
		width:  width,
		height: height,
		on:     tcell.StyleDefault.Foreground(tcell.ColorLightCyan).Background(tcell.ColorBlack),
		off:    tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlack),
	}
}

// Cells is the terminal area a frame occupies.
func (v *View) Cells() (cols, rows int) {
	return v.width, (v.height + 1) / 2
}

func (v *View) lit(frame []byte, x, y int) bool {
	if y >= v.height {
		return false
	}
	i := x + (y/8)*v.width
	if i >= len(frame) {
		return false
	}
	return frame[i]&(1<<uint(y%8)) != 0
}

// DrawFrame draws a page-ordered frame with its top-left cell at (col, row).
func (v *View) DrawFrame(col, row int, frame []byte) {
	for y := 0; y < v.height; y += 2 {
		for x := 0; x < v.width; x++ {
			top := v.lit(frame, x, y)
			bottom := v.lit(frame, x, y+1)
			r, st := ' ', v.off
			switch {
			case top && bottom:
				r, st = fullBlock, v.on
			case top:
				r, st = upperHalf, v.on
			case bottom:
				r, st = lowerHalf, v.on
			}
			v.screen.SetContent(col+x, row+y/2, r, nil, st)
		}
	}
}

// DrawText writes s starting at (col, row), clipped to width cells when
// width > 0.
func (v *View) DrawText(col, row, width int, style tcell.Style, s string) {
	i := 0
	for _, r := range s {
		if width > 0 && i >= width {
			return
		}
		v.screen.SetContent(col+i, row, r, nil, style)
		i++
	}
	for ; i < width; i++ {
		v.screen.SetContent(col+i, row, ' ', nil, style)
	}
}

// DrawLamp draws a labelled indicator. level in [0, 1] picks the glyph.
func (v *View) DrawLamp(col, row int, label string, level float64, c tcell.Color) int {
	glyph := '○'
	switch {
	case level >= 0.66:
		glyph = '●'
	case level >= 0.33:
		glyph = '◉'
	case level > 0:
		glyph = '◎'
	}
	st := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if level > 0 {
		st = tcell.StyleDefault.Foreground(c)
	}
	v.screen.SetContent(col, row, glyph, nil, st)
	v.DrawText(col+2, row, 0, tcell.StyleDefault, label)
	return col + 2 + len(label) + 2
}
