package joystick

import (
	"image/color"

	"joyglow/hal"

	"tinygo.org/x/tinydraw"
)

var lit = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Renderer composes the indicator square and border onto a display.
type Renderer struct {
	disp      hal.Display
	width     int16
	height    int16
	indicator int16
	inset     int16
	maxSample int32
}

func NewRenderer(disp hal.Display, indicator, inset int16, maxSample uint16) *Renderer {
	w, h := disp.Size()
	return &Renderer{
		disp:      disp,
		width:     w,
		height:    h,
		indicator: indicator,
		inset:     inset,
		maxSample: int32(maxSample),
	}
}

// Position maps a sample to the indicator's top-left corner. X grows to the
// right; Y is inverted so pushing the stick up moves the square up.
func (r *Renderer) Position(s Sample) (x, y int16) {
	spanX := int32(r.width - r.indicator)
	spanY := int32(r.height - r.indicator)
	x = int16(int32(s.X) * spanX / r.maxSample)
	y = int16(spanY - int32(s.Y)*spanY/r.maxSample)
	return x, y
}

// Compose clears the buffer and draws the border then the indicator at (x, y).
// Nothing reaches the panel until Flush.
func (r *Renderer) Compose(border BorderStyle, x, y int16) {
	r.disp.ClearBuffer()
	switch border {
	case BorderFull:
		tinydraw.Rectangle(r.disp, 0, 0, r.width, r.height, lit)
	case BorderInset:
		tinydraw.Rectangle(r.disp, r.inset, r.inset, r.width-2*r.inset, r.height-2*r.inset, lit)
	}
	tinydraw.Rectangle(r.disp, x, y, r.indicator, r.indicator, lit)
}

func (r *Renderer) Flush() error {
	return r.disp.Display()
}

// Clear blanks the panel.
func (r *Renderer) Clear() error {
	r.disp.ClearBuffer()
	return r.disp.Display()
}
