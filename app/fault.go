package app

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"joyglow/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const faultLineHeight = 10

// Fault logs err and paints it on the display, if there is one.
func Fault(h hal.HAL, err error) {
	if l := h.Logger(); l != nil {
		l.WriteLineString("joyglow fault: " + err.Error())
	}

	d := h.Display()
	if d == nil {
		return
	}
	d.ClearBuffer()

	font := &proggy.TinySZ8pt7b
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = d.Display()
		return
	}
	maxW, maxH := d.Size()
	cols := maxW / fontWidth
	if cols <= 0 {
		cols = 1
	}

	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	y := int16(faultLineHeight)
	tinyfont.WriteLine(d, font, 0, y, "FAULT", fg)
	y += faultLineHeight

	line := err.Error()
	for len(line) > 0 && y <= maxH {
		chunk, rest := takeRunes(line, cols)
		tinyfont.WriteLine(d, font, 0, y, chunk, fg)
		y += faultLineHeight
		line = strings.TrimLeft(rest, " ")
	}
	_ = d.Display()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
