package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"joyglow/hal"
	"joyglow/internal/telemetry"
	"joyglow/internal/termview"
	"joyglow/joystick"

	"github.com/gdamore/tcell/v2"
)

const (
	oledWidth  = 128
	oledHeight = 64
	eventLines = 4
)

// monitor rebuilds the board's display from its telemetry stream.
type monitor struct {
	fb       *hal.MonoFramebuffer
	renderer *joystick.Renderer
	frame    []byte

	record  telemetry.Record
	records int
	events  []string
	other   string
	errors  int
}

func newMonitor() *monitor {
	cfg := joystick.DefaultConfig()
	fb := hal.NewMonoFramebuffer(oledWidth, oledHeight)
	return &monitor{
		fb:       fb,
		renderer: joystick.NewRenderer(fb, cfg.Indicator, cfg.Inset, cfg.MaxSample),
		frame:    make([]byte, fb.BufferLen()),
	}
}

// apply consumes one console line.
func (m *monitor) apply(line string) {
	line = strings.TrimRight(line, "\r\n")
	if r, err := telemetry.ParseRecord(line); err == nil {
		m.record = r
		m.records++
		m.renderer.Compose(joystick.BorderStyle(r.Border), r.SX, r.SY)
		_ = m.renderer.Flush()
		m.fb.Snapshot(m.frame)
		return
	} else if !errors.Is(err, telemetry.ErrNotRecord) {
		m.errors++
		return
	}
	if e, err := telemetry.ParseEvent(line); err == nil {
		m.events = append(m.events, fmt.Sprintf("%8dms  %c  leds=%v green=%v border=%s",
			e.At, e.Input, e.LEDs, e.Green, joystick.BorderStyle(e.Border)))
		if len(m.events) > eventLines {
			m.events = m.events[len(m.events)-eventLines:]
		}
		return
	}
	if line != "" {
		m.other = line
	}
}

// readLines sends every line from r to out and closes out at EOF or error.
func readLines(r io.Reader, out chan<- string) error {
	defer close(out)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out <- sc.Text()
	}
	return sc.Err()
}

func (m *monitor) draw(screen tcell.Screen, view *termview.View) {
	view.DrawFrame(0, 0, m.frame)
	cols, rows := view.Cells()

	r := m.record
	level := func(d uint16) float64 { return float64(d) / 4095 }
	col := view.DrawLamp(0, rows, "red", level(r.DX), tcell.ColorRed)
	col = view.DrawLamp(col, rows, "blue", level(r.DY), tcell.ColorBlue)
	green := 0.0
	if r.Green {
		green = 1
	}
	col = view.DrawLamp(col, rows, "green", green, tcell.ColorGreen)
	view.DrawText(col, rows, cols-col, tcell.StyleDefault,
		fmt.Sprintf("x=%4d y=%4d leds=%v", r.X, r.Y, r.LEDs))

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	view.DrawText(0, rows+1, cols, dim, fmt.Sprintf("records=%d bad=%d  %s", m.records, m.errors, m.other))
	for i, e := range m.events {
		view.DrawText(0, rows+2+i, cols, tcell.StyleDefault, e)
	}
	screen.Show()
}
