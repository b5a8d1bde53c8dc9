//go:build !tinygo && !rpi

package hal

import (
	"context"
	"fmt"
	"time"

	"joyglow/internal/buildinfo"
	"joyglow/internal/termview"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal runner.
type TerminalConfig struct {
	Period time.Duration
	Pins   SimPins
	Logger Logger
	Screen tcell.Screen // nil opens the controlling terminal
}

// Terminals report key presses but not releases: a key counts as held until
// no repeat arrives for this long.
const keyTimeout = 150 * time.Millisecond

const terminalLogLines = 4

type termKey uint8

const (
	keyLeft termKey = iota
	keyRight
	keyUp
	keyDown
	keyA
	keyB
	keyCount
)

// RunTerminal renders the OLED and LEDs in the terminal. Arrow keys deflect
// the stick (Shift for half travel), a is button A and space presses the
// stick; q or Esc quits.
func RunTerminal(ctx context.Context, cfg TerminalConfig, newApp func(HAL) (StepFunc, error)) error {
	if cfg.Period <= 0 {
		return fmt.Errorf("invalid terminal period: %v", cfg.Period)
	}
	screen := cfg.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	lines := NewRecentLines(terminalLogLines, cfg.Logger)
	h := NewHost(lines)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	t := &terminal{
		screen: screen,
		h:      h,
		pins:   cfg.Pins,
		lines:  lines,
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	defer close(t.done)
	w, ht := h.fb.Size()
	t.view = termview.New(screen, int(w), int(ht))
	t.frame = make([]byte, h.fb.BufferLen())
	go t.pollEvents()

	ticker := time.NewTicker(cfg.Period)
	defer ticker.Stop()
	for {
		now := time.Now()
		t.drainEvents(now)
		t.applyKeys(now)
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		t.render()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.quit:
			return nil
		case <-ticker.C:
		}
	}
}

type terminal struct {
	screen tcell.Screen
	view   *termview.View
	h      *Host
	pins   SimPins
	lines  *RecentLines
	frame  []byte

	events chan tcell.Event
	quit   chan struct{}
	quitOK bool
	done   chan struct{}

	lastSeen [keyCount]time.Time
	half     bool
}

func (t *terminal) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

func (t *terminal) drainEvents(now time.Time) {
	for {
		select {
		case ev := <-t.events:
			t.handleEvent(ev, now)
		default:
			return
		}
	}
}

func (t *terminal) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		half := ev.Modifiers()&tcell.ModShift != 0
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.stop()
		case tcell.KeyLeft:
			t.press(keyLeft, now, half)
		case tcell.KeyRight:
			t.press(keyRight, now, half)
		case tcell.KeyUp:
			t.press(keyUp, now, half)
		case tcell.KeyDown:
			t.press(keyDown, now, half)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				t.stop()
			case 'a', 'A':
				t.press(keyA, now, false)
			case ' ':
				t.press(keyB, now, false)
			}
		}
	}
}

func (t *terminal) stop() {
	if !t.quitOK {
		t.quitOK = true
		close(t.quit)
	}
}

func (t *terminal) press(k termKey, now time.Time, half bool) {
	t.lastSeen[k] = now
	if k <= keyDown {
		t.half = half
	}
}

func (t *terminal) held(k termKey, now time.Time) bool {
	return now.Sub(t.lastSeen[k]) < keyTimeout
}

func (t *terminal) applyKeys(now time.Time) {
	t.h.setStick(t.pins, stick{
		left:  t.held(keyLeft, now),
		right: t.held(keyRight, now),
		up:    t.held(keyUp, now),
		down:  t.held(keyDown, now),
		half:  t.half,
	})
	t.h.setButton(t.pins.ButtonA, t.held(keyA, now))
	t.h.setButton(t.pins.ButtonB, t.held(keyB, now))
}

func (t *terminal) render() {
	t.h.fb.Snapshot(t.frame)
	t.view.DrawFrame(0, 0, t.frame)

	cols, rows := t.view.Cells()
	lamps := t.h.Lamps(t.pins)
	col := t.view.DrawLamp(0, rows, "red", lamps.Red, tcell.ColorRed)
	col = t.view.DrawLamp(col, rows, "blue", lamps.Blue, tcell.ColorBlue)
	green := 0.0
	if lamps.Green {
		green = 1
	}
	col = t.view.DrawLamp(col, rows, "green", green, tcell.ColorGreen)
	x, y := t.h.adc.Channel(t.pins.XChannel), t.h.adc.Channel(t.pins.YChannel)
	t.view.DrawText(col, rows, cols-col, tcell.StyleDefault,
		fmt.Sprintf("x=%4d y=%4d  joyglow %s", x, y, buildinfo.Short()))

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, line := range t.lines.Lines() {
		t.view.DrawText(0, rows+1+i, cols, dim, line)
	}
	t.screen.Show()
}
