package joystick

import (
	"sync/atomic"

	"joyglow/hal"
	"joyglow/irq"
)

// Outputs are the actuators touched from the edge handler.
type Outputs struct {
	PWM   hal.PWM
	Red   int // GPIO driven by the X axis
	Blue  int // GPIO driven by the Y axis
	Green hal.GPIOPin
}

// EdgeDetector accepts button edges that arrive more than a window after the
// previously accepted edge of either button, and applies their effect.
//
// One timestamp is shared by both buttons: pressing A suppresses a B press
// inside the window and the other way round.
type EdgeDetector struct {
	window uint32
	last   atomic.Uint32
	mode   *ModeState
	out    Outputs
	events *irq.Mailbox
}

// NewEdgeDetector returns a detector that mutates mode and reports accepted
// edges to events. events may be nil.
func NewEdgeDetector(windowMs uint32, mode *ModeState, out Outputs, events *irq.Mailbox) *EdgeDetector {
	return &EdgeDetector{window: windowMs, mode: mode, out: out, events: events}
}

// HandleEdge processes a falling edge seen at nowMs. It may run in interrupt
// context: it does not block, allocate or log. It reports whether the edge
// was accepted.
func (d *EdgeDetector) HandleEdge(in Input, nowMs uint32) bool {
	if in != InputA && in != InputB {
		return false
	}
	last := d.last.Load()
	if nowMs-last <= d.window {
		return false
	}
	if !d.last.CompareAndSwap(last, nowMs) {
		return false
	}

	var m Mode
	switch in {
	case InputA:
		m = d.mode.Update(func(m Mode) Mode {
			m.LEDsEnabled = !m.LEDsEnabled
			return m
		})
		if !m.LEDsEnabled && d.out.PWM != nil {
			d.out.PWM.Set(d.out.Red, 0)
			d.out.PWM.Set(d.out.Blue, 0)
		}
	case InputB:
		m = d.mode.Update(func(m Mode) Mode {
			m.GreenOn = !m.GreenOn
			m.Border = m.Border.Next()
			return m
		})
		if d.out.Green != nil {
			_ = d.out.Green.Write(m.GreenOn)
		}
	}

	if d.events != nil {
		d.events.TrySend(irq.Event{Source: uint8(in), At: nowMs, State: m.pack()})
	}
	return true
}
