package hal

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ADC is a stateful analog input selector: Select a channel, then Read it.
//
// Read returns a 12-bit sample in [0, 4095].
type ADC interface {
	Select(channel int) error
	Read() uint16
}

// PWM drives pulse-width modulated outputs addressed by GPIO number.
//
// Configure must be called once per pin before Set. Set does not clamp:
// callers pass a duty in [0, wrap].
type PWM interface {
	Configure(pin int, wrap uint16) error
	Set(pin int, duty uint16)
}

// Display is a monochrome pixel buffer plus a flush hook.
//
// Display() (from drivers.Displayer) sends the buffer to the panel.
type Display interface {
	drivers.Displayer
	ClearBuffer()
}

// Clock is the board timebase.
type Clock interface {
	// Millis is monotonic milliseconds since boot. It wraps after ~49 days.
	Millis() uint32
	Sleep(d time.Duration)
}

// HAL provides the only contact point between the firmware loop and the board.
type HAL interface {
	Logger() Logger
	GPIO() GPIO
	PWM() PWM
	ADC() ADC
	Display() Display
	Clock() Clock
}
