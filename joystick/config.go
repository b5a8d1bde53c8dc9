package joystick

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables of the control loop. DefaultConfig matches the
// reference board: 12-bit converter, 12-bit PWM, 128x64 display.
type Config struct {
	Center         uint16
	DeadZone       uint16
	Gain           uint16
	Wrap           uint16
	MaxSample      uint16
	DebounceWindow time.Duration
	Period         time.Duration
	Indicator      int16 // side of the indicator square in pixels
	Inset          int16 // inset border margin in pixels
	XChannel       int
	YChannel       int
	TelemetryEvery int // iterations between telemetry lines, 0 disables
}

func DefaultConfig() Config {
	return Config{
		Center:         2048,
		DeadZone:       200,
		Gain:           2,
		Wrap:           4095,
		MaxSample:      4095,
		DebounceWindow: 200 * time.Millisecond,
		Period:         100 * time.Millisecond,
		Indicator:      8,
		Inset:          2,
		XChannel:       0,
		YChannel:       1,
		TelemetryEvery: 10,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("joystick: %w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

func (c Config) Validate() error {
	switch {
	case c.MaxSample == 0:
		return invalid("max sample must be positive")
	case c.Center > c.MaxSample:
		return invalid("center %d above max sample %d", c.Center, c.MaxSample)
	case c.DeadZone >= c.Center:
		return invalid("dead zone %d swallows center %d", c.DeadZone, c.Center)
	case c.Gain == 0:
		return invalid("gain must be positive")
	case c.Wrap == 0:
		return invalid("wrap must be positive")
	case c.DebounceWindow < 0 || c.DebounceWindow > time.Hour:
		return invalid("debounce window %v out of range", c.DebounceWindow)
	case c.Period <= 0:
		return invalid("period must be positive")
	case c.Indicator <= 0:
		return invalid("indicator must be positive")
	case c.Inset < 0:
		return invalid("inset must not be negative")
	case c.XChannel < 0 || c.YChannel < 0 || c.XChannel == c.YChannel:
		return invalid("axis channels %d and %d", c.XChannel, c.YChannel)
	case c.TelemetryEvery < 0:
		return invalid("telemetry interval must not be negative")
	}
	return nil
}

// checkDisplay reports whether the indicator and inset border fit a w×h panel.
func (c Config) checkDisplay(w, h int16) error {
	if w < c.Indicator || h < c.Indicator {
		return invalid("indicator %d larger than %dx%d display", c.Indicator, w, h)
	}
	if 2*c.Inset >= w || 2*c.Inset >= h {
		return invalid("inset %d too large for %dx%d display", c.Inset, w, h)
	}
	return nil
}
