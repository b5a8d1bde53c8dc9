// Package app wires a board's peripherals to the joystick control loop.
package app

import (
	"context"
	"errors"
	"fmt"

	"joyglow/hal"
	"joyglow/internal/buildinfo"
	"joyglow/joystick"
)

// Pins are GPIO numbers on the board.
type Pins struct {
	Red     int // PWM, follows the X axis
	Blue    int // PWM, follows the Y axis
	Green   int // digital, toggled by the joystick switch
	ButtonA int // active-low push button
	ButtonB int // active-low joystick switch
}

type Config struct {
	Pins Pins
	Core joystick.Config
}

// DefaultConfig is the reference Pico wiring: RGB LED on 13/12/11, button A
// on 5 and the joystick switch on 22.
func DefaultConfig() Config {
	return Config{
		Pins: Pins{
			Red:     13,
			Blue:    12,
			Green:   11,
			ButtonA: 5,
			ButtonB: 22,
		},
		Core: joystick.DefaultConfig(),
	}
}

var errPinClash = errors.New("pins must be distinct")

func (p Pins) validate() error {
	seen := make(map[int]bool, 5)
	for _, id := range []int{p.Red, p.Blue, p.Green, p.ButtonA, p.ButtonB} {
		if id < 0 {
			return fmt.Errorf("app: pin %d: negative", id)
		}
		if seen[id] {
			return fmt.Errorf("app: pin %d: %w", id, errPinClash)
		}
		seen[id] = true
	}
	return nil
}

func gpioPin(g hal.GPIO, id int) (hal.GPIOPin, error) {
	if g == nil {
		return nil, fmt.Errorf("app: pin %d: no gpio", id)
	}
	p := g.Pin(id)
	if p == nil {
		return nil, fmt.Errorf("app: pin %d: not available", id)
	}
	return p, nil
}

// New brings up the peripherals in the order the board expects: green LED
// off, PWM at the configured wrap, blank display, then the button interrupts.
func New(h hal.HAL, cfg Config) (*joystick.Driver, error) {
	if err := cfg.Pins.validate(); err != nil {
		return nil, err
	}
	if h.Display() == nil {
		return nil, fmt.Errorf("app: %w", joystick.ErrNoDisplay)
	}

	green, err := gpioPin(h.GPIO(), cfg.Pins.Green)
	if err != nil {
		return nil, err
	}
	if err := green.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
		return nil, err
	}
	if err := green.Write(false); err != nil {
		return nil, err
	}

	pwm := h.PWM()
	for _, id := range []int{cfg.Pins.Red, cfg.Pins.Blue} {
		if err := pwm.Configure(id, cfg.Core.Wrap); err != nil {
			return nil, err
		}
	}

	drv, err := joystick.New(cfg.Core, joystick.Peripherals{
		Logger:  h.Logger(),
		Clock:   h.Clock(),
		ADC:     h.ADC(),
		Display: h.Display(),
		Outputs: joystick.Outputs{PWM: pwm, Red: cfg.Pins.Red, Blue: cfg.Pins.Blue, Green: green},
	})
	if err != nil {
		return nil, err
	}
	if err := drv.Boot(); err != nil {
		return nil, fmt.Errorf("app: display: %w", err)
	}

	pinA, pinB := cfg.Pins.ButtonA, cfg.Pins.ButtonB
	onEdge := func(id int) {
		switch id {
		case pinA:
			drv.HandleEdge(joystick.InputA)
		case pinB:
			drv.HandleEdge(joystick.InputB)
		}
	}
	for _, id := range []int{pinA, pinB} {
		p, err := gpioPin(h.GPIO(), id)
		if err != nil {
			return nil, err
		}
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, err
		}
		if err := p.SetInterrupt(hal.GPIOEdgeFalling, onEdge); err != nil {
			return nil, err
		}
	}

	if l := h.Logger(); l != nil {
		l.WriteLineString("joyglow " + buildinfo.Short() + " ready")
	}
	return drv, nil
}

// Run starts the control loop and blocks forever (TinyGo/native entrypoint).
// A setup failure is shown on the display and halts the board.
func Run(h hal.HAL, cfg Config) {
	drv, err := New(h, cfg)
	if err != nil {
		Fault(h, err)
		select {}
	}
	_ = drv.Run(context.Background())
}
