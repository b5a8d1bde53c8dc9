//go:build !tinygo && !rpi

package hal

import (
	"log/slog"
	"os"
)

const (
	hostPinCount    = 30
	hostADCChannels = 3
	hostDisplayW    = 128
	hostDisplayH    = 64
)

// Host is the desktop simulator: virtual pins, LEDs, joystick and OLED.
type Host struct {
	logger Logger
	gpio   GPIO
	pins   []*VirtualPin
	pwm    *VirtualPWM
	adc    *VirtualADC
	fb     *MonoFramebuffer
	clock  *systemClock
}

// New returns a host HAL implementation logging to stderr.
func New() HAL {
	return NewHost(nil)
}

// NewHost returns a simulator that writes log lines to logger. A nil logger
// selects a slog text handler on stderr.
func NewHost(logger Logger) *Host {
	if logger == nil {
		logger = NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
	gpio, pins := newBoardGPIO(hostPinCount)
	return &Host{
		logger: logger,
		gpio:   gpio,
		pins:   pins,
		pwm:    newVirtualPWM(hostPinCount),
		adc:    newVirtualADC(hostADCChannels),
		fb:     NewMonoFramebuffer(hostDisplayW, hostDisplayH),
		clock:  newSystemClock(),
	}
}

func (h *Host) Logger() Logger   { return h.logger }
func (h *Host) GPIO() GPIO       { return h.gpio }
func (h *Host) PWM() PWM         { return h.pwm }
func (h *Host) ADC() ADC         { return h.adc }
func (h *Host) Display() Display { return h.fb }
func (h *Host) Clock() Clock     { return h.clock }

// VirtualPin returns the simulated pin with GPIO number id, or nil.
func (h *Host) VirtualPin(id int) *VirtualPin {
	if id < 0 || id >= len(h.pins) {
		return nil
	}
	return h.pins[id]
}

func (h *Host) VirtualPWM() *VirtualPWM       { return h.pwm }
func (h *Host) VirtualADC() *VirtualADC       { return h.adc }
func (h *Host) Framebuffer() *MonoFramebuffer { return h.fb }
