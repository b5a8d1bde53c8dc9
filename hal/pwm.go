package hal

import (
	"fmt"
	"sync/atomic"
)

type pwmSlot struct {
	wrap       atomic.Uint32
	duty       atomic.Uint32
	configured atomic.Bool
}

// VirtualPWM records the duty written to each pin.
type VirtualPWM struct {
	slots []pwmSlot
}

func newVirtualPWM(pins int) *VirtualPWM {
	return &VirtualPWM{slots: make([]pwmSlot, pins)}
}

func (p *VirtualPWM) Configure(pin int, wrap uint16) error {
	if pin < 0 || pin >= len(p.slots) {
		return fmt.Errorf("pwm: pin %d: out of range", pin)
	}
	if wrap == 0 {
		return fmt.Errorf("pwm: pin %d: zero wrap", pin)
	}
	s := &p.slots[pin]
	s.wrap.Store(uint32(wrap))
	s.duty.Store(0)
	s.configured.Store(true)
	return nil
}

// Set stores duty as the hardware would: values above wrap read as fully on.
func (p *VirtualPWM) Set(pin int, duty uint16) {
	if pin < 0 || pin >= len(p.slots) {
		return
	}
	s := &p.slots[pin]
	if !s.configured.Load() {
		return
	}
	s.duty.Store(uint32(duty))
}

// Level returns the last duty and the wrap of a pin.
func (p *VirtualPWM) Level(pin int) (duty, wrap uint16) {
	if pin < 0 || pin >= len(p.slots) {
		return 0, 0
	}
	s := &p.slots[pin]
	return uint16(s.duty.Load()), uint16(s.wrap.Load())
}

// Brightness is the duty as a fraction of wrap in [0, 1].
func (p *VirtualPWM) Brightness(pin int) float64 {
	duty, wrap := p.Level(pin)
	if wrap == 0 {
		return 0
	}
	if duty >= wrap {
		return 1
	}
	return float64(duty) / float64(wrap)
}
