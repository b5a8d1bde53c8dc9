package hal

import (
	"fmt"
	"sync/atomic"
)

// MaxSample is the largest 12-bit ADC reading.
const MaxSample = 4095

// VirtualADC is a multi-channel analog source. Channels start at mid-scale,
// a joystick at rest.
type VirtualADC struct {
	selected atomic.Int32
	channels []atomic.Uint32
}

func newVirtualADC(channels int) *VirtualADC {
	a := &VirtualADC{channels: make([]atomic.Uint32, channels)}
	for i := range a.channels {
		a.channels[i].Store((MaxSample + 1) / 2)
	}
	return a
}

func (a *VirtualADC) Select(channel int) error {
	if channel < 0 || channel >= len(a.channels) {
		return fmt.Errorf("adc: channel %d: out of range", channel)
	}
	a.selected.Store(int32(channel))
	return nil
}

func (a *VirtualADC) Read() uint16 {
	return uint16(a.channels[a.selected.Load()].Load())
}

// SetChannel sets the voltage seen by a channel, clamped to 12 bits.
func (a *VirtualADC) SetChannel(channel int, v uint16) {
	if channel < 0 || channel >= len(a.channels) {
		return
	}
	if v > MaxSample {
		v = MaxSample
	}
	a.channels[channel].Store(uint32(v))
}

// Channel returns the level currently applied to a channel.
func (a *VirtualADC) Channel(channel int) uint16 {
	if channel < 0 || channel >= len(a.channels) {
		return 0
	}
	return uint16(a.channels[channel].Load())
}
