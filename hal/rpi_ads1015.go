//go:build !tinygo && rpi

package hal

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

const (
	// adsFullScale is the stick's supply; readings are rescaled so that it
	// maps to MaxSample like the microcontroller's own converter.
	adsFullScale = 3300 * physic.MilliVolt
	adsRate      = 1600 * physic.Hertz
)

var adsChannels = [...]ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// adsADC reads single-ended inputs AIN0..AIN3 of an ADS1015 at 0x48.
type adsADC struct {
	mu   sync.Mutex
	pins [len(adsChannels)]ads1x15.PinADC
	ch   int
	last uint16
}

func newADS1015(bus i2c.Bus) (*adsADC, error) {
	dev, err := ads1x15.NewADS1015(bus, &ads1x15.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("ads1015: %w", err)
	}
	a := &adsADC{}
	for i, c := range adsChannels {
		p, err := dev.PinForChannel(c, adsFullScale, adsRate, ads1x15.BestQuality)
		if err != nil {
			return nil, fmt.Errorf("ads1015: channel %d: %w", i, err)
		}
		a.pins[i] = p
	}
	return a, nil
}

func (a *adsADC) Select(channel int) error {
	if channel < 0 || channel >= len(a.pins) {
		return ErrNotImplemented
	}
	a.mu.Lock()
	a.ch = channel
	a.mu.Unlock()
	return nil
}

// Read converts the selected channel. A bus error repeats the last good value.
func (a *adsADC) Read() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.pins[a.ch].Read()
	if err != nil {
		return a.last
	}
	a.last = voltsToSample(s.V)
	return a.last
}

func voltsToSample(v physic.ElectricPotential) uint16 {
	switch {
	case v <= 0:
		return 0
	case v >= adsFullScale:
		return MaxSample
	}
	return uint16(int64(v) * MaxSample / int64(adsFullScale))
}
