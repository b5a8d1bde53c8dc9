package joystick

import (
	"fmt"

	"joyglow/hal"
)

// Sampler reads both axes from a multiplexed converter: Y first, then X.
type Sampler struct {
	adc      hal.ADC
	xChannel int
	yChannel int
	max      uint16
}

func NewSampler(adc hal.ADC, xChannel, yChannel int, max uint16) *Sampler {
	return &Sampler{adc: adc, xChannel: xChannel, yChannel: yChannel, max: max}
}

func (s *Sampler) Read() (Sample, error) {
	y, err := s.read(s.yChannel)
	if err != nil {
		return Sample{}, err
	}
	x, err := s.read(s.xChannel)
	if err != nil {
		return Sample{}, err
	}
	return Sample{X: x, Y: y}, nil
}

func (s *Sampler) read(channel int) (uint16, error) {
	if err := s.adc.Select(channel); err != nil {
		return 0, fmt.Errorf("adc: select %d: %w", channel, err)
	}
	v := s.adc.Read()
	if v > s.max {
		v = s.max
	}
	return v, nil
}
