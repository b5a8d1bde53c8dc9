//go:build !tinygo && !rpi

package hal

// SimPins tells the host presenters which simulated peripherals belong to the
// joystick board.
type SimPins struct {
	ButtonA  int
	ButtonB  int
	Red      int
	Blue     int
	Green    int
	XChannel int
	YChannel int
}

// StepFunc runs one iteration of the firmware loop.
type StepFunc func() error

// Lamps is what the three LEDs currently show.
type Lamps struct {
	Red   float64
	Blue  float64
	Green bool
}

// Lamps reads the simulated LED outputs.
func (h *Host) Lamps(pins SimPins) Lamps {
	l := Lamps{
		Red:  h.pwm.Brightness(pins.Red),
		Blue: h.pwm.Brightness(pins.Blue),
	}
	if p := h.VirtualPin(pins.Green); p != nil {
		l.Green, _ = p.Read()
	}
	return l
}

// stick is a direction pad view of the joystick.
type stick struct {
	left, right, up, down bool
	half                  bool
}

// axisLevel maps a direction pair to an ADC level; up and right read high.
func axisLevel(neg, pos, half bool) uint16 {
	const mid = (MaxSample + 1) / 2
	switch {
	case pos && !neg:
		if half {
			return mid + mid/2
		}
		return MaxSample
	case neg && !pos:
		if half {
			return mid - mid/2
		}
		return 0
	}
	return mid
}

func (h *Host) setStick(pins SimPins, s stick) {
	h.adc.SetChannel(pins.XChannel, axisLevel(s.left, s.right, s.half))
	h.adc.SetChannel(pins.YChannel, axisLevel(s.down, s.up, s.half))
}

// setButton holds or releases an active-low button; repeated calls with the
// same state do nothing.
func (h *Host) setButton(id int, pressed bool) {
	p := h.VirtualPin(id)
	if p == nil {
		return
	}
	p.Drive(!pressed)
}
