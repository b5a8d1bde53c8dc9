package joystick

// Sample is one reading of both joystick axes, each in [0, MaxSample].
type Sample struct {
	X uint16
	Y uint16
}

// Mapper turns axis deflection into LED duty. Inside the dead zone around the
// center the duty is exactly zero; outside it grows by Gain per count and is
// clamped to Wrap.
type Mapper struct {
	Center   int32
	DeadZone int32
	Gain     int32
	Wrap     uint16
}

func newMapper(cfg Config) Mapper {
	return Mapper{
		Center:   int32(cfg.Center),
		DeadZone: int32(cfg.DeadZone),
		Gain:     int32(cfg.Gain),
		Wrap:     cfg.Wrap,
	}
}

// Duty maps one axis reading. The product is taken in int64 so that any
// Center, DeadZone and Gain a Config can carry saturate at Wrap.
func (m Mapper) Duty(s uint16) uint16 {
	delta := int64(m.Center) - int64(s)
	if delta < 0 {
		delta = -delta
	}
	duty := (delta - int64(m.DeadZone)) * int64(m.Gain)
	switch {
	case duty <= 0:
		return 0
	case duty > int64(m.Wrap):
		return m.Wrap
	}
	return uint16(duty)
}

// Duties maps X to the red LED and Y to the blue LED. Both are zero while the
// LEDs are disabled.
func (m Mapper) Duties(s Sample, enabled bool) (red, blue uint16) {
	if !enabled {
		return 0, 0
	}
	return m.Duty(s.X), m.Duty(s.Y)
}
