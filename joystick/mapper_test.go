package joystick

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultMapper() Mapper { return newMapper(DefaultConfig()) }

func TestDutyDeadZoneIsExactlyZero(t *testing.T) {
	m := defaultMapper()
	for s := 2048 - 200; s <= 2048+200; s++ {
		assert.Zero(t, m.Duty(uint16(s)), "sample %d", s)
	}
	assert.Equal(t, uint16(2), m.Duty(2048-201))
	assert.Equal(t, uint16(2), m.Duty(2048+201))
}

func TestDutyFormula(t *testing.T) {
	m := defaultMapper()
	cases := []struct {
		sample uint16
		want   uint16
	}{
		{4095, 3694},
		{0, 3696},
		{3000, (952 - 200) * 2},
		{1000, (1048 - 200) * 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, m.Duty(c.sample), "sample %d", c.sample)
	}
}

func TestDutyClampsToWrap(t *testing.T) {
	m := defaultMapper()
	m.Gain = 3
	assert.Equal(t, uint16(4095), m.Duty(0))
	assert.Equal(t, uint16(4095), m.Duty(4095))
	assert.Equal(t, uint16(3), m.Duty(2048-201))
}

func TestDutyNeverWrapsForAnyInput(t *testing.T) {
	m := defaultMapper()
	for s := 0; s <= 0xFFFF; s++ {
		if d := m.Duty(uint16(s)); d > m.Wrap {
			t.Fatalf("Duty(%d) = %d above wrap", s, d)
		}
	}
}

func TestDutySaturatesForExtremeConfigs(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"full range gain", Config{MaxSample: 65535, Center: 65535, DeadZone: 0, Gain: 65535, Wrap: 4095}},
		{"max wrap", Config{MaxSample: 65535, Center: 32768, DeadZone: 1, Gain: 65535, Wrap: 65535}},
		{"low center", Config{MaxSample: 65535, Center: 1, DeadZone: 0, Gain: 65535, Wrap: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.cfg.DebounceWindow = DefaultConfig().DebounceWindow
			c.cfg.Period = DefaultConfig().Period
			c.cfg.Indicator = 8
			c.cfg.YChannel = 1
			assert.NoError(t, c.cfg.Validate())

			m := newMapper(c.cfg)
			var prev uint16
			for s := int(c.cfg.Center); s >= 0; s-- {
				d := m.Duty(uint16(s))
				if d > m.Wrap || d < prev {
					t.Fatalf("Duty(%d) = %d after %d, wrap %d", s, d, prev, m.Wrap)
				}
				prev = d
			}
			for s := int(c.cfg.Center); s <= 0xFFFF; s++ {
				if d := m.Duty(uint16(s)); d > m.Wrap {
					t.Fatalf("Duty(%d) = %d above wrap %d", s, d, m.Wrap)
				}
			}
		})
	}

	m := newMapper(Config{Center: 65535, Gain: 65535, Wrap: 4095})
	assert.Equal(t, uint16(4095), m.Duty(0))
	assert.Zero(t, m.Duty(65535))
}

func TestDutyMonotonicInDeflection(t *testing.T) {
	m := defaultMapper()
	var prev uint16
	for s := 2048; s <= 4095; s++ {
		d := m.Duty(uint16(s))
		if d < prev {
			t.Fatalf("Duty(%d) = %d below Duty(%d) = %d", s, d, s-1, prev)
		}
		prev = d
	}
	prev = 0
	for s := 2048; s >= 0; s-- {
		d := m.Duty(uint16(s))
		if d < prev {
			t.Fatalf("Duty(%d) = %d below Duty(%d) = %d", s, d, s+1, prev)
		}
		prev = d
	}
}

func TestDutiesDisabled(t *testing.T) {
	m := defaultMapper()
	r, b := m.Duties(Sample{X: 4095, Y: 0}, true)
	assert.Equal(t, uint16(3694), r)
	assert.Equal(t, uint16(3696), b)

	r, b = m.Duties(Sample{X: 4095, Y: 0}, false)
	assert.Zero(t, r)
	assert.Zero(t, b)
}
