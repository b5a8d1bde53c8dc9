package joystick

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBorderStyleCycle(t *testing.T) {
	b := BorderNone
	seen := []BorderStyle{b}
	for i := 0; i < 6; i++ {
		b = b.Next()
		seen = append(seen, b)
	}
	assert.Equal(t, []BorderStyle{
		BorderNone, BorderFull, BorderInset,
		BorderNone, BorderFull, BorderInset,
		BorderNone,
	}, seen)
	assert.Equal(t, "inset", BorderInset.String())
	assert.Equal(t, "invalid", BorderStyle(7).String())
}

func TestModeStateZeroValueIsBootState(t *testing.T) {
	var s ModeState
	assert.Equal(t, InitialMode, s.Load())
	assert.Equal(t, Mode{LEDsEnabled: true, GreenOn: false, Border: BorderNone}, s.Load())
}

func TestModePackRoundTrip(t *testing.T) {
	for _, leds := range []bool{false, true} {
		for _, green := range []bool{false, true} {
			for b := BorderNone; b < borderStyles; b++ {
				m := Mode{LEDsEnabled: leds, GreenOn: green, Border: b}
				assert.Equal(t, m, unpackMode(m.pack()))
			}
		}
	}
}

func TestModeStateConcurrentUpdates(t *testing.T) {
	const (
		writers = 4
		each    = 1000
	)
	var s ModeState
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				s.Update(func(m Mode) Mode {
					m.GreenOn = !m.GreenOn
					m.Border = m.Border.Next()
					return m
				})
			}
		}()
	}
	wg.Wait()

	m := s.Load()
	assert.Equal(t, BorderStyle(writers*each%borderStyles), m.Border)
	assert.Equal(t, writers*each%2 == 1, m.GreenOn)
	assert.True(t, m.LEDsEnabled)
}
