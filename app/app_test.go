//go:build !tinygo && !rpi

package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"joyglow/hal"
	"joyglow/joystick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHost() (*hal.Host, *hal.RecentLines) {
	lines := hal.NewRecentLines(16, nil)
	return hal.NewHost(lines), lines
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Core.DebounceWindow = time.Millisecond
	cfg.Core.TelemetryEvery = 0
	return cfg
}

func TestNewWiresBoard(t *testing.T) {
	h, lines := newHost()
	cfg := testConfig()

	drv, err := New(h, cfg)
	require.NoError(t, err)
	require.NotNil(t, drv)
	assert.Contains(t, strings.Join(lines.Lines(), "\n"), "ready")

	green := h.VirtualPin(cfg.Pins.Green)
	level, _ := green.Read()
	assert.False(t, level)

	// Boot flushed a blank frame.
	snap := make([]byte, h.Framebuffer().BufferLen())
	assert.Equal(t, uint64(1), h.Framebuffer().Snapshot(snap))

	_, wrap := h.VirtualPWM().Level(cfg.Pins.Red)
	assert.Equal(t, uint16(4095), wrap)
	_, wrap = h.VirtualPWM().Level(cfg.Pins.Blue)
	assert.Equal(t, uint16(4095), wrap)
}

func TestButtonsReachDriver(t *testing.T) {
	h, _ := newHost()
	cfg := testConfig()
	drv, err := New(h, cfg)
	require.NoError(t, err)

	h.VirtualADC().SetChannel(cfg.Core.XChannel, 4095)
	h.VirtualADC().SetChannel(cfg.Core.YChannel, 0)
	f := drv.Step()
	assert.Equal(t, uint16(3694), f.DutyRed)
	duty, _ := h.VirtualPWM().Level(cfg.Pins.Red)
	assert.Equal(t, uint16(3694), duty)

	time.Sleep(5 * time.Millisecond)
	h.VirtualPin(cfg.Pins.ButtonB).Press()
	h.VirtualPin(cfg.Pins.ButtonB).Release()
	assert.Equal(t, joystick.BorderFull, drv.Mode().Border)
	green, _ := h.VirtualPin(cfg.Pins.Green).Read()
	assert.True(t, green)

	time.Sleep(5 * time.Millisecond)
	h.VirtualPin(cfg.Pins.ButtonA).Press()
	assert.False(t, drv.Mode().LEDsEnabled)
	duty, _ = h.VirtualPWM().Level(cfg.Pins.Red)
	assert.Zero(t, duty)

	f = drv.Step()
	assert.Zero(t, f.DutyRed)
	assert.True(t, h.Framebuffer().Pixel(0, 0), "full border drawn")
}

func TestNewRejectsPinClash(t *testing.T) {
	h, _ := newHost()
	cfg := testConfig()
	cfg.Pins.Blue = cfg.Pins.Red
	_, err := New(h, cfg)
	assert.ErrorIs(t, err, errPinClash)
}

func TestNewRejectsMissingPin(t *testing.T) {
	h, _ := newHost()
	cfg := testConfig()
	cfg.Pins.ButtonB = 99
	_, err := New(h, cfg)
	assert.ErrorContains(t, err, "pin 99")
}

func TestNewRejectsBadCore(t *testing.T) {
	h, _ := newHost()
	cfg := testConfig()
	cfg.Core.Period = 0
	_, err := New(h, cfg)
	assert.ErrorIs(t, err, joystick.ErrInvalidConfig)
}

// headlessBoard is a host whose panel failed to come up.
type headlessBoard struct{ *hal.Host }

func (headlessBoard) Display() hal.Display { return nil }

func TestNewHaltsWithoutDisplay(t *testing.T) {
	h, lines := newHost()
	board := headlessBoard{h}
	cfg := testConfig()

	_, err := New(board, cfg)
	require.ErrorIs(t, err, joystick.ErrNoDisplay)
	_, wrap := h.VirtualPWM().Level(cfg.Pins.Red)
	assert.Zero(t, wrap, "outputs untouched")

	Fault(board, err)
	assert.Equal(t, []string{"joyglow fault: app: joystick: no display"}, lines.Lines())
}

func TestFaultScreen(t *testing.T) {
	h, lines := newHost()
	Fault(h, errors.New("adc: select 1: channel out of range on this board"))

	assert.Equal(t, []string{"joyglow fault: adc: select 1: channel out of range on this board"}, lines.Lines())

	fb := h.Framebuffer()
	lit := 0
	for y := int16(0); y < 64; y++ {
		for x := int16(0); x < 128; x++ {
			if fb.Pixel(x, y) {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 50)
	snap := make([]byte, fb.BufferLen())
	assert.Equal(t, uint64(1), fb.Snapshot(snap))
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	assert.Equal(t, "hé", p)
	assert.Equal(t, "llo", r)

	p, r = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Empty(t, r)
}
