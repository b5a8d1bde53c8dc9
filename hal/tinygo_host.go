//go:build tinygo && !baremetal

package hal

const (
	tinyGoHostPins     = 30
	tinyGoHostChannels = 3
)

type tinyGoHostHAL struct {
	logger tinyGoHostLogger
	gpio   GPIO
	pwm    *VirtualPWM
	adc    *VirtualADC
	fb     *MonoFramebuffer
	clock  *systemClock
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping: the stick rests centered and the display is never shown.
func New() HAL {
	gpio, _ := newBoardGPIO(tinyGoHostPins)
	return &tinyGoHostHAL{
		gpio:  gpio,
		pwm:   newVirtualPWM(tinyGoHostPins),
		adc:   newVirtualADC(tinyGoHostChannels),
		fb:    NewMonoFramebuffer(128, 64),
		clock: newSystemClock(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHostHAL) PWM() PWM         { return h.pwm }
func (h *tinyGoHostHAL) ADC() ADC         { return h.adc }
func (h *tinyGoHostHAL) Display() Display { return h.fb }
func (h *tinyGoHostHAL) Clock() Clock     { return h.clock }

type tinyGoHostLogger struct{}

func (tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
