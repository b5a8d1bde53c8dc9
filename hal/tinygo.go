//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers/ssd1306"
)

const (
	picoPinCount = 30
	oledWidth    = 128
	oledHeight   = 64
	oledAddress  = 0x3C
)

type picoHAL struct {
	logger *serialLogger
	gpio   *picoGPIO
	pwm    *picoPWM
	adc    *picoADC
	disp   Display
	clock  *systemClock
}

// New returns a Raspberry Pi Pico (RP2040) HAL implementation.
//
// Log lines go to the USB CDC console. The SSD1306 sits on I2C1, GP14 (SDA) /
// GP15 (SCL), at 400 kHz.
func New() HAL {
	h := &picoHAL{
		logger: &serialLogger{out: machine.Serial},
		gpio:   &picoGPIO{},
		pwm:    &picoPWM{},
		adc:    newPicoADC(),
		clock:  newSystemClock(),
	}
	// Display stays nil when the bus does not come up, so setup halts with a
	// fault instead of running the loop blind.
	if oled, err := newPicoOLED(); err == nil {
		h.disp = oled
	} else {
		h.logger.WriteLineString("oled: " + err.Error())
	}
	return h
}

func (h *picoHAL) Logger() Logger   { return h.logger }
func (h *picoHAL) GPIO() GPIO       { return h.gpio }
func (h *picoHAL) PWM() PWM         { return h.pwm }
func (h *picoHAL) ADC() ADC         { return h.adc }
func (h *picoHAL) Display() Display { return h.disp }
func (h *picoHAL) Clock() Clock     { return h.clock }

func newPicoOLED() (*ssd1306.Device, error) {
	bus := machine.I2C1
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP14,
		SCL:       machine.GP15,
	}); err != nil {
		return nil, err
	}
	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Width:   oledWidth,
		Height:  oledHeight,
		Address: oledAddress,
	})
	return dev, nil
}

// picoADC covers the three external ADC inputs, GP26..GP28.
type picoADC struct {
	inputs [3]machine.ADC
	sel    int
}

func newPicoADC() *picoADC {
	machine.InitADC()
	a := &picoADC{inputs: [3]machine.ADC{
		{Pin: machine.ADC0},
		{Pin: machine.ADC1},
		{Pin: machine.ADC2},
	}}
	for i := range a.inputs {
		a.inputs[i].Configure(machine.ADCConfig{})
	}
	return a
}

func (a *picoADC) Select(channel int) error {
	if channel < 0 || channel >= len(a.inputs) {
		return ErrNotImplemented
	}
	a.sel = channel
	return nil
}

// Read scales the 16-bit machine reading back to the converter's 12 bits.
func (a *picoADC) Read() uint16 {
	return a.inputs[a.sel].Get() >> 4
}

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Set(channel uint8, value uint32)
}

type pwmOutput struct {
	dev pwmDevice
	ch  uint8
}

type picoPWM struct {
	outs [picoPinCount]pwmOutput
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

// Configure runs the pin's slice at about 30 kHz with the given wrap.
func (p *picoPWM) Configure(pin int, wrap uint16) error {
	if pin < 0 || pin >= picoPinCount {
		return ErrNotImplemented
	}
	dev := pwmForPin(machine.Pin(pin))
	if dev == nil {
		return ErrNotImplemented
	}
	if err := dev.Configure(machine.PWMConfig{Period: 32768}); err != nil {
		return err
	}
	dev.SetTop(uint32(wrap))
	ch, err := dev.Channel(machine.Pin(pin))
	if err != nil {
		return err
	}
	dev.Set(ch, 0)
	p.outs[pin] = pwmOutput{dev: dev, ch: ch}
	return nil
}

func (p *picoPWM) Set(pin int, duty uint16) {
	if pin < 0 || pin >= picoPinCount {
		return
	}
	out := p.outs[pin]
	if out.dev == nil {
		return
	}
	out.dev.Set(out.ch, uint32(duty))
}
