//go:build !tinygo && rpi

package hal

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// rpiPinCount covers the 40-pin header's BCM numbers.
const rpiPinCount = 28

// pwmFrequency is close to the RP2040 default slice rate with wrap 4095.
const pwmFrequency = 30 * physic.KiloHertz

type rpiHAL struct {
	logger Logger
	gpio   *rpiGPIO
	pwm    *rpiPWM
	adc    *adsADC
	disp   *MonoFramebuffer
	clock  *systemClock
}

// Open initializes the Raspberry Pi host drivers and returns a HAL. The OLED
// (SSD1306 at 0x3C) and the joystick converter (ADS1015 at 0x48) share the
// default I2C bus at 400 kHz. Pins are BCM numbers.
func Open(logger Logger) (HAL, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("rpi: host init: %w", err)
	}
	if logger == nil {
		logger = NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("rpi: i2c: %w", err)
	}
	if err := bus.SetSpeed(400 * physic.KiloHertz); err != nil {
		return nil, fmt.Errorf("rpi: i2c speed: %w", err)
	}
	oled, err := newSSD1306(bus)
	if err != nil {
		return nil, err
	}
	adc, err := newADS1015(bus)
	if err != nil {
		return nil, err
	}
	return &rpiHAL{
		logger: logger,
		gpio:   &rpiGPIO{},
		pwm:    &rpiPWM{},
		adc:    adc,
		disp:   oled,
		clock:  newSystemClock(),
	}, nil
}

func (h *rpiHAL) Logger() Logger   { return h.logger }
func (h *rpiHAL) GPIO() GPIO       { return h.gpio }
func (h *rpiHAL) PWM() PWM         { return h.pwm }
func (h *rpiHAL) ADC() ADC         { return h.adc }
func (h *rpiHAL) Display() Display { return h.disp }
func (h *rpiHAL) Clock() Clock     { return h.clock }

func pinByNumber(id int) gpio.PinIO {
	return gpioreg.ByName(fmt.Sprintf("GPIO%d", id))
}

type rpiGPIO struct {
	mu   sync.Mutex
	pins map[int]*rpiPin
}

func (g *rpiGPIO) PinCount() int { return rpiPinCount }

func (g *rpiGPIO) Pin(id int) GPIOPin {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.pins[id]; ok {
		return p
	}
	io := pinByNumber(id)
	if io == nil {
		return nil
	}
	if g.pins == nil {
		g.pins = make(map[int]*rpiPin)
	}
	p := &rpiPin{id: id, io: io}
	g.pins[id] = p
	return p
}

type rpiPin struct {
	id   int
	io   gpio.PinIO
	mode GPIOMode
	pull gpio.Pull
}

func (p *rpiPin) Name() string { return p.io.Name() }

func (p *rpiPin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown | GPIOCapInterrupt
}

func (p *rpiPin) Configure(mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeOutput:
		if err := p.io.Out(gpio.Low); err != nil {
			return fmt.Errorf("gpio: pin %s: %w", p.Name(), err)
		}
	case GPIOModeInput:
		switch pull {
		case GPIOPullUp:
			p.pull = gpio.PullUp
		case GPIOPullDown:
			p.pull = gpio.PullDown
		default:
			p.pull = gpio.Float
		}
		if err := p.io.In(p.pull, gpio.NoEdge); err != nil {
			return fmt.Errorf("gpio: pin %s: %w", p.Name(), err)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.Name())
	}
	p.mode = mode
	return nil
}

func (p *rpiPin) Read() (bool, error) { return p.io.Read() == gpio.High, nil }

func (p *rpiPin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.Name())
	}
	return p.io.Out(gpio.Level(level))
}

// SetInterrupt re-arms the input with edge detection and calls handler from a
// goroutine blocked in WaitForEdge.
func (p *rpiPin) SetInterrupt(edge GPIOEdge, handler func(id int)) error {
	if p.mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: interrupt needs input mode", p.Name())
	}
	var e gpio.Edge
	switch {
	case edge&GPIOEdgeFalling != 0 && edge&GPIOEdgeRising != 0:
		e = gpio.BothEdges
	case edge&GPIOEdgeFalling != 0:
		e = gpio.FallingEdge
	case edge&GPIOEdgeRising != 0:
		e = gpio.RisingEdge
	default:
		return p.io.In(p.pull, gpio.NoEdge)
	}
	if err := p.io.In(p.pull, e); err != nil {
		return fmt.Errorf("gpio: pin %s: %w", p.Name(), err)
	}
	go func() {
		for {
			if p.io.WaitForEdge(-1) {
				handler(p.id)
			}
		}
	}()
	return nil
}

type rpiPWMOut struct {
	io   gpio.PinIO
	wrap uint16
}

// rpiPWM drives BCM pins with hardware PWM (GPIO12, 13, 18, 19) or the
// driver's fallback.
type rpiPWM struct {
	mu   sync.Mutex
	outs map[int]rpiPWMOut
}

func (p *rpiPWM) Configure(pin int, wrap uint16) error {
	if wrap == 0 {
		return fmt.Errorf("pwm: pin %d: zero wrap", pin)
	}
	io := pinByNumber(pin)
	if io == nil {
		return fmt.Errorf("pwm: pin %d: no such pin", pin)
	}
	if err := io.PWM(0, pwmFrequency); err != nil {
		return fmt.Errorf("pwm: pin %d: %w", pin, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.outs == nil {
		p.outs = make(map[int]rpiPWMOut)
	}
	p.outs[pin] = rpiPWMOut{io: io, wrap: wrap}
	return nil
}

func (p *rpiPWM) Set(pin int, duty uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out, ok := p.outs[pin]
	if !ok {
		return
	}
	if duty > out.wrap {
		duty = out.wrap
	}
	d := gpio.Duty(int64(duty) * int64(gpio.DutyMax) / int64(out.wrap))
	_ = out.io.PWM(d, pwmFrequency)
}
