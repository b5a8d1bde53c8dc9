package hal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOEdge selects which level transitions raise an interrupt.
type GPIOEdge uint8

const (
	GPIOEdgeFalling GPIOEdge = 1 << iota
	GPIOEdgeRising
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
	GPIOCapInterrupt
)

// GPIO provides access to general-purpose IO pins by GPIO number.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin.
//
// The handler passed to SetInterrupt may run in interrupt context: it must not
// block, allocate or log.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
	SetInterrupt(edge GPIOEdge, handler func(id int)) error
}

type nullGPIO struct{}

func (nullGPIO) PinCount() int      { return 0 }
func (nullGPIO) Pin(id int) GPIOPin { return nil }

type virtualGPIO struct {
	pins []GPIOPin
}

func newVirtualGPIO(pins []GPIOPin) GPIO {
	if len(pins) == 0 {
		return nullGPIO{}
	}
	return &virtualGPIO{pins: pins}
}

func (g *virtualGPIO) PinCount() int {
	if g == nil {
		return 0
	}
	return len(g.pins)
}

func (g *virtualGPIO) Pin(id int) GPIOPin {
	if g == nil || id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

// newBoardGPIO returns count virtual pins named GPIO0..GPIO(count-1).
func newBoardGPIO(count int) (GPIO, []*VirtualPin) {
	caps := GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown | GPIOCapInterrupt
	pins := make([]GPIOPin, count)
	virt := make([]*VirtualPin, count)
	for i := 0; i < count; i++ {
		p := newVirtualPin(i, fmt.Sprintf("GPIO%d", i), caps)
		pins[i] = p
		virt[i] = p
	}
	return newVirtualGPIO(pins), virt
}

// VirtualPin is a simulated pin. Drive changes the externally applied level of
// an input and fires its interrupt handler on a matching edge.
type VirtualPin struct {
	mu      sync.Mutex
	id      int
	name    string
	caps    GPIOCaps
	mode    GPIOMode
	pull    GPIOPull
	level   bool
	edge    GPIOEdge
	handler func(id int)
}

func newVirtualPin(id int, name string, caps GPIOCaps) *VirtualPin {
	return &VirtualPin{
		id:   id,
		name: name,
		caps: caps,
		mode: GPIOModeInput,
		pull: GPIOPullNone,
	}
}

func (p *VirtualPin) Name() string   { return p.name }
func (p *VirtualPin) Caps() GPIOCaps { return p.caps }

func (p *VirtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mode {
	case GPIOModeInput:
		if p.caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", p.name)
		}
	case GPIOModeOutput:
		if p.caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if p.caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", p.name)
		}
		p.level = true
	case GPIOPullDown:
		if p.caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", p.name)
		}
		p.level = false
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
	}

	p.mode = mode
	p.pull = pull
	return nil
}

func (p *VirtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *VirtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	return nil
}

func (p *VirtualPin) SetInterrupt(edge GPIOEdge, handler func(id int)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.caps&GPIOCapInterrupt == 0 {
		return fmt.Errorf("gpio: pin %s: interrupts unsupported", p.name)
	}
	if p.mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: interrupt needs input mode", p.name)
	}
	p.edge = edge
	p.handler = handler
	return nil
}

// Drive applies an external level to an input pin. The interrupt handler runs
// on the caller's goroutine, outside the pin lock.
func (p *VirtualPin) Drive(level bool) {
	p.mu.Lock()
	if p.mode != GPIOModeInput {
		p.mu.Unlock()
		return
	}
	prev := p.level
	p.level = level

	var fire func(id int)
	switch {
	case prev && !level && p.edge&GPIOEdgeFalling != 0:
		fire = p.handler
	case !prev && level && p.edge&GPIOEdgeRising != 0:
		fire = p.handler
	}
	p.mu.Unlock()

	if fire != nil {
		fire(p.id)
	}
}

// Press pulls an active-low button to ground.
func (p *VirtualPin) Press() { p.Drive(false) }

// Release lets the pull-up bring the button back high.
func (p *VirtualPin) Release() { p.Drive(true) }

// signalPin is a periodic square wave source used to script button presses.
type signalPin struct {
	mu   sync.Mutex
	name string

	t0     time.Time
	now    func() time.Time
	period time.Duration
	high   time.Duration
}

func newSignalPin(name string, period, high time.Duration) *signalPin {
	return newSignalPinWithClock(name, period, high, time.Now)
}

func newSignalPinWithClock(name string, period, high time.Duration, now func() time.Time) *signalPin {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = 1 * time.Second
	}
	if high < 0 {
		high = 0
	}
	if high > period {
		high = period
	}
	return &signalPin{
		name:   name,
		t0:     now(),
		now:    now,
		period: period,
		high:   high,
	}
}

// Level reports the wave level: high for the first `high` of every period.
func (p *signalPin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	phase := elapsed % p.period
	return phase < p.high
}
