package joystick

import (
	"errors"
	"sync"
	"time"

	"joyglow/hal"
)

type fakeClock struct {
	mu      sync.Mutex
	now     uint32
	sleeps  []time.Duration
	onSleep func()
}

func (c *fakeClock) Millis() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.now += uint32(d / time.Millisecond)
	fn := c.onSleep
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (c *fakeClock) set(ms uint32) {
	c.mu.Lock()
	c.now = ms
	c.mu.Unlock()
}

var errNoChannel = errors.New("no such channel")

type fakeADC struct {
	values   map[int]uint16
	selected int
	selects  []int
	fail     bool
}

func newFakeADC(x, y uint16) *fakeADC {
	return &fakeADC{values: map[int]uint16{0: x, 1: y}}
}

func (a *fakeADC) Select(ch int) error {
	if a.fail {
		return errNoChannel
	}
	if _, ok := a.values[ch]; !ok {
		return errNoChannel
	}
	a.selected = ch
	a.selects = append(a.selects, ch)
	return nil
}

func (a *fakeADC) Read() uint16 { return a.values[a.selected] }

type pwmWrite struct {
	pin  int
	duty uint16
}

type recordPWM struct {
	mu     sync.Mutex
	level  map[int]uint16
	writes []pwmWrite
	onSet  func(pin int, duty uint16)
}

func newRecordPWM() *recordPWM {
	return &recordPWM{level: make(map[int]uint16)}
}

func (p *recordPWM) Configure(pin int, wrap uint16) error { return nil }

func (p *recordPWM) Set(pin int, duty uint16) {
	p.mu.Lock()
	p.level[pin] = duty
	p.writes = append(p.writes, pwmWrite{pin, duty})
	fn := p.onSet
	p.mu.Unlock()
	if fn != nil {
		fn(pin, duty)
	}
}

func (p *recordPWM) get(pin int) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level[pin]
}

type fakePin struct {
	mu     sync.Mutex
	level  bool
	writes int
}

func (p *fakePin) Name() string                                  { return "fake" }
func (p *fakePin) Caps() hal.GPIOCaps                            { return hal.GPIOCapOutput }
func (p *fakePin) Configure(hal.GPIOMode, hal.GPIOPull) error    { return nil }
func (p *fakePin) SetInterrupt(hal.GPIOEdge, func(id int)) error { return nil }

func (p *fakePin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *fakePin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.writes++
	return nil
}

type lineLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLog) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *lineLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *lineLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

type failingDisplay struct {
	*hal.MonoFramebuffer
}

func (failingDisplay) Display() error { return errors.New("i2c nack") }

const (
	testRed  = 13
	testBlue = 12
)

type rig struct {
	clock *fakeClock
	adc   *fakeADC
	pwm   *recordPWM
	green *fakePin
	fb    *hal.MonoFramebuffer
	log   *lineLog
	drv   *Driver
}

func newRig(cfg Config, x, y uint16) (*rig, error) {
	r := &rig{
		clock: &fakeClock{now: 10_000},
		adc:   newFakeADC(x, y),
		pwm:   newRecordPWM(),
		green: &fakePin{},
		fb:    hal.NewMonoFramebuffer(128, 64),
		log:   &lineLog{},
	}
	drv, err := New(cfg, Peripherals{
		Logger:  r.log,
		Clock:   r.clock,
		ADC:     r.adc,
		Display: r.fb,
		Outputs: Outputs{PWM: r.pwm, Red: testRed, Blue: testBlue, Green: r.green},
	})
	r.drv = drv
	return r, err
}
