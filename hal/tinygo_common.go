//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
)

type byteWriter interface {
	WriteByte(c byte) error
}

type serialLogger struct {
	out byteWriter
}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.out.WriteByte(s[i])
	}
	l.out.WriteByte('\r')
	l.out.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.out.WriteByte(b[i])
	}
	l.out.WriteByte('\r')
	l.out.WriteByte('\n')
}

type picoGPIO struct {
	pins [picoPinCount]*picoPin
}

func (g *picoGPIO) PinCount() int { return picoPinCount }

func (g *picoGPIO) Pin(id int) GPIOPin {
	if id < 0 || id >= picoPinCount {
		return nil
	}
	if g.pins[id] == nil {
		g.pins[id] = &picoPin{id: id, pin: machine.Pin(id)}
	}
	return g.pins[id]
}

type picoPin struct {
	id   int
	pin  machine.Pin
	mode GPIOMode
}

func (p *picoPin) Name() string { return fmt.Sprintf("GP%d", p.id) }

func (p *picoPin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown | GPIOCapInterrupt
}

func (p *picoPin) Configure(mode GPIOMode, pull GPIOPull) error {
	var cfg machine.PinConfig
	switch mode {
	case GPIOModeOutput:
		cfg.Mode = machine.PinOutput
	case GPIOModeInput:
		switch pull {
		case GPIOPullUp:
			cfg.Mode = machine.PinInputPullup
		case GPIOPullDown:
			cfg.Mode = machine.PinInputPulldown
		default:
			cfg.Mode = machine.PinInput
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.Name())
	}
	p.pin.Configure(cfg)
	p.mode = mode
	return nil
}

func (p *picoPin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *picoPin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.Name())
	}
	p.pin.Set(level)
	return nil
}

func (p *picoPin) SetInterrupt(edge GPIOEdge, handler func(id int)) error {
	var change machine.PinChange
	if edge&GPIOEdgeFalling != 0 {
		change |= machine.PinFalling
	}
	if edge&GPIOEdgeRising != 0 {
		change |= machine.PinRising
	}
	id := p.id
	return p.pin.SetInterrupt(change, func(machine.Pin) { handler(id) })
}
