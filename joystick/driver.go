// Package joystick implements the control loop of a two-axis joystick board:
// debounced buttons, dead-zone PWM dimming of two LEDs and an indicator square
// on a monochrome display.
package joystick

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"joyglow/hal"
	"joyglow/internal/telemetry"
	"joyglow/irq"
)

var ErrNoDisplay = errors.New("joystick: no display")

// Peripherals are the board resources the driver uses.
type Peripherals struct {
	Logger  hal.Logger
	Clock   hal.Clock
	ADC     hal.ADC
	Display hal.Display
	Outputs Outputs
}

// Frame records what one loop iteration computed.
type Frame struct {
	Iteration uint64
	Sample    Sample
	DutyRed   uint16
	DutyBlue  uint16
	ScreenX   int16
	ScreenY   int16
	Mode      Mode
}

// Driver owns all loop state. The platform only passes it button edges.
type Driver struct {
	cfg    Config
	log    hal.Logger
	clock  hal.Clock
	out    Outputs
	mode   ModeState
	events irq.Mailbox

	edges    *EdgeDetector
	sampler  *Sampler
	mapper   Mapper
	renderer *Renderer

	iteration uint64
	sample    Sample
	line      []byte
	dropped   uint32
}

func New(cfg Config, p Peripherals) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p.Display == nil {
		return nil, ErrNoDisplay
	}
	if p.ADC == nil || p.Clock == nil || p.Outputs.PWM == nil {
		return nil, errors.New("joystick: missing peripherals")
	}
	w, h := p.Display.Size()
	if err := cfg.checkDisplay(w, h); err != nil {
		return nil, err
	}

	d := &Driver{
		cfg:      cfg,
		log:      p.Logger,
		clock:    p.Clock,
		out:      p.Outputs,
		sampler:  NewSampler(p.ADC, cfg.XChannel, cfg.YChannel, cfg.MaxSample),
		mapper:   newMapper(cfg),
		renderer: NewRenderer(p.Display, cfg.Indicator, cfg.Inset, cfg.MaxSample),
		sample:   Sample{X: cfg.Center, Y: cfg.Center},
		line:     make([]byte, 0, 96),
	}
	d.edges = NewEdgeDetector(uint32(cfg.DebounceWindow/time.Millisecond), &d.mode, d.out, &d.events)
	return d, nil
}

// HandleEdge feeds a falling edge of in, timestamped now. It is safe to call
// from interrupt context.
func (d *Driver) HandleEdge(in Input) bool {
	return d.edges.HandleEdge(in, d.clock.Millis())
}

// Mode returns the current user-controlled state.
func (d *Driver) Mode() Mode { return d.mode.Load() }

// Boot blanks the panel.
func (d *Driver) Boot() error {
	return d.renderer.Clear()
}

// Step runs one loop iteration: sample, dim the LEDs, draw, flush.
// Peripheral errors are logged and the iteration carries on where it can.
func (d *Driver) Step() Frame {
	d.drainEvents()

	f := Frame{Iteration: d.iteration}
	d.iteration++

	// A failed conversion repeats the previous sample.
	if sample, err := d.sampler.Read(); err != nil {
		d.logErr(err)
	} else {
		d.sample = sample
	}
	sample := d.sample
	f.Sample = sample

	mode := d.mode.Load()
	f.DutyRed, f.DutyBlue = d.mapper.Duties(sample, mode.LEDsEnabled)
	d.out.PWM.Set(d.out.Red, f.DutyRed)
	d.out.PWM.Set(d.out.Blue, f.DutyBlue)
	if mode.LEDsEnabled {
		// Button A may have switched the LEDs off after the load above and
		// before the writes; the edge handler's zeros would be overwritten.
		if now := d.mode.Load(); !now.LEDsEnabled {
			d.out.PWM.Set(d.out.Red, 0)
			d.out.PWM.Set(d.out.Blue, 0)
			f.DutyRed, f.DutyBlue = 0, 0
			mode = now
		}
	}
	f.Mode = mode

	f.ScreenX, f.ScreenY = d.renderer.Position(sample)
	d.renderer.Compose(mode.Border, f.ScreenX, f.ScreenY)
	if err := d.renderer.Flush(); err != nil {
		d.logErr(fmt.Errorf("display: %w", err))
	}

	if every := d.cfg.TelemetryEvery; every > 0 && f.Iteration%uint64(every) == 0 {
		d.writeTelemetry(f)
	}
	return f
}

// Run loops Step and the configured period until ctx ends. Firmware passes a
// context that is never cancelled.
func (d *Driver) Run(ctx context.Context) error {
	for {
		d.Step()
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		d.clock.Sleep(d.cfg.Period)
	}
}

func (d *Driver) drainEvents() {
	for {
		ev, ok := d.events.TryRecv()
		if !ok {
			break
		}
		if d.log == nil {
			continue
		}
		m := unpackMode(ev.State)
		d.line = telemetry.AppendEvent(d.line[:0], telemetry.Event{
			Input:  Input(ev.Source).String()[0],
			At:     ev.At,
			LEDs:   m.LEDsEnabled,
			Green:  m.GreenOn,
			Border: uint8(m.Border),
		})
		d.log.WriteLineBytes(d.line)
	}
	if n := d.events.Dropped(); n != d.dropped && d.log != nil {
		d.log.WriteLineString("irq: dropped " + strconv.FormatUint(uint64(n-d.dropped), 10) + " events")
		d.dropped = n
	}
}

func (d *Driver) writeTelemetry(f Frame) {
	if d.log == nil {
		return
	}
	d.line = telemetry.AppendRecord(d.line[:0], telemetry.Record{
		X:      f.Sample.X,
		Y:      f.Sample.Y,
		DX:     f.DutyRed,
		DY:     f.DutyBlue,
		SX:     f.ScreenX,
		SY:     f.ScreenY,
		LEDs:   f.Mode.LEDsEnabled,
		Green:  f.Mode.GreenOn,
		Border: uint8(f.Mode.Border),
	})
	d.log.WriteLineBytes(d.line)
}

func (d *Driver) logErr(err error) {
	if d.log != nil {
		d.log.WriteLineString(err.Error())
	}
}
