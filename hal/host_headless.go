//go:build !tinygo && !rpi

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Period     time.Duration
	Iterations int // 0 runs until the context ends
	Script     bool
	Pins       SimPins
	Logger     Logger
}

const sweepSteps = 40

// sweep is a triangle wave over [0, MaxSample] with 2*sweepSteps steps.
func sweep(i int) uint16 {
	i %= 2 * sweepSteps
	if i > sweepSteps {
		i = 2*sweepSteps - i
	}
	return uint16(i * MaxSample / sweepSteps)
}

// RunHeadless runs the firmware without opening a window. With Script set the
// stick sweeps both axes and the buttons are pressed periodically.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp func(HAL) (StepFunc, error)) error {
	if cfg.Period <= 0 {
		return fmt.Errorf("invalid headless period: %v", cfg.Period)
	}

	h := NewHost(cfg.Logger)
	step, err := newApp(h)
	if err != nil {
		return err
	}
	return runHeadless(ctx, h, cfg, step)
}

func runHeadless(ctx context.Context, h *Host, cfg HeadlessConfig, step StepFunc) error {
	buttons := []struct {
		pin int
		sig *signalPin
		was bool
	}{
		{pin: cfg.Pins.ButtonA, sig: newSignalPin("SCRIPT-A", 3*time.Second, 150*time.Millisecond)},
		{pin: cfg.Pins.ButtonB, sig: newSignalPin("SCRIPT-B", 2*time.Second, 100*time.Millisecond)},
	}

	t := time.NewTicker(cfg.Period)
	defer t.Stop()

	for i := 0; cfg.Iterations <= 0 || i < cfg.Iterations; i++ {
		if cfg.Script {
			h.adc.SetChannel(cfg.Pins.XChannel, sweep(i))
			h.adc.SetChannel(cfg.Pins.YChannel, sweep(i+sweepSteps/2))
			for j := range buttons {
				b := &buttons[j]
				if level := b.sig.Level(); level != b.was {
					b.was = level
					h.setButton(b.pin, level)
				}
			}
		}
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}
