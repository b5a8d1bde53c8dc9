//go:build !tinygo && !rpi

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"joyglow/app"
	"joyglow/hal"
	"joyglow/internal/buildinfo"

	"github.com/urfave/cli"
)

func main() {
	defaults := app.DefaultConfig().Core

	c := cli.NewApp()
	c.Name = "joyglow"
	c.Usage = "joystick LED dimmer and OLED tracker, simulated on the desktop"
	c.Version = buildinfo.Long()
	c.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a window",
		},
		cli.IntFlag{
			Name:  "iterations",
			Usage: "Stop after N loop iterations in headless mode (0 = run forever)",
		},
		cli.BoolFlag{
			Name:  "script-buttons",
			Usage: "In headless mode, sweep the stick and press the buttons periodically",
		},
		cli.BoolFlag{
			Name:  "terminal",
			Usage: "Render the display in the terminal instead of a window",
		},
		cli.DurationFlag{
			Name:  "period",
			Usage: "Loop period",
			Value: defaults.Period,
		},
		cli.IntFlag{
			Name:  "dead-zone",
			Usage: "Dead zone around the stick center, in ADC counts",
			Value: int(defaults.DeadZone),
		},
		cli.IntFlag{
			Name:  "gain",
			Usage: "PWM counts per ADC count outside the dead zone",
			Value: int(defaults.Gain),
		},
		cli.DurationFlag{
			Name:  "debounce",
			Usage: "Minimum time between accepted button presses",
			Value: defaults.DebounceWindow,
		},
		cli.IntFlag{
			Name:  "telemetry-every",
			Usage: "Log a telemetry line every N iterations (0 = off)",
			Value: defaults.TelemetryEvery,
		},
	}
	c.Action = run

	if err := c.Run(os.Args); err != nil {
		slog.Error("joyglow failed", "error", err)
		os.Exit(1)
	}
}

func configFrom(c *cli.Context) (app.Config, error) {
	cfg := app.DefaultConfig()
	cfg.Core.Period = c.Duration("period")
	cfg.Core.DebounceWindow = c.Duration("debounce")
	cfg.Core.TelemetryEvery = c.Int("telemetry-every")

	dz, gain := c.Int("dead-zone"), c.Int("gain")
	if dz < 0 || dz > 0xFFFF || gain < 0 || gain > 0xFFFF {
		return cfg, errors.New("dead-zone and gain must fit in 16 bits")
	}
	cfg.Core.DeadZone = uint16(dz)
	cfg.Core.Gain = uint16(gain)
	return cfg, cfg.Core.Validate()
}

func simPins(cfg app.Config) hal.SimPins {
	return hal.SimPins{
		ButtonA:  cfg.Pins.ButtonA,
		ButtonB:  cfg.Pins.ButtonB,
		Red:      cfg.Pins.Red,
		Blue:     cfg.Pins.Blue,
		Green:    cfg.Pins.Green,
		XChannel: cfg.Core.XChannel,
		YChannel: cfg.Core.YChannel,
	}
}

func run(c *cli.Context) error {
	cfg, err := configFrom(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	newApp := func(h hal.HAL) (hal.StepFunc, error) {
		drv, err := app.New(h, cfg)
		if err != nil {
			app.Fault(h, err)
			return nil, err
		}
		return func() error {
			drv.Step()
			return nil
		}, nil
	}

	logger := hal.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	switch {
	case c.Bool("headless"):
		err = hal.RunHeadless(ctx, hal.HeadlessConfig{
			Period:     cfg.Core.Period,
			Iterations: c.Int("iterations"),
			Script:     c.Bool("script-buttons"),
			Pins:       simPins(cfg),
			Logger:     logger,
		}, newApp)
	case c.Bool("terminal"):
		// stderr shares the terminal, so log lines only show in the view.
		err = hal.RunTerminal(ctx, hal.TerminalConfig{
			Period: cfg.Core.Period,
			Pins:   simPins(cfg),
		}, newApp)
	default:
		err = hal.RunWindow(ctx, hal.WindowConfig{
			Period: cfg.Core.Period,
			Pins:   simPins(cfg),
			Logger: logger,
		}, newApp)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
