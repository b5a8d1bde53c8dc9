//go:build !tinygo && rpi

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
)

// On the Raspberry Pi the same BCM numbers carry the LEDs and buttons;
// GPIO12 and GPIO13 are hardware PWM outputs.
func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h, err := hal.Open(hal.NewSlogLogger(log))
	if err != nil {
		log.Error("joyglow: board init failed", "error", err)
		os.Exit(1)
	}

	drv, err := app.New(h, app.DefaultConfig())
	if err != nil {
		app.Fault(h, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := drv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("joyglow stopped", "error", err)
		os.Exit(1)
	}
}
