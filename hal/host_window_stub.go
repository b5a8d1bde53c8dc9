//go:build !tinygo && !rpi && !cgo

package hal

import (
	"context"
	"errors"
	"time"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Period time.Duration
	Pins   SimPins
	Logger Logger
}

func RunWindow(_ context.Context, _ WindowConfig, _ func(HAL) (StepFunc, error)) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
