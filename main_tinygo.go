//go:build tinygo

package main

import (
	"joyglow/app"
	"joyglow/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
