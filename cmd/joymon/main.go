// Command joymon shows a board's display and LEDs in the terminal by reading
// the telemetry lines it prints on its USB serial console.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"joyglow/internal/buildinfo"
	"joyglow/internal/termview"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"
	"go.bug.st/serial"
)

func main() {
	app := cli.NewApp()
	app.Name = "joymon"
	app.Usage = "mirror a joyglow board's OLED from its serial telemetry"
	app.Version = buildinfo.Long()
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "port",
			Usage: "Serial port of the board (e.g. /dev/ttyACM0)",
		},
		cli.IntFlag{
			Name:  "baud",
			Usage: "Baud rate",
			Value: 115200,
		},
		cli.BoolFlag{
			Name:  "list",
			Usage: "List serial ports and exit",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("joymon failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("list") {
		ports, err := serial.GetPortsList()
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	}

	name := c.String("port")
	if name == "" {
		cli.ShowAppHelp(c)
		return errors.New("no serial port given")
	}
	port, err := serial.Open(name, &serial.Mode{BaudRate: c.Int("baud")})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer port.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	lines := make(chan string, 64)
	readErr := make(chan error, 1)
	go func() { readErr <- readLines(port, lines) }()

	keys := make(chan *tcell.EventKey, 4)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				keys <- ev
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	m := newMonitor()
	view := termview.New(screen, oledWidth, oledHeight)
	redraw := time.NewTicker(50 * time.Millisecond)
	defer redraw.Stop()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			m.apply(line)
		case ev := <-keys:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}
		case <-redraw.C:
			m.draw(screen, view)
		}
	}
}
