//go:build !tinygo && !rpi && cgo

package hal

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"joyglow/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Period time.Duration
	Pins   SimPins
	Logger Logger
}

const (
	windowScale = 2
	stripHeight = 48
	hudLines    = 2
)

var (
	oledOn  = color.RGBA{R: 0x9f, G: 0xe8, B: 0xff, A: 0xff}
	oledOff = color.RGBA{R: 0x04, G: 0x08, B: 0x10, A: 0xff}
	hudText = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
)

// RunWindow opens a desktop window showing the OLED and LEDs. Arrow keys
// deflect the stick (Shift for half travel), A is button A and Space presses
// the stick. It blocks until the window closes or ctx ends.
func RunWindow(ctx context.Context, cfg WindowConfig, newApp func(HAL) (StepFunc, error)) error {
	if cfg.Period <= 0 {
		return fmt.Errorf("invalid window period: %v", cfg.Period)
	}
	lines := NewRecentLines(hudLines, cfg.Logger)
	h := NewHost(lines)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	w, ht := h.fb.Size()
	g := &hostGame{
		ctx:   ctx,
		h:     h,
		pins:  cfg.Pins,
		lines: lines,
		step:  step,
		fbW:   int(w),
		fbH:   int(ht),
		frame: make([]byte, h.fb.BufferLen()),
	}
	ebiten.SetWindowTitle("joyglow (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(g.layoutW()*windowScale, g.layoutH()*windowScale)
	ebiten.SetTPS(tpsFor(cfg.Period))
	return ebiten.RunGame(g)
}

func tpsFor(period time.Duration) int {
	tps := int(time.Second / period)
	if tps < 1 {
		return 1
	}
	return tps
}

type hostGame struct {
	ctx   context.Context
	h     *Host
	pins  SimPins
	lines *RecentLines
	step  StepFunc

	fbW, fbH int
	frame []byte
	pix   []byte
	oled  *ebiten.Image

	hudOnce sync.Once
	hud     *rgbaCanvas
	hudImg  *ebiten.Image
}

func (g *hostGame) layoutW() int { return g.fbW * windowScale }
func (g *hostGame) layoutH() int { return g.fbH*windowScale + stripHeight }

func (g *hostGame) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	g.h.setStick(g.pins, stick{
		left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		half:  ebiten.IsKeyPressed(ebiten.KeyShift),
	})
	g.h.setButton(g.pins.ButtonA, ebiten.IsKeyPressed(ebiten.KeyA))
	g.h.setButton(g.pins.ButtonB, ebiten.IsKeyPressed(ebiten.KeySpace))

	if g.step != nil {
		return g.step()
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if g.oled == nil {
		g.oled = ebiten.NewImage(g.fbW, g.fbH)
		g.pix = make([]byte, g.fbW*g.fbH*4)
	}
	g.h.fb.Snapshot(g.frame)
	if err := ExpandRGBA(g.pix, g.frame, g.fbW, g.fbH, oledOn, oledOff); err == nil {
		g.oled.WritePixels(g.pix)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(windowScale, windowScale)
	screen.DrawImage(g.oled, op)

	g.drawStrip(screen)
}

func (g *hostGame) drawStrip(screen *ebiten.Image) {
	top := float32(g.fbH * windowScale)
	lamps := g.h.Lamps(g.pins)

	const r = 8
	cy := top + 12
	vector.DrawFilledCircle(screen, 16, cy, r, lampColor(255, 40, 40, lamps.Red), true)
	vector.DrawFilledCircle(screen, 40, cy, r, lampColor(40, 80, 255, lamps.Blue), true)
	green := 0.0
	if lamps.Green {
		green = 1
	}
	vector.DrawFilledCircle(screen, 64, cy, r, lampColor(40, 220, 60, green), true)

	g.hudOnce.Do(func() {
		g.hud = newRGBACanvas(g.layoutW()-80, stripHeight)
		g.hudImg = ebiten.NewImage(g.layoutW()-80, stripHeight)
	})
	g.hud.clear()
	x, y := g.h.adc.Channel(g.pins.XChannel), g.h.adc.Channel(g.pins.YChannel)
	tinyfont.WriteLine(g.hud, &proggy.TinySZ8pt7b, 0, 10, fmt.Sprintf("x=%4d y=%4d", x, y), hudText)
	for i, line := range g.lines.Lines() {
		tinyfont.WriteLine(g.hud, &proggy.TinySZ8pt7b, 0, int16(22+i*12), clip(line, 40), hudText)
	}
	g.hudImg.WritePixels(g.hud.img.Pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(80, float64(top))
	screen.DrawImage(g.hudImg, op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layoutW(), g.layoutH()
}

// lampColor dims base by level; an unlit lamp stays faintly visible.
func lampColor(r, g, b uint8, level float64) color.RGBA {
	const floor = 0.12
	k := floor + (1-floor)*level
	return color.RGBA{R: uint8(float64(r) * k), G: uint8(float64(g) * k), B: uint8(float64(b) * k), A: 0xff}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// rgbaCanvas lets tinyfont draw into an image.RGBA.
type rgbaCanvas struct {
	img *image.RGBA
}

func newRGBACanvas(w, h int) *rgbaCanvas {
	return &rgbaCanvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (c *rgbaCanvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (c *rgbaCanvas) SetPixel(x, y int16, col color.RGBA) {
	c.img.SetRGBA(int(x), int(y), col)
}

func (c *rgbaCanvas) Display() error { return nil }

func (c *rgbaCanvas) clear() {
	clear(c.img.Pix)
}
