//go:build !tinygo && rpi

package hal

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	oledWidth  = 128
	oledHeight = 64
)

// oledPanel pushes MonoFramebuffer pages to an SSD1306. The framebuffer and
// image1bit.VerticalLSB share the page layout, so a flush is a copy.
type oledPanel struct {
	dev *ssd1306.Dev
	img *image1bit.VerticalLSB
}

// newSSD1306 powers up the panel at the driver's default address (0x3C) and
// returns a framebuffer whose Display draws the whole frame.
func newSSD1306(bus i2c.Bus) (*MonoFramebuffer, error) {
	opts := ssd1306.DefaultOpts
	opts.W, opts.H = oledWidth, oledHeight
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: init: %w", err)
	}
	p := &oledPanel{
		dev: dev,
		img: image1bit.NewVerticalLSB(dev.Bounds()),
	}
	fb := NewMonoFramebuffer(oledWidth, oledHeight)
	fb.OnFlush(p.flush)
	return fb, nil
}

func (p *oledPanel) flush(frame []byte) error {
	if len(frame) < len(p.img.Pix) {
		return errShortFrame
	}
	copy(p.img.Pix, frame)
	if err := p.dev.Draw(p.img.Bounds(), p.img, image.Point{}); err != nil {
		return fmt.Errorf("ssd1306: draw: %w", err)
	}
	return nil
}
