package hal

import (
	"errors"
	"image/color"
	"sync"
)

// MonoFramebuffer is a 1-bit pixel buffer in SSD1306 page order: byte
// x + (y/8)*width holds column x of page y/8, least significant bit on top.
//
// Drawing goes to a back buffer owned by the render loop. Display copies it to
// the front buffer, which presenters read through Snapshot, and calls the
// flush hook (a panel write on real hardware).
type MonoFramebuffer struct {
	width  int16
	height int16
	back   []byte

	mu      sync.Mutex
	front   []byte
	flushes uint64
	flush   func(page []byte) error
}

// NewMonoFramebuffer returns a framebuffer; height must be a multiple of 8.
func NewMonoFramebuffer(width, height int16) *MonoFramebuffer {
	n := int(width) * int(height) / 8
	return &MonoFramebuffer{
		width:  width,
		height: height,
		back:   make([]byte, n),
		front:  make([]byte, n),
	}
}

// OnFlush installs a hook called with the front buffer on every Display.
func (f *MonoFramebuffer) OnFlush(fn func(page []byte) error) {
	f.mu.Lock()
	f.flush = fn
	f.mu.Unlock()
}

func (f *MonoFramebuffer) Size() (x, y int16) { return f.width, f.height }

func (f *MonoFramebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := int(x) + int(y/8)*int(f.width)
	bit := byte(1) << uint(y%8)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		f.back[i] |= bit
	} else {
		f.back[i] &^= bit
	}
}

// Pixel reports whether a back buffer pixel is lit.
func (f *MonoFramebuffer) Pixel(x, y int16) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	return f.back[int(x)+int(y/8)*int(f.width)]&(1<<uint(y%8)) != 0
}

func (f *MonoFramebuffer) ClearBuffer() {
	clear(f.back)
}

func (f *MonoFramebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.back)
	f.flushes++
	if f.flush != nil {
		return f.flush(f.front)
	}
	return nil
}

// Snapshot copies the last flushed frame into dst and returns the flush count.
func (f *MonoFramebuffer) Snapshot(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
	return f.flushes
}

// BufferLen is the size in bytes of one frame.
func (f *MonoFramebuffer) BufferLen() int { return len(f.back) }

var errShortFrame = errors.New("mono: short frame")

// PagePixel reads pixel (x, y) from a page-ordered frame of the given width.
func PagePixel(frame []byte, width, x, y int) bool {
	i := x + (y/8)*width
	if i < 0 || i >= len(frame) {
		return false
	}
	return frame[i]&(1<<uint(y%8)) != 0
}

// ExpandRGBA writes a page-ordered frame into RGBA pixels (4 bytes each),
// using on/off as the lit/unlit colors.
func ExpandRGBA(dst, frame []byte, width, height int, on, off color.RGBA) error {
	if len(dst) < width*height*4 || len(frame) < width*height/8 {
		return errShortFrame
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := off
			if PagePixel(frame, width, x, y) {
				c = on
			}
			j := (y*width + x) * 4
			dst[j+0] = c.R
			dst[j+1] = c.G
			dst[j+2] = c.B
			dst[j+3] = c.A
		}
	}
	return nil
}
