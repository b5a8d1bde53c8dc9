package joystick

import "sync/atomic"

// BorderStyle selects the frame drawn around the display.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderFull
	BorderInset

	borderStyles = 3
)

// Next returns the style that follows b in the None, Full, Inset cycle.
func (b BorderStyle) Next() BorderStyle {
	return (b + 1) % borderStyles
}

func (b BorderStyle) String() string {
	switch b {
	case BorderNone:
		return "none"
	case BorderFull:
		return "full"
	case BorderInset:
		return "inset"
	default:
		return "invalid"
	}
}

// Input names the two debounced buttons.
type Input uint8

const (
	// InputA is the push button that enables and disables the PWM LEDs.
	InputA Input = iota
	// InputB is the joystick's own push switch. It toggles the green LED and
	// advances the border style.
	InputB
)

func (in Input) String() string {
	if in == InputA {
		return "A"
	}
	return "B"
}

// Mode is the user-controlled state toggled by the buttons.
type Mode struct {
	LEDsEnabled bool
	GreenOn     bool
	Border      BorderStyle
}

// InitialMode is the state after boot.
var InitialMode = Mode{LEDsEnabled: true}

const (
	bitLEDsOff  = 1 << 0 // inverted so the zero word is the boot state
	bitGreenOn  = 1 << 1
	borderShift = 2
	borderMask  = 0x3 << borderShift
)

func (m Mode) pack() uint32 {
	var w uint32
	if !m.LEDsEnabled {
		w |= bitLEDsOff
	}
	if m.GreenOn {
		w |= bitGreenOn
	}
	w |= (uint32(m.Border) << borderShift) & borderMask
	return w
}

func unpackMode(w uint32) Mode {
	return Mode{
		LEDsEnabled: w&bitLEDsOff == 0,
		GreenOn:     w&bitGreenOn != 0,
		Border:      BorderStyle((w & borderMask) >> borderShift),
	}
}

// ModeState holds a Mode in a single atomic word, so a reader always sees a
// complete update. The zero value is InitialMode.
type ModeState struct {
	word atomic.Uint32
}

func (s *ModeState) Load() Mode {
	return unpackMode(s.word.Load())
}

// Update applies fn until it lands without a concurrent writer in between and
// returns the state it produced.
func (s *ModeState) Update(fn func(Mode) Mode) Mode {
	for {
		old := s.word.Load()
		next := fn(unpackMode(old))
		if s.word.CompareAndSwap(old, next.pack()) {
			return next
		}
	}
}
