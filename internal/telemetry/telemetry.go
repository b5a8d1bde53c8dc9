// Package telemetry encodes and parses the diagnostic lines the firmware
// writes to its console.
//
//	T x=2048 y=2048 dx=0 dy=0 sx=60 sy=28 leds=1 green=0 border=0
//	E in=B at=1234 leds=1 green=1 border=1
package telemetry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotRecord = errors.New("telemetry: not a record line")
	ErrMalformed = errors.New("telemetry: malformed line")
)

// Record is one periodic snapshot of the control loop.
type Record struct {
	X, Y   uint16 // axis samples
	DX, DY uint16 // red and blue duties
	SX, SY int16  // indicator position
	LEDs   bool
	Green  bool
	Border uint8
}

// Event is one accepted button edge.
type Event struct {
	Input  byte // 'A' or 'B'
	At     uint32
	LEDs   bool
	Green  bool
	Border uint8
}

func appendField(dst []byte, key string, v int64) []byte {
	dst = append(dst, ' ')
	dst = append(dst, key...)
	dst = append(dst, '=')
	return strconv.AppendInt(dst, v, 10)
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// AppendRecord appends the record line to dst without a line terminator.
func AppendRecord(dst []byte, r Record) []byte {
	dst = append(dst, 'T')
	dst = appendField(dst, "x", int64(r.X))
	dst = appendField(dst, "y", int64(r.Y))
	dst = appendField(dst, "dx", int64(r.DX))
	dst = appendField(dst, "dy", int64(r.DY))
	dst = appendField(dst, "sx", int64(r.SX))
	dst = appendField(dst, "sy", int64(r.SY))
	dst = appendField(dst, "leds", b2i(r.LEDs))
	dst = appendField(dst, "green", b2i(r.Green))
	dst = appendField(dst, "border", int64(r.Border))
	return dst
}

// AppendEvent appends the event line to dst without a line terminator.
func AppendEvent(dst []byte, e Event) []byte {
	dst = append(dst, 'E', ' ', 'i', 'n', '=', e.Input)
	dst = appendField(dst, "at", int64(e.At))
	dst = appendField(dst, "leds", b2i(e.LEDs))
	dst = appendField(dst, "green", b2i(e.Green))
	dst = appendField(dst, "border", int64(e.Border))
	return dst
}

// fields splits "K k=v k=v ..." into its kind and a key lookup.
func fields(line string, kind byte) (map[string]string, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 2 || line[0] != kind || line[1] != ' ' {
		return nil, ErrNotRecord
	}
	kv := make(map[string]string)
	for _, f := range strings.Fields(line[2:]) {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: field %q", ErrMalformed, f)
		}
		kv[k] = v
	}
	return kv, nil
}

type parser struct {
	kv  map[string]string
	err error
}

func (p *parser) num(key string, bits int, signed bool) int64 {
	if p.err != nil {
		return 0
	}
	s, ok := p.kv[key]
	if !ok {
		p.err = fmt.Errorf("%w: missing %s", ErrMalformed, key)
		return 0
	}
	if signed {
		v, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			p.err = fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
		}
		return v
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		p.err = fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return int64(v)
}

func (p *parser) flag(key string) bool {
	v := p.num(key, 1, false)
	return v == 1
}

// ParseRecord parses a line produced by AppendRecord.
func ParseRecord(line string) (Record, error) {
	kv, err := fields(line, 'T')
	if err != nil {
		return Record{}, err
	}
	p := parser{kv: kv}
	r := Record{
		X:      uint16(p.num("x", 16, false)),
		Y:      uint16(p.num("y", 16, false)),
		DX:     uint16(p.num("dx", 16, false)),
		DY:     uint16(p.num("dy", 16, false)),
		SX:     int16(p.num("sx", 16, true)),
		SY:     int16(p.num("sy", 16, true)),
		LEDs:   p.flag("leds"),
		Green:  p.flag("green"),
		Border: uint8(p.num("border", 8, false)),
	}
	if p.err != nil {
		return Record{}, p.err
	}
	return r, nil
}

// ParseEvent parses a line produced by AppendEvent.
func ParseEvent(line string) (Event, error) {
	kv, err := fields(line, 'E')
	if err != nil {
		return Event{}, err
	}
	in := kv["in"]
	if in != "A" && in != "B" {
		return Event{}, fmt.Errorf("%w: input %q", ErrMalformed, in)
	}
	p := parser{kv: kv}
	e := Event{
		Input:  in[0],
		At:     uint32(p.num("at", 32, false)),
		LEDs:   p.flag("leds"),
		Green:  p.flag("green"),
		Border: uint8(p.num("border", 8, false)),
	}
	if p.err != nil {
		return Event{}, p.err
	}
	return e, nil
}
