package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRecord(t *testing.T) {
	line := AppendRecord(nil, Record{X: 4095, Y: 0, DX: 3694, DY: 3696, SX: 120, SY: 56, LEDs: true, Border: 2})
	assert.Equal(t, "T x=4095 y=0 dx=3694 dy=3696 sx=120 sy=56 leds=1 green=0 border=2", string(line))
}

func TestAppendEvent(t *testing.T) {
	line := AppendEvent([]byte("> "), Event{Input: 'B', At: 1234, LEDs: true, Green: true, Border: 1})
	assert.Equal(t, "> E in=B at=1234 leds=1 green=1 border=1", string(line))
}

func TestParseRecord(t *testing.T) {
	r, err := ParseRecord("T x=2048 y=2048 dx=0 dy=0 sx=60 sy=28 leds=0 green=1 border=1\r\n")
	require.NoError(t, err)
	assert.Equal(t, Record{X: 2048, Y: 2048, SX: 60, SY: 28, Green: true, Border: 1}, r)

	want := Record{X: 1, Y: 2, DX: 3, DY: 4, SX: -5, SY: 6, LEDs: true, Green: true}
	got, err := ParseRecord(string(AppendRecord(nil, want)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseRecordErrors(t *testing.T) {
	_, err := ParseRecord("E in=A at=1 leds=1 green=0 border=0")
	assert.ErrorIs(t, err, ErrNotRecord)

	_, err = ParseRecord("boot: joyglow dev")
	assert.ErrorIs(t, err, ErrNotRecord)

	_, err = ParseRecord("T x=1 y=2")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ParseRecord("T x=70000 y=0 dx=0 dy=0 sx=0 sy=0 leds=1 green=0 border=0")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ParseRecord("T x y=0")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseEvent(t *testing.T) {
	e, err := ParseEvent("E in=A at=4294967295 leds=0 green=0 border=2")
	require.NoError(t, err)
	assert.Equal(t, Event{Input: 'A', At: 4294967295, Border: 2}, e)

	_, err = ParseEvent("E in=C at=1 leds=0 green=0 border=0")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ParseEvent("T x=1")
	assert.ErrorIs(t, err, ErrNotRecord)
}
