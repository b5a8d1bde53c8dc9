package hal

import (
	"testing"
	"time"
)

func TestSignalPinLevel(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	pin := newSignalPinWithClock("SIG", 10*time.Second, 2*time.Second, clock)
	if pin == nil {
		t.Fatal("expected pin")
	}

	if !pin.Level() {
		t.Fatal("expected high at t=0")
	}

	now = now.Add(3 * time.Second)
	if pin.Level() {
		t.Fatal("expected low at t=3s")
	}

	now = now.Add(8 * time.Second) // t=11s => phase 1s, high again
	if !pin.Level() {
		t.Fatal("expected high at t=11s")
	}
}

func TestSignalPinNeedsName(t *testing.T) {
	if p := newSignalPin("  ", time.Second, time.Millisecond); p != nil {
		t.Fatal("expected nil pin for blank name")
	}
}

func TestVirtualPinFallingEdge(t *testing.T) {
	gpio, pins := newBoardGPIO(8)
	if gpio.PinCount() != 8 {
		t.Fatalf("PinCount = %d", gpio.PinCount())
	}
	p := pins[5]
	if err := p.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if level, _ := p.Read(); !level {
		t.Fatal("pull-up should read high")
	}

	var fired []int
	if err := p.SetInterrupt(GPIOEdgeFalling, func(id int) { fired = append(fired, id) }); err != nil {
		t.Fatalf("SetInterrupt: %v", err)
	}

	p.Press()
	p.Press() // no edge
	p.Release()
	p.Press()

	if len(fired) != 2 || fired[0] != 5 || fired[1] != 5 {
		t.Fatalf("fired = %v, want two edges on pin 5", fired)
	}
}

func TestVirtualPinRisingEdge(t *testing.T) {
	_, pins := newBoardGPIO(2)
	p := pins[1]
	if err := p.Configure(GPIOModeInput, GPIOPullDown); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	n := 0
	if err := p.SetInterrupt(GPIOEdgeRising, func(int) { n++ }); err != nil {
		t.Fatalf("SetInterrupt: %v", err)
	}
	p.Drive(true)
	p.Drive(false)
	if n != 1 {
		t.Fatalf("rising edges = %d, want 1", n)
	}
}

func TestVirtualPinModes(t *testing.T) {
	gpio, pins := newBoardGPIO(2)
	p := pins[0]

	if err := p.Write(true); err == nil {
		t.Fatal("write on input should fail")
	}
	if err := p.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := p.Write(true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if level, _ := p.Read(); !level {
		t.Fatal("expected high after write")
	}
	if err := p.SetInterrupt(GPIOEdgeFalling, func(int) {}); err == nil {
		t.Fatal("interrupt on output should fail")
	}
	p.Drive(false) // ignored on outputs
	if level, _ := p.Read(); !level {
		t.Fatal("drive changed an output")
	}

	if gpio.Pin(-1) != nil || gpio.Pin(2) != nil {
		t.Fatal("out of range pins should be nil")
	}
}
