package irq

import (
	"runtime"
	"sync"
	"testing"
)

func TestMailboxTryRecvEmpty(t *testing.T) {
	var mb Mailbox

	_, ok := mb.TryRecv()
	if ok {
		t.Fatalf("TryRecv() ok = true, want false")
	}
}

func TestMailboxTrySendFull(t *testing.T) {
	var mb Mailbox

	for i := 0; i < mailboxSlots; i++ {
		if ok := mb.TrySend(Event{At: uint32(i)}); !ok {
			t.Fatalf("TrySend() ok = false at slot %d, want true", i)
		}
	}
	if ok := mb.TrySend(Event{}); ok {
		t.Fatalf("TrySend() ok = true when full, want false")
	}
	if got := mb.Dropped(); got != 1 {
		t.Fatalf("Dropped() = %d, want 1", got)
	}

	for i := 0; i < mailboxSlots; i++ {
		ev, ok := mb.TryRecv()
		if !ok {
			t.Fatalf("TryRecv() ok = false at slot %d, want true", i)
		}
		if ev.At != uint32(i) {
			t.Fatalf("TryRecv() At = %d, want %d (FIFO)", ev.At, i)
		}
	}
	if _, ok := mb.TryRecv(); ok {
		t.Fatalf("TryRecv() ok = true after drain, want false")
	}
}

func TestMailboxWrapsAround(t *testing.T) {
	var mb Mailbox
	for i := 0; i < 5*mailboxSlots; i++ {
		if !mb.TrySend(Event{Source: uint8(i), At: uint32(i)}) {
			t.Fatalf("TrySend() failed at %d", i)
		}
		ev, ok := mb.TryRecv()
		if !ok || ev.At != uint32(i) || ev.Source != uint8(i) {
			t.Fatalf("TryRecv() = %+v, %v at %d", ev, ok, i)
		}
	}
}

func TestMailboxConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(4)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 10_000
		total     = producers * perProd
	)

	var mb Mailbox

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				ev := Event{Source: uint8(producerID), At: uint32(producerID*perProd + i)}
				for !mb.TrySend(ev) {
					runtime.Gosched()
				}
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	for i := 0; i < total; i++ {
		var ev Event
		for {
			var ok bool
			if ev, ok = mb.TryRecv(); ok {
				break
			}
			runtime.Gosched()
		}
		id := int(ev.At)
		if id >= total {
			t.Fatalf("TryRecv() id = %d, want < %d", id, total)
		}
		if seen[id] {
			t.Fatalf("TryRecv() duplicate id %d", id)
		}
		seen[id] = true
		if id <= last[ev.Source] {
			t.Fatalf("producer %d out of order: %d after %d", ev.Source, id, last[ev.Source])
		}
		last[ev.Source] = id
	}

	wg.Wait()
}

func TestMailboxZeroValueRoundTrip(t *testing.T) {
	var mb Mailbox

	want := Event{Source: 1, At: 42, State: 0b101}
	if ok := mb.TrySend(want); !ok {
		t.Fatalf("TrySend() ok = false on empty mailbox")
	}
	got, ok := mb.TryRecv()
	if !ok || got != want {
		t.Fatalf("TryRecv() = %+v, %v, want %+v, true", got, ok, want)
	}
	if got := mb.Dropped(); got != 0 {
		t.Fatalf("Dropped() = %d, want 0", got)
	}
}
