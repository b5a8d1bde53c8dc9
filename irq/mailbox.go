// Package irq carries events out of interrupt handlers to the main loop.
package irq

import "sync/atomic"

// Event is one accepted input edge.
type Event struct {
	Source uint8  // input that fired
	At     uint32 // board milliseconds at acceptance
	State  uint32 // packed state word after the edge was applied
}

const mailboxSlots = 16

type slot struct {
	// seq is stored relative to the slot index so the zero value is ready:
	// the effective sequence is seq + index.
	seq atomic.Uint32
	ev  Event
}

// Mailbox is a fixed-size multi-producer, single-consumer queue.
// It is safe to send from interrupt handlers: no allocations, no locks, and a
// full mailbox drops the event instead of waiting.
type Mailbox struct {
	head    atomic.Uint32
	tail    atomic.Uint32
	dropped atomic.Uint32
	slots   [mailboxSlots]slot
}

// TrySend attempts to enqueue an event, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(ev Event) bool {
	for {
		pos := mb.head.Load()
		idx := pos % mailboxSlots
		s := &mb.slots[idx]
		diff := int32(s.seq.Load() + idx - pos)
		switch {
		case diff == 0:
			if mb.head.CompareAndSwap(pos, pos+1) {
				s.ev = ev
				s.seq.Store(pos + 1 - idx)
				return true
			}
		case diff < 0:
			mb.dropped.Add(1)
			return false
		}
		// Another producer claimed pos; retry with the new head.
	}
}

// TryRecv attempts to dequeue one event, returning false if empty.
// Only one goroutine may receive.
func (mb *Mailbox) TryRecv() (Event, bool) {
	pos := mb.tail.Load()
	idx := pos % mailboxSlots
	s := &mb.slots[idx]
	if int32(s.seq.Load()+idx-(pos+1)) < 0 {
		return Event{}, false
	}
	ev := s.ev
	s.seq.Store(pos + mailboxSlots - idx)
	mb.tail.Store(pos + 1)
	return ev, true
}

// Dropped returns how many events were lost to a full mailbox.
func (mb *Mailbox) Dropped() uint32 {
	return mb.dropped.Load()
}
