// Shared pin state store
// One 32-bit slot per allocated pin, the only mutable state shared
// between the polling tasks and the protocol bridges.
package core

import "sync/atomic"

// storeSlots covers the full uint8 pin number space.
const storeSlots = 256

// Store holds one 32-bit state slot per allocated pin.
//
// Slots are created once, when the allocator has decided the active pin
// set, and live for the process lifetime. The allocator guarantees that
// each slot has exactly one producer task and one consumer task, so
// plain atomic loads and stores are sufficient; readers may observe a
// value that is stale by up to one poll interval.
type Store struct {
	slots   [storeSlots]atomic.Uint32
	present [storeSlots]bool
	pins    []uint8
}

// NewStore creates a store with a slot for each of the given pins.
// Duplicate pin numbers are collapsed.
func NewStore(pins []uint8) *Store {
	s := &Store{}
	for _, pin := range pins {
		if s.present[pin] {
			continue
		}
		s.present[pin] = true
		s.pins = append(s.pins, pin)
	}
	return s
}

// Read returns the pin's current slot value, or 0 if the pin has no slot.
func (s *Store) Read(pin uint8) uint32 {
	if !s.present[pin] {
		return 0
	}
	return s.slots[pin].Load()
}

// Write stores a value into the pin's slot. Writes to pins without a
// slot are ignored.
func (s *Store) Write(pin uint8, value uint32) {
	if !s.present[pin] {
		return
	}
	s.slots[pin].Store(value)
}

// Has reports whether the pin has a slot.
func (s *Store) Has(pin uint8) bool {
	return s.present[pin]
}

// Pins returns the allocated pin numbers in allocation order.
func (s *Store) Pins() []uint8 {
	out := make([]uint8, len(s.pins))
	copy(out, s.pins)
	return out
}
