// BLE transport abstraction
// The session state machine runs against these interfaces. The real
// implementation in bluetooth.go bridges tinygo.org/x/bluetooth; tests
// substitute an in-memory transport.
package ble

import (
	"context"
	"errors"
)

// ErrDisconnected is returned by Conn methods once the central is gone.
var ErrDisconnected = errors.New("ble: central disconnected")

// Characteristic identifies one attribute of the pin service.
type Characteristic uint8

const (
	// CharPinData carries the digital telemetry snapshot (read, notify).
	CharPinData Characteristic = iota
	// CharADCData carries the analog telemetry snapshot (read, notify).
	// Only registered when analog pins are configured.
	CharADCData
	// CharPinInput accepts pin command batches (read, write).
	CharPinInput
)

// EventKind discriminates connection events.
type EventKind uint8

const (
	EventRead EventKind = iota
	EventWrite
)

// Event is one attribute read or write from the connected central.
// Ack must be called exactly once for every event, on all code paths.
type Event struct {
	Kind EventKind
	Char Characteristic
	Data []byte // payload for writes, nil for reads

	ack func()
}

// NewEvent builds an event; ack may be nil when the transport
// acknowledges at a lower layer.
func NewEvent(kind EventKind, char Characteristic, data []byte, ack func()) *Event {
	return &Event{Kind: kind, Char: char, Data: data, ack: ack}
}

// Ack acknowledges the event to the peer. Repeat calls are no-ops.
func (e *Event) Ack() {
	if e.ack != nil {
		e.ack()
		e.ack = nil
	}
}

// Conn is one established connection to a central.
type Conn interface {
	// Next blocks for the next attribute event. It returns an error when
	// the central disconnects or the link fails.
	Next(ctx context.Context) (*Event, error)

	// Notify pushes a payload as a notification on the characteristic
	// and refreshes the cached value served to attribute reads.
	Notify(char Characteristic, payload []byte) error

	// SignalStrength samples the link quality as a liveness check.
	SignalStrength() (int, error)

	// Close tears the connection down. Safe to call more than once.
	Close() error
}

// Transport accepts central connections.
type Transport interface {
	// Advertise broadcasts the device name and blocks until a central
	// connects. An error here is unrecoverable for the whole session
	// machine.
	Advertise(ctx context.Context, name string) (Conn, error)
}
