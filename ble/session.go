// BLE pin service session
// One wireless connection at a time: advertise, accept, run command
// handling and telemetry push concurrently over the same connection,
// and fall back to advertising when either sub-flow ends.
package ble

import (
	"context"
	"time"

	"pinlink/core"
	"pinlink/protocol"
)

// Pin service attribute UUIDs.
const (
	ServiceUUID  = "a9c81b72-0f7a-4c59-b0a8-425e3bcf0a0e"
	PinDataUUID  = "13c0ef83-09bd-4767-97cb-ee46224ae6db"
	ADCDataUUID  = "01037594-1bbb-4490-aa4d-f6d333b42e16"
	PinInputUUID = "c79b2ca7-f39d-4060-8168-816fa26737b7"
)

// DefaultTelemetryPeriod is the notification cadence.
const DefaultTelemetryPeriod = 2 * time.Second

// SessionConfig describes one pin service instance.
type SessionConfig struct {
	// DeviceName is broadcast while advertising.
	DeviceName string

	// OutputPins are reported in the digital telemetry snapshot.
	OutputPins []uint8

	// AnalogPins are reported in the analog telemetry snapshot.
	// Leaving it empty disables the analog characteristic.
	AnalogPins []uint8

	// Writable lists the pins command batches may set.
	Writable []uint8

	// Period overrides DefaultTelemetryPeriod when positive.
	Period time.Duration
}

// Session is the connection lifecycle state machine. It cycles
// advertising -> connected -> advertising forever; only an advertising
// failure or context cancellation stops it.
type Session struct {
	cfg       SessionConfig
	store     *core.Store
	transport Transport
	writable  map[uint8]bool
	period    time.Duration
}

// NewSession creates a session over the given store and transport.
func NewSession(cfg SessionConfig, store *core.Store, transport Transport) *Session {
	writable := make(map[uint8]bool, len(cfg.Writable))
	for _, pin := range cfg.Writable {
		writable[pin] = true
	}
	period := cfg.Period
	if period <= 0 {
		period = DefaultTelemetryPeriod
	}
	return &Session{
		cfg:       cfg,
		store:     store,
		transport: transport,
		writable:  writable,
		period:    period,
	}
}

// Run cycles the state machine until ctx is cancelled. An advertising
// error is unrecoverable and returned to the caller.
func (s *Session) Run(ctx context.Context) error {
	for {
		conn, err := s.transport.Advertise(ctx, s.cfg.DeviceName)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		core.DebugPrintln("ble: connection established")
		s.serve(ctx, conn)
		core.DebugPrintln("ble: connection ended, advertising again")
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// serve races the two connection sub-flows. Whichever finishes first
// ends the connected state; the other is cancelled and reaped. Both
// sub-flows only touch the shared store and the connection handle.
func (s *Session) serve(ctx context.Context, conn Conn) {
	connCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{}, 2)

	go func() {
		s.handleEvents(connCtx, conn)
		done <- struct{}{}
	}()
	go func() {
		s.pushTelemetry(connCtx, conn)
		done <- struct{}{}
	}()

	<-done
	cancel()
	conn.Close()
	<-done
}

// handleEvents consumes connection events until disconnect. Writes to
// the command characteristic apply a pin batch; reads are served from
// the cached characteristic value by the transport, so they only need
// acknowledging here. Every event is acked exactly once.
func (s *Session) handleEvents(ctx context.Context, conn Conn) {
	for {
		ev, err := conn.Next(ctx)
		if err != nil {
			return
		}
		if ev.Kind == EventWrite && ev.Char == CharPinInput {
			s.applyWrites(ev.Data)
		}
		ev.Ack()
	}
}

// applyWrites decodes a command batch and stores the entries whose pin
// is on the allow-list. A malformed payload is dropped whole with a
// diagnostic; it never mutates state or ends the connection.
func (s *Session) applyWrites(data []byte) {
	req, err := protocol.DecodePinRequest(data)
	if err != nil {
		core.DebugPrintln("ble: dropping pin command: " + err.Error())
		return
	}
	for _, w := range req.PinWrites {
		if !s.writable[w.PinNum] {
			continue
		}
		s.store.Write(w.PinNum, uint32(w.State))
	}
}

// pushTelemetry notifies the central on a fixed period and samples link
// quality as a liveness check. Notify failures are tolerated; losing
// the link quality signal ends the sub-flow and the connected state.
func (s *Session) pushTelemetry(ctx context.Context, conn Conn) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		pairs := make([]protocol.PinValue, 0, len(s.cfg.OutputPins))
		for _, pin := range s.cfg.OutputPins {
			pairs = append(pairs, protocol.PinValue{
				PinNum: pin,
				Value:  uint8(s.store.Read(pin)),
			})
		}
		if buf, err := protocol.EncodePinSnapshot(pairs); err == nil {
			_ = conn.Notify(CharPinData, buf[:])
		}

		if len(s.cfg.AnalogPins) > 0 {
			samples := make([]protocol.AnalogValue, 0, len(s.cfg.AnalogPins))
			for _, pin := range s.cfg.AnalogPins {
				samples = append(samples, protocol.AnalogValue{
					PinNum: pin,
					Raw:    uint16(s.store.Read(pin)),
				})
			}
			if buf, err := protocol.EncodeADCSnapshot(samples); err == nil {
				_ = conn.Notify(CharADCData, buf[:])
			}
		}

		if _, err := conn.SignalStrength(); err != nil {
			core.DebugPrintln("ble: lost link quality signal")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
