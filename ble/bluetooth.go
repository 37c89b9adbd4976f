// tinygo.org/x/bluetooth transport
// Bridges the callback-driven bluetooth API into the Transport/Conn
// model: the GATT service is registered once, advertising runs
// continuously, and connect/write callbacks feed the active connection.
package ble

import (
	"context"
	"sync"

	"tinygo.org/x/bluetooth"

	"pinlink/core"
	"pinlink/protocol"
)

// BluetoothTransport implements Transport over a bluetooth.Adapter.
// It supports at most one connected central at a time.
type BluetoothTransport struct {
	adapter *bluetooth.Adapter
	withADC bool

	initOnce sync.Once
	initErr  error

	pinData  bluetooth.Characteristic
	adcData  bluetooth.Characteristic
	pinInput bluetooth.Characteristic

	mu      sync.Mutex
	current *bluetoothConn
}

// NewBluetoothTransport wraps an adapter, typically
// bluetooth.DefaultAdapter. withADC registers the analog telemetry
// characteristic alongside the digital ones.
func NewBluetoothTransport(adapter *bluetooth.Adapter, withADC bool) *BluetoothTransport {
	return &BluetoothTransport{adapter: adapter, withADC: withADC}
}

// Advertise ensures the stack is up and blocks until a central
// connects. The controller keeps advertising between connections, so
// re-entering the advertising state is simply waiting for the next
// central.
func (t *BluetoothTransport) Advertise(ctx context.Context, name string) (Conn, error) {
	t.initOnce.Do(func() { t.initErr = t.setup(name) })
	if t.initErr != nil {
		return nil, t.initErr
	}

	c := &bluetoothConn{
		transport: t,
		events:    make(chan *Event, 8),
		connected: make(chan struct{}),
		done:      make(chan struct{}),
	}
	t.mu.Lock()
	t.current = c
	t.mu.Unlock()

	select {
	case <-ctx.Done():
		t.mu.Lock()
		t.current = nil
		t.mu.Unlock()
		return nil, ctx.Err()
	case <-c.connected:
		return c, nil
	}
}

// setup enables the adapter, registers the pin service and starts
// advertising. Runs once for the process lifetime.
func (t *BluetoothTransport) setup(name string) error {
	if err := t.adapter.Enable(); err != nil {
		return err
	}

	serviceUUID, err := bluetooth.ParseUUID(ServiceUUID)
	if err != nil {
		return err
	}
	pinDataUUID, err := bluetooth.ParseUUID(PinDataUUID)
	if err != nil {
		return err
	}
	adcDataUUID, err := bluetooth.ParseUUID(ADCDataUUID)
	if err != nil {
		return err
	}
	pinInputUUID, err := bluetooth.ParseUUID(PinInputUUID)
	if err != nil {
		return err
	}

	chars := []bluetooth.CharacteristicConfig{
		{
			Handle: &t.pinData,
			UUID:   pinDataUUID,
			Value:  make([]byte, protocol.SnapshotSize),
			Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicNotifyPermission,
		},
	}
	if t.withADC {
		chars = append(chars, bluetooth.CharacteristicConfig{
			Handle: &t.adcData,
			UUID:   adcDataUUID,
			Value:  make([]byte, protocol.SnapshotSize),
			Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicNotifyPermission,
		})
	}
	chars = append(chars, bluetooth.CharacteristicConfig{
		Handle: &t.pinInput,
		UUID:   pinInputUUID,
		Value:  make([]byte, protocol.SnapshotSize),
		Flags: bluetooth.CharacteristicReadPermission |
			bluetooth.CharacteristicWritePermission,
		WriteEvent: t.onPinInputWrite,
	})

	if err := t.adapter.AddService(&bluetooth.Service{
		UUID:            serviceUUID,
		Characteristics: chars,
	}); err != nil {
		return err
	}

	t.adapter.SetConnectHandler(t.onConnect)

	adv := t.adapter.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    name,
		ServiceUUIDs: []bluetooth.UUID{serviceUUID},
	}); err != nil {
		return err
	}
	return adv.Start()
}

// onConnect runs on every link-layer state change.
func (t *BluetoothTransport) onConnect(device bluetooth.Device, connected bool) {
	t.mu.Lock()
	c := t.current
	t.mu.Unlock()
	if c == nil {
		return
	}
	if connected {
		c.connectOnce.Do(func() { close(c.connected) })
		return
	}
	c.closeOnce.Do(func() { close(c.done) })
}

// onPinInputWrite turns a characteristic write into a command event.
// The ATT layer has already acknowledged the write, so the event needs
// no transport-level ack.
func (t *BluetoothTransport) onPinInputWrite(client bluetooth.Connection, offset int, value []byte) {
	t.mu.Lock()
	c := t.current
	t.mu.Unlock()
	if c == nil {
		return
	}
	data := make([]byte, len(value))
	copy(data, value)
	select {
	case c.events <- NewEvent(EventWrite, CharPinInput, data, nil):
	default:
		core.DebugPrintln("ble: command event queue full, dropping write")
	}
}

type bluetoothConn struct {
	transport *BluetoothTransport
	events    chan *Event
	connected chan struct{}
	done      chan struct{}

	connectOnce sync.Once
	closeOnce   sync.Once
}

func (c *bluetoothConn) Next(ctx context.Context) (*Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrDisconnected
	case ev := <-c.events:
		return ev, nil
	}
}

func (c *bluetoothConn) Notify(char Characteristic, payload []byte) error {
	select {
	case <-c.done:
		return ErrDisconnected
	default:
	}
	var err error
	switch char {
	case CharPinData:
		_, err = c.transport.pinData.Write(payload)
	case CharADCData:
		_, err = c.transport.adcData.Write(payload)
	case CharPinInput:
		_, err = c.transport.pinInput.Write(payload)
	}
	return err
}

// SignalStrength reports link liveness. The peripheral role does not
// expose the central's RSSI through this stack, so a live link reads
// as zero and a dropped link returns ErrDisconnected, which is what
// the telemetry sub-flow keys on.
func (c *bluetoothConn) SignalStrength() (int, error) {
	select {
	case <-c.done:
		return 0, ErrDisconnected
	default:
		return 0, nil
	}
}

func (c *bluetoothConn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	c.transport.mu.Lock()
	if c.transport.current == c {
		c.transport.current = nil
	}
	c.transport.mu.Unlock()
	return nil
}
