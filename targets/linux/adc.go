//go:build linux

package main

import (
	"periph.io/x/conn/v3/analog"

	"pinlink/core"
)

// PeriphADCDriver implements core.ADCDriver over periph.io analog pins.
// Most single-board computers have no on-die ADC, so the channel map is
// injected by the caller; pins absent from the map fail configuration
// and the allocator leaves them out.
type PeriphADCDriver struct {
	pins map[uint8]analog.PinADC
}

func NewPeriphADCDriver(pins map[uint8]analog.PinADC) *PeriphADCDriver {
	if pins == nil {
		pins = make(map[uint8]analog.PinADC)
	}
	return &PeriphADCDriver{pins: pins}
}

func (d *PeriphADCDriver) ConfigureChannel(pin uint8) error {
	if _, ok := d.pins[pin]; !ok {
		return core.ErrNoSuchPin
	}
	return nil
}

func (d *PeriphADCDriver) ReadRaw(pin uint8) (uint16, error) {
	p, ok := d.pins[pin]
	if !ok {
		return 0, core.ErrNoSuchPin
	}
	sample, err := p.Read()
	if err != nil {
		return 0, err
	}
	return uint16(sample.Raw), nil
}
