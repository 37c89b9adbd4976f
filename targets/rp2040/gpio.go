//go:build rp2040

package main

import (
	"machine"

	"pinlink/core"
)

// RP2040GPIODriver implements core.GPIODriver on the RP2040's SIO pins.
type RP2040GPIODriver struct {
	outputs map[uint8]bool
	inputs  map[uint8]bool
}

func NewRP2040GPIODriver() *RP2040GPIODriver {
	return &RP2040GPIODriver{
		outputs: make(map[uint8]bool),
		inputs:  make(map[uint8]bool),
	}
}

func (d *RP2040GPIODriver) ConfigureOutput(pin uint8) error {
	if !validPin(pin) {
		return core.ErrNoSuchPin
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	d.outputs[pin] = true
	return nil
}

func (d *RP2040GPIODriver) ConfigureInput(pin uint8) error {
	if !validPin(pin) {
		return core.ErrNoSuchPin
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	d.inputs[pin] = true
	return nil
}

func (d *RP2040GPIODriver) SetPin(pin uint8, high bool) error {
	if !d.outputs[pin] {
		return core.ErrNoSuchPin
	}
	machine.Pin(pin).Set(high)
	return nil
}

func (d *RP2040GPIODriver) GetPin(pin uint8) (bool, error) {
	if !d.inputs[pin] && !d.outputs[pin] {
		return false, core.ErrNoSuchPin
	}
	return machine.Pin(pin).Get(), nil
}

func validPin(pin uint8) bool {
	return pin <= 22 || (pin >= 26 && pin <= 28)
}
