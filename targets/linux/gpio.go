//go:build linux

package main

import (
	"strconv"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"pinlink/core"
)

// PeriphGPIODriver implements core.GPIODriver over periph.io host pins.
type PeriphGPIODriver struct {
	outputs map[uint8]gpio.PinIO
	inputs  map[uint8]gpio.PinIO
}

func NewPeriphGPIODriver() *PeriphGPIODriver {
	return &PeriphGPIODriver{
		outputs: make(map[uint8]gpio.PinIO),
		inputs:  make(map[uint8]gpio.PinIO),
	}
}

func (d *PeriphGPIODriver) ConfigureOutput(pin uint8) error {
	p := byName(pin)
	if p == nil {
		return core.ErrNoSuchPin
	}
	if err := p.Out(gpio.Low); err != nil {
		return err
	}
	d.outputs[pin] = p
	return nil
}

func (d *PeriphGPIODriver) ConfigureInput(pin uint8) error {
	p := byName(pin)
	if p == nil {
		return core.ErrNoSuchPin
	}
	if err := p.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return err
	}
	d.inputs[pin] = p
	return nil
}

func (d *PeriphGPIODriver) SetPin(pin uint8, high bool) error {
	p, ok := d.outputs[pin]
	if !ok {
		return core.ErrNoSuchPin
	}
	return p.Out(gpio.Level(high))
}

func (d *PeriphGPIODriver) GetPin(pin uint8) (bool, error) {
	p, ok := d.inputs[pin]
	if !ok {
		if p, ok = d.outputs[pin]; !ok {
			return false, core.ErrNoSuchPin
		}
	}
	return p.Read() == gpio.High, nil
}

func byName(pin uint8) gpio.PinIO {
	return gpioreg.ByName("GPIO" + strconv.Itoa(int(pin)))
}
