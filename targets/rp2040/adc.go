//go:build rp2040

package main

import (
	"machine"

	"pinlink/core"
)

// RP2040ADCDriver implements core.ADCDriver on ADC0-ADC2 (GP26-GP28).
// ADC3 shares GP29 with the radio on the Pico W and is not offered.
type RP2040ADCDriver struct {
	channels map[uint8]machine.ADC
	inited   bool
}

func NewRP2040ADCDriver() *RP2040ADCDriver {
	return &RP2040ADCDriver{channels: make(map[uint8]machine.ADC)}
}

func (d *RP2040ADCDriver) ConfigureChannel(pin uint8) error {
	if pin < 26 || pin > 28 {
		return core.ErrNoSuchPin
	}
	if !d.inited {
		machine.InitADC()
		d.inited = true
	}
	adc := machine.ADC{Pin: machine.Pin(pin)}
	adc.Configure(machine.ADCConfig{})
	d.channels[pin] = adc
	return nil
}

// ReadRaw returns the 16-bit left-adjusted sample the hardware
// produces; the converter itself is 12-bit.
func (d *RP2040ADCDriver) ReadRaw(pin uint8) (uint16, error) {
	adc, ok := d.channels[pin]
	if !ok {
		return 0, core.ErrNoSuchPin
	}
	return adc.Get(), nil
}
