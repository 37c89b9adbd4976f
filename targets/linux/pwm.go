//go:build linux

package main

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"pinlink/core"
)

// pwmFrequency matches the LEDC frequency of the original controller.
const pwmFrequency = 50 * physic.Hertz

var errDutyRange = errors.New("duty out of range")

// PeriphPWMDriver implements core.PWMDriver over periph.io pins.
// Hardware PWM is used where the host exposes it; otherwise periph
// falls back to toggling, which is adequate at 50 Hz.
type PeriphPWMDriver struct {
	pins map[uint8]gpio.PinIO
}

func NewPeriphPWMDriver() *PeriphPWMDriver {
	return &PeriphPWMDriver{pins: make(map[uint8]gpio.PinIO)}
}

func (d *PeriphPWMDriver) MaxDuty() uint32 {
	return uint32(gpio.DutyMax)
}

func (d *PeriphPWMDriver) ConfigurePWM(pin uint8) error {
	p := byName(pin)
	if p == nil {
		return core.ErrNoSuchPin
	}
	if err := p.PWM(0, pwmFrequency); err != nil {
		return err
	}
	d.pins[pin] = p
	return nil
}

func (d *PeriphPWMDriver) SetDuty(pin uint8, value uint32) error {
	p, ok := d.pins[pin]
	if !ok {
		return core.ErrNoSuchPin
	}
	if gpio.Duty(value) > gpio.DutyMax {
		return errDutyRange
	}
	return p.PWM(gpio.Duty(value), pwmFrequency)
}
