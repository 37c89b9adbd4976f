//go:build rp2040

package main

import (
	"errors"
	"machine"

	"pinlink/core"
)

var errDutyRange = errors.New("duty out of range")

// pwmPeriodNS is the PWM period in nanoseconds (50 Hz).
const pwmPeriodNS = 20_000_000

// pwmMaxDuty is the virtual duty range exposed to core: 16-bit,
// scaled onto the slice wrap value when programming hardware.
const pwmMaxDuty = 0xFFFF

// pwmPeripheral abstracts TinyGo's unexported *pwmGroup type.
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

type pwmChannel struct {
	group   pwmPeripheral
	channel uint8
}

// RP2040PWMDriver implements core.PWMDriver on the RP2040's 8 PWM
// slices. All slices run the same fixed period.
type RP2040PWMDriver struct {
	slices   map[uint8]pwmPeripheral
	channels map[uint8]pwmChannel
}

func NewRP2040PWMDriver() *RP2040PWMDriver {
	return &RP2040PWMDriver{
		slices:   make(map[uint8]pwmPeripheral),
		channels: make(map[uint8]pwmChannel),
	}
}

func (d *RP2040PWMDriver) MaxDuty() uint32 {
	return pwmMaxDuty
}

func (d *RP2040PWMDriver) ConfigurePWM(pin uint8) error {
	if !validPin(pin) {
		return core.ErrNoSuchPin
	}

	// GPIO pin N maps to slice (N >> 1) & 7, channel N & 1.
	sliceNum := (pin >> 1) & 0x7
	group, ok := d.slices[sliceNum]
	if !ok {
		group = pwmGroup(sliceNum)
		if err := group.Configure(machine.PWMConfig{Period: pwmPeriodNS}); err != nil {
			return err
		}
		d.slices[sliceNum] = group
	}

	channel, err := group.Channel(machine.Pin(pin))
	if err != nil {
		return err
	}
	group.Set(channel, 0)
	d.channels[pin] = pwmChannel{group: group, channel: channel}
	return nil
}

func (d *RP2040PWMDriver) SetDuty(pin uint8, value uint32) error {
	ch, ok := d.channels[pin]
	if !ok {
		return core.ErrNoSuchPin
	}
	if value > pwmMaxDuty {
		return errDutyRange
	}
	top := ch.group.Top()
	ch.group.Set(ch.channel, uint32(uint64(value)*uint64(top)/pwmMaxDuty))
	return nil
}

func pwmGroup(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
