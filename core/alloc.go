// Pin role allocation
// Partitions the configured pin numbers into roles with a fixed
// precedence order and builds the task items the polling tasks own.
package core

import "time"

// Task items, one flavor per pin role. Items live inside the Bank for
// the process lifetime; tasks iterate them in allocation order.
type (
	// OutputItem is one digital output pin driven from its state slot.
	OutputItem struct {
		PinNum uint8
	}

	// PWMItem is one PWM output pin driven from its duty slot.
	PWMItem struct {
		PinNum uint8
	}

	// InputItem is one digital input pin sampled into its state slot.
	InputItem struct {
		PinNum uint8
	}

	// AnalogItem is one analog input pin sampled into its state slot.
	AnalogItem struct {
		PinNum uint8
	}
)

// Bank owns every allocated peripheral handle for the process lifetime
// and runs the four polling tasks over them.
type Bank struct {
	gpio GPIODriver
	pwm  PWMDriver
	adc  ADCDriver

	outputs []OutputItem
	inputs  []InputItem
	pwms    []PWMItem
	analogs []AnalogItem

	period time.Duration
}

// Allocate claims each configured pin for exactly one role and returns
// the task bank plus a store sized to the active pin set.
//
// Roles are processed in fixed precedence order: digital outputs,
// digital inputs, PWM outputs, analog inputs. A pin number claimed by an
// earlier role is dropped from every later role's list. A pin the
// hardware cannot serve in the requested role is skipped with a
// diagnostic only; allocation never fails.
func Allocate(cfg *Config, universe []uint8, gpio GPIODriver, pwm PWMDriver, adc ADCDriver) (*Bank, *Store) {
	avail := make(map[uint8]bool, len(universe))
	for _, pin := range universe {
		avail[pin] = true
	}

	b := &Bank{
		gpio:   gpio,
		pwm:    pwm,
		adc:    adc,
		period: DefaultPollPeriod,
	}

	for _, pin := range cfg.OutputPins {
		if !avail[pin] {
			dropPin("output", pin)
			continue
		}
		if err := gpio.ConfigureOutput(pin); err != nil {
			dropPin("output", pin)
			continue
		}
		avail[pin] = false
		b.outputs = append(b.outputs, OutputItem{PinNum: pin})
	}

	for _, pin := range cfg.InputPins {
		if !avail[pin] {
			dropPin("input", pin)
			continue
		}
		if err := gpio.ConfigureInput(pin); err != nil {
			dropPin("input", pin)
			continue
		}
		avail[pin] = false
		b.inputs = append(b.inputs, InputItem{PinNum: pin})
	}

	for _, pin := range cfg.PWMPins {
		if !avail[pin] {
			dropPin("pwm", pin)
			continue
		}
		if err := pwm.ConfigurePWM(pin); err != nil {
			dropPin("pwm", pin)
			continue
		}
		avail[pin] = false
		b.pwms = append(b.pwms, PWMItem{PinNum: pin})
	}

	for _, pin := range cfg.AnalogPins {
		if !avail[pin] {
			dropPin("adc", pin)
			continue
		}
		if err := adc.ConfigureChannel(pin); err != nil {
			dropPin("adc", pin)
			continue
		}
		avail[pin] = false
		b.analogs = append(b.analogs, AnalogItem{PinNum: pin})
	}

	return b, NewStore(b.Pins())
}

func dropPin(role string, pin uint8) {
	DebugPrintln("alloc: dropping " + role + " pin " + itoa(int(pin)))
}

// SetPollPeriod overrides the polling cadence. Call before Start.
func (b *Bank) SetPollPeriod(period time.Duration) {
	if period > 0 {
		b.period = period
	}
}

// OutputPins returns the active digital output pins in allocation order.
func (b *Bank) OutputPins() []uint8 {
	return itemPins(len(b.outputs), func(i int) uint8 { return b.outputs[i].PinNum })
}

// InputPins returns the active digital input pins in allocation order.
func (b *Bank) InputPins() []uint8 {
	return itemPins(len(b.inputs), func(i int) uint8 { return b.inputs[i].PinNum })
}

// PWMPins returns the active PWM output pins in allocation order.
func (b *Bank) PWMPins() []uint8 {
	return itemPins(len(b.pwms), func(i int) uint8 { return b.pwms[i].PinNum })
}

// AnalogPins returns the active analog input pins in allocation order.
func (b *Bank) AnalogPins() []uint8 {
	return itemPins(len(b.analogs), func(i int) uint8 { return b.analogs[i].PinNum })
}

// Writable returns the pins remote commands may set: digital outputs
// followed by PWM outputs. Both transports share this allow-list.
func (b *Bank) Writable() []uint8 {
	out := b.OutputPins()
	return append(out, b.PWMPins()...)
}

// Pins returns every allocated pin in role precedence order.
func (b *Bank) Pins() []uint8 {
	out := b.OutputPins()
	out = append(out, b.InputPins()...)
	out = append(out, b.PWMPins()...)
	return append(out, b.AnalogPins()...)
}

func itemPins(n int, at func(int) uint8) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}
