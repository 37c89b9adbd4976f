// Peripheral polling tasks
// Four indefinitely looping workers that keep physical pin levels and
// the state store in sync, one per pin role.
package core

import (
	"context"
	"time"
)

// DefaultPollPeriod is the pin synchronization cadence.
const DefaultPollPeriod = 500 * time.Millisecond

// PinOn is the slot value meaning "driven high" for digital pins.
// Any other value is treated as off by the output driver.
const PinOn = 100

// Start spawns the four polling tasks. They run until ctx is cancelled,
// which in production is never; tests cancel to reclaim the goroutines.
func (b *Bank) Start(ctx context.Context, store *Store) {
	go b.RunOutputTask(ctx, store)
	go b.RunPWMTask(ctx, store)
	go b.RunInputTask(ctx, store)
	go b.RunAnalogTask(ctx, store)
}

// RunOutputTask drives each owned output pin from its state slot.
// A slot value of exactly PinOn drives the pin high, anything else low.
func (b *Bank) RunOutputTask(ctx context.Context, store *Store) {
	ticker := time.NewTicker(b.period)
	defer ticker.Stop()
	for {
		for _, item := range b.outputs {
			high := store.Read(item.PinNum) == PinOn
			// A failed set is retried next cycle.
			_ = b.gpio.SetPin(item.PinNum, high)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunPWMTask programs each owned PWM channel from its duty slot.
// The slot holds a duty percentage; the raw duty is d * MaxDuty / 100
// with integer truncation. Programming failures are swallowed and the
// physical duty simply does not update this cycle.
func (b *Bank) RunPWMTask(ctx context.Context, store *Store) {
	ticker := time.NewTicker(b.period)
	defer ticker.Stop()
	for {
		maxDuty := b.pwm.MaxDuty()
		for _, item := range b.pwms {
			d := store.Read(item.PinNum)
			_ = b.pwm.SetDuty(item.PinNum, d*maxDuty/100)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunInputTask samples each owned input pin into its state slot,
// storing PinOn for high and 0 for low.
func (b *Bank) RunInputTask(ctx context.Context, store *Store) {
	ticker := time.NewTicker(b.period)
	defer ticker.Stop()
	for {
		for _, item := range b.inputs {
			high, err := b.gpio.GetPin(item.PinNum)
			if err != nil {
				continue
			}
			if high {
				store.Write(item.PinNum, PinOn)
			} else {
				store.Write(item.PinNum, 0)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunAnalogTask performs a one-shot conversion on each owned analog pin
// and stores the raw sample. A failed conversion leaves the previous
// slot value untouched; the pin is retried next period.
func (b *Bank) RunAnalogTask(ctx context.Context, store *Store) {
	ticker := time.NewTicker(b.period)
	defer ticker.Stop()
	for {
		for _, item := range b.analogs {
			value, err := b.adc.ReadRaw(item.PinNum)
			if err != nil {
				continue
			}
			store.Write(item.PinNum, uint32(value))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
