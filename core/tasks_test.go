package core

import (
	"context"
	"testing"
	"time"
)

const testPeriod = 2 * time.Millisecond

// waitFor polls cond until it holds or the deadline expires.
func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(testPeriod)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestBank(cfg *Config) (*Bank, *Store, *MockGPIODriver, *MockPWMDriver, *MockADCDriver) {
	gpio := NewMockGPIODriver()
	pwm := NewMockPWMDriver(4095)
	adc := NewMockADCDriver()
	bank, store := Allocate(cfg, testUniverse, gpio, pwm, adc)
	bank.SetPollPeriod(testPeriod)
	return bank, store, gpio, pwm, adc
}

func TestOutputTaskRoundTrip(t *testing.T) {
	bank, store, gpio, _, _ := newTestBank(&Config{OutputPins: []uint8{14}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bank.RunOutputTask(ctx, store)

	store.Write(14, PinOn)
	waitFor(t, func() bool { return gpio.Level(14) }, "pin 14 high")

	// Only the exact value PinOn drives the pin high.
	store.Write(14, 99)
	waitFor(t, func() bool { return !gpio.Level(14) }, "pin 14 low")
}

func TestPWMTaskDutyMapping(t *testing.T) {
	bank, store, _, pwm, _ := newTestBank(&Config{PWMPins: []uint8{33}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bank.RunPWMTask(ctx, store)

	for _, d := range []uint32{0, 1, 33, 50, 99, 100} {
		want := d * pwm.MaxDuty() / 100
		store.Write(33, d)
		waitFor(t, func() bool { return pwm.Duty(33) == want }, "duty update")
	}
}

func TestInputTaskSamplesLevels(t *testing.T) {
	bank, store, gpio, _, _ := newTestBank(&Config{InputPins: []uint8{25}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bank.RunInputTask(ctx, store)

	gpio.SetLevel(25, true)
	waitFor(t, func() bool { return store.Read(25) == PinOn }, "slot high")

	gpio.SetLevel(25, false)
	waitFor(t, func() bool { return store.Read(25) == 0 }, "slot low")
}

func TestAnalogTaskSoftFailure(t *testing.T) {
	bank, store, _, _, adc := newTestBank(&Config{AnalogPins: []uint8{32}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bank.RunAnalogTask(ctx, store)

	adc.SetSample(32, 2048)
	waitFor(t, func() bool { return store.Read(32) == 2048 }, "first sample")

	// A failed conversion leaves the previous value untouched.
	adc.FailConversion(32, true)
	adc.SetSample(32, 500)
	time.Sleep(10 * testPeriod)
	if got := store.Read(32); got != 2048 {
		t.Errorf("failed conversion overwrote slot: got %d", got)
	}

	// Sampling resumes next period once the converter recovers.
	adc.FailConversion(32, false)
	waitFor(t, func() bool { return store.Read(32) == 500 }, "recovery sample")
}

func TestStartSpawnsAllTasks(t *testing.T) {
	bank, store, gpio, pwm, adc := newTestBank(&Config{
		OutputPins: []uint8{14},
		InputPins:  []uint8{25},
		PWMPins:    []uint8{33},
		AnalogPins: []uint8{32},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bank.Start(ctx, store)

	gpio.SetLevel(25, true)
	adc.SetSample(32, 1234)
	store.Write(14, PinOn)
	store.Write(33, 50)

	waitFor(t, func() bool { return gpio.Level(14) }, "output task")
	waitFor(t, func() bool { return store.Read(25) == PinOn }, "input task")
	waitFor(t, func() bool { return pwm.Duty(33) == 50*pwm.MaxDuty()/100 }, "pwm task")
	waitFor(t, func() bool { return store.Read(32) == 1234 }, "analog task")
}
