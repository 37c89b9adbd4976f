package core

import (
	"errors"
	"sync"
)

var errMock = errors.New("mock failure")

// MockGPIODriver is a test implementation of GPIODriver backed by maps.
// All methods are safe to call while polling tasks are running.
type MockGPIODriver struct {
	mu      sync.Mutex
	outputs map[uint8]bool // configured output pins and their level
	inputs  map[uint8]bool // configured input pins and their level
	badPins map[uint8]bool // pins that refuse configuration
}

func NewMockGPIODriver() *MockGPIODriver {
	return &MockGPIODriver{
		outputs: make(map[uint8]bool),
		inputs:  make(map[uint8]bool),
		badPins: make(map[uint8]bool),
	}
}

// FailPin makes every configure call for pin return an error.
func (m *MockGPIODriver) FailPin(pin uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badPins[pin] = true
}

// SetLevel sets the electrical level seen by GetPin.
func (m *MockGPIODriver) SetLevel(pin uint8, high bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs[pin] = high
}

// Level returns the level last driven on an output pin.
func (m *MockGPIODriver) Level(pin uint8) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outputs[pin]
}

func (m *MockGPIODriver) ConfigureOutput(pin uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.badPins[pin] {
		return errMock
	}
	m.outputs[pin] = false
	return nil
}

func (m *MockGPIODriver) ConfigureInput(pin uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.badPins[pin] {
		return errMock
	}
	if _, ok := m.inputs[pin]; !ok {
		m.inputs[pin] = false
	}
	return nil
}

func (m *MockGPIODriver) SetPin(pin uint8, high bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.outputs[pin]; !ok {
		return ErrNoSuchPin
	}
	m.outputs[pin] = high
	return nil
}

func (m *MockGPIODriver) GetPin(pin uint8) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	high, ok := m.inputs[pin]
	if !ok {
		return false, ErrNoSuchPin
	}
	return high, nil
}

// MockPWMDriver is a test implementation of PWMDriver.
type MockPWMDriver struct {
	mu      sync.Mutex
	max     uint32
	duties  map[uint8]uint32
	badPins map[uint8]bool
}

func NewMockPWMDriver(max uint32) *MockPWMDriver {
	return &MockPWMDriver{
		max:     max,
		duties:  make(map[uint8]uint32),
		badPins: make(map[uint8]bool),
	}
}

func (m *MockPWMDriver) FailPin(pin uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badPins[pin] = true
}

// Duty returns the raw duty last programmed on a pin.
func (m *MockPWMDriver) Duty(pin uint8) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duties[pin]
}

func (m *MockPWMDriver) ConfigurePWM(pin uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.badPins[pin] {
		return errMock
	}
	m.duties[pin] = 0
	return nil
}

func (m *MockPWMDriver) SetDuty(pin uint8, value uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.duties[pin]; !ok {
		return ErrNoSuchPin
	}
	if value > m.max {
		return errMock
	}
	m.duties[pin] = value
	return nil
}

func (m *MockPWMDriver) MaxDuty() uint32 {
	return m.max
}

// MockADCDriver is a test implementation of ADCDriver.
type MockADCDriver struct {
	mu      sync.Mutex
	samples map[uint8]uint16
	failing map[uint8]bool // conversion errors, not configuration errors
	badPins map[uint8]bool
}

func NewMockADCDriver() *MockADCDriver {
	return &MockADCDriver{
		samples: make(map[uint8]uint16),
		failing: make(map[uint8]bool),
		badPins: make(map[uint8]bool),
	}
}

func (m *MockADCDriver) FailPin(pin uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badPins[pin] = true
}

// SetSample sets the value the next conversions return.
func (m *MockADCDriver) SetSample(pin uint8, value uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples[pin] = value
}

// FailConversion makes ReadRaw return an error for the pin.
func (m *MockADCDriver) FailConversion(pin uint8, fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing[pin] = fail
}

func (m *MockADCDriver) ConfigureChannel(pin uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.badPins[pin] {
		return errMock
	}
	if _, ok := m.samples[pin]; !ok {
		m.samples[pin] = 0
	}
	return nil
}

func (m *MockADCDriver) ReadRaw(pin uint8) (uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing[pin] {
		return 0, errMock
	}
	value, ok := m.samples[pin]
	if !ok {
		return 0, ErrNoSuchPin
	}
	return value, nil
}
