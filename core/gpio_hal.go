package core

import "errors"

// ErrNoSuchPin is returned by drivers for pin numbers the hardware
// cannot serve in the requested role.
var ErrNoSuchPin = errors.New("no such pin")

// GPIODriver is the abstract digital pin interface that core code uses.
// Platform-specific implementations handle actual hardware control.
// Drivers are constructed by target code and passed in explicitly; core
// never holds a process-wide driver.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output, driven low.
	// Returns an error if the pin cannot drive an output.
	ConfigureOutput(pin uint8) error

	// ConfigureInput configures a pin as a digital input.
	ConfigureInput(pin uint8) error

	// SetPin drives an output pin high (true) or low (false).
	SetPin(pin uint8, high bool) error

	// GetPin reads the instantaneous electrical level of a pin.
	GetPin(pin uint8) (bool, error)
}
