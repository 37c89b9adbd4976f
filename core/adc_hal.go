package core

// ADCDriver is the abstract analog input interface that core code uses.
type ADCDriver interface {
	// ConfigureChannel prepares a pin for analog conversion.
	// Returns an error if the pin is not wired to a converter channel.
	ConfigureChannel(pin uint8) error

	// ReadRaw performs a blocking one-shot conversion on the pin and
	// returns the device-native sample magnitude.
	ReadRaw(pin uint8) (uint16, error)
}
