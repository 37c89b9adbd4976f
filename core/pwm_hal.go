package core

// PWMDriver is the abstract PWM interface that core code uses.
// Platform-specific implementations bind pins to timer channels and
// program raw duty values.
type PWMDriver interface {
	// ConfigurePWM binds a pin to a PWM channel at the service frequency
	// with a duty of zero. Returns an error if the pin has no channel.
	ConfigurePWM(pin uint8) error

	// SetDuty programs the raw duty for a configured pin.
	// value ranges from 0 (fully off) to MaxDuty() (fully on); values
	// beyond MaxDuty() are rejected by the hardware layer.
	SetDuty(pin uint8, value uint32) error

	// MaxDuty returns the maximum raw duty value.
	MaxDuty() uint32
}
