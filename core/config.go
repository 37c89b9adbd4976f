package core

import "encoding/json"

// DefaultDeviceName is advertised when the configuration omits one.
const DefaultDeviceName = "pinlink"

// Config describes the pins the service manages and its advertised
// device name. Field names match the JSON configuration file consumed
// once at start-up; pin roles are never re-configured afterward.
type Config struct {
	DeviceName string  `json:"bluetooth_name"`
	OutputPins []uint8 `json:"basic_write_pin_nums"`
	InputPins  []uint8 `json:"basic_read_pin_nums"`
	PWMPins    []uint8 `json:"pwm_write_pin_nums"`
	AnalogPins []uint8 `json:"adc_read_pin_nums"`
}

// LoadConfig parses a JSON configuration blob and applies defaults.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.DeviceName == "" {
		cfg.DeviceName = DefaultDeviceName
	}
	return &cfg, nil
}
