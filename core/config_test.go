package core

import "testing"

func TestLoadConfig(t *testing.T) {
	data := []byte(`{
		"bluetooth_name": "esp32-pins",
		"basic_write_pin_nums": [14, 26],
		"pwm_write_pin_nums": [33],
		"basic_read_pin_nums": [25],
		"adc_read_pin_nums": [32, 35]
	}`)

	cfg, err := LoadConfig(data)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DeviceName != "esp32-pins" {
		t.Errorf("device name: got %q", cfg.DeviceName)
	}
	if len(cfg.OutputPins) != 2 || cfg.OutputPins[0] != 14 {
		t.Errorf("output pins: got %v", cfg.OutputPins)
	}
	if len(cfg.AnalogPins) != 2 || cfg.AnalogPins[1] != 35 {
		t.Errorf("analog pins: got %v", cfg.AnalogPins)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DeviceName != DefaultDeviceName {
		t.Errorf("expected default device name, got %q", cfg.DeviceName)
	}
	if len(cfg.OutputPins) != 0 {
		t.Errorf("expected no output pins, got %v", cfg.OutputPins)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	if _, err := LoadConfig([]byte(`{"bluetooth_name":`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
