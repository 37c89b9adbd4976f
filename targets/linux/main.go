//go:build linux

// Linux host daemon: the same pin service running on a single-board
// computer, with periph.io drivers instead of the machine package.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"periph.io/x/host/v3"
	"tinygo.org/x/bluetooth"

	"pinlink/ble"
	"pinlink/core"
	"pinlink/web"
)

// pinUniverse lists the GPIO numbers on a 40-pin SBC header.
func pinUniverse() []uint8 {
	pins := make([]uint8, 28)
	for i := range pins {
		pins[i] = uint8(i)
	}
	return pins
}

func main() {
	configPath := flag.String("config", "config.json", "path to the pin configuration file")
	httpAddr := flag.String("http", ":8080", "network bridge listen address")
	flag.Parse()

	core.SetDebugWriter(func(msg string) {
		os.Stderr.WriteString(msg + "\n")
	})

	if _, err := host.Init(); err != nil {
		fatal("host init: " + err.Error())
	}

	data, err := os.ReadFile(*configPath)
	if err != nil {
		fatal("config: " + err.Error())
	}
	cfg, err := core.LoadConfig(data)
	if err != nil {
		fatal("config: " + err.Error())
	}

	bank, store := core.Allocate(
		cfg,
		pinUniverse(),
		NewPeriphGPIODriver(),
		NewPeriphPWMDriver(),
		NewPeriphADCDriver(nil),
	)

	ctx := context.Background()
	bank.Start(ctx, store)

	bridge := web.NewBridge(store, bank.Writable())
	go func() {
		if err := http.ListenAndServe(*httpAddr, bridge.Handler()); err != nil {
			core.DebugPrintln("web: serve: " + err.Error())
		}
	}()

	transport := ble.NewBluetoothTransport(bluetooth.DefaultAdapter, len(bank.AnalogPins()) > 0)
	session := ble.NewSession(ble.SessionConfig{
		DeviceName: cfg.DeviceName,
		OutputPins: bank.OutputPins(),
		AnalogPins: bank.AnalogPins(),
		Writable:   bank.Writable(),
	}, store, transport)

	// Only an unrecoverable transport fault gets here.
	fatal("ble session: " + session.Run(ctx).Error())
}

func fatal(msg string) {
	os.Stderr.WriteString(msg + "\n")
	os.Exit(1)
}
