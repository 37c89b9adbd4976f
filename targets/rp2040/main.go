//go:build rp2040

// Pico W firmware entry point: wires the machine-level drivers, starts
// the polling tasks, the HTTP bridge and the BLE session.
package main

import (
	"context"
	_ "embed"
	"net"
	"net/http"
	"time"

	"tinygo.org/x/bluetooth"

	"pinlink/ble"
	"pinlink/core"
	"pinlink/web"
)

//go:embed config.json
var configJSON []byte

// pinUniverse lists the GPIO numbers wired out on the Pico W.
// GP23-GP25 and GP29 belong to the on-board regulator and radio.
func pinUniverse() []uint8 {
	pins := make([]uint8, 0, 26)
	for pin := uint8(0); pin <= 22; pin++ {
		pins = append(pins, pin)
	}
	return append(pins, 26, 27, 28)
}

func main() {
	core.SetDebugWriter(func(msg string) { println(msg) })

	cfg, err := core.LoadConfig(configJSON)
	if err != nil {
		fatal("config: " + err.Error())
	}

	bank, store := core.Allocate(
		cfg,
		pinUniverse(),
		NewRP2040GPIODriver(),
		NewRP2040PWMDriver(),
		NewRP2040ADCDriver(),
	)

	ctx := context.Background()
	bank.Start(ctx, store)

	if err := connectWiFi(); err != nil {
		core.DebugPrintln("wifi: " + err.Error() + ", network bridge disabled")
	} else {
		bridge := web.NewBridge(store, bank.Writable())
		go serveHTTP(bridge)
	}

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

func serveHTTP(bridge *web.Bridge) {
	listener, err := net.Listen("tcp", ":80")
	if err != nil {
		core.DebugPrintln("web: listen: " + err.Error())
		return
	}
	if err := http.Serve(listener, bridge.Handler()); err != nil {
		core.DebugPrintln("web: serve: " + err.Error())
	}
}

func fatal(msg string) {
	for {
		println(msg)
		time.Sleep(5 * time.Second)
	}
}
