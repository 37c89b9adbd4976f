//go:build rp2040

package main

import (
	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/netlink/probe"
)

// Wi-Fi credentials are baked in at build time:
//
//	tinygo flash -target pico-w \
//	  -ldflags="-X main.ssid=... -X main.passphrase=..." ./targets/rp2040
var (
	ssid       string
	passphrase string
)

// connectWiFi brings the on-board radio up and joins the configured
// network. The returned netdev backs the standard net package.
func connectWiFi() error {
	link, _ := probe.Probe()
	return link.NetConnect(&netlink.ConnectParams{
		Ssid:       ssid,
		Passphrase: passphrase,
	})
}
