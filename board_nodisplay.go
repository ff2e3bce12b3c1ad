//go:build tinygo && nodisplay

package main

import "github.com/tuffrabit/tinygo-syslog-rp2040/pkg/panel"

// Headless build: the log is still kept and readable over serial.
//
//	tinygo build -tags=nodisplay -target=pico -o firmware.uf2 .
const (
	panelWidth  = 128
	panelHeight = 64
)

func newPanel() (panel.Panel, error) {
	return panel.Discard, nil
}
