//go:build tinygo && ssd1306 && !nodisplay

package main

import (
	"machine"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/panel"
)

// 128x64 OLED on I2C0.
//
//	tinygo build -tags=ssd1306 -target=pico -o firmware.uf2 .
const (
	panelWidth  = 128
	panelHeight = 64
)

func newPanel() (panel.Panel, error) {
	return panel.NewSSD1306(machine.I2C0, machine.GPIO1, machine.GPIO0, panelWidth, panelHeight)
}
