//go:build tinygo && !ssd1306 && !nodisplay

package main

import (
	"machine"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/panel"
)

// 1.14" 240x135 IPS module on SPI1.
const (
	panelWidth  = 240
	panelHeight = 135
)

func newPanel() (panel.Panel, error) {
	return panel.NewST7789(machine.SPI1, panel.ST7789Pins{
		SCK:   machine.GPIO10,
		SDO:   machine.GPIO11,
		CS:    machine.GPIO9,
		DC:    machine.GPIO8,
		Reset: machine.GPIO12,
		BL:    machine.GPIO13,
	}, panelWidth, panelHeight)
}
