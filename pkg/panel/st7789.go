//go:build tinygo && !ssd1306

package panel

import (
	"machine"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"

	"tinygo.org/x/drivers/st7789"
)

// ST7789Pins wires the LCD to the board.
type ST7789Pins struct {
	SCK, SDO          machine.Pin
	Reset, DC, CS, BL machine.Pin
}

// ST7789 drives a 16-bit color LCD over SPI. Frames are sent whole.
type ST7789 struct {
	device *st7789.Device
}

// NewST7789 configures the SPI bus and the controller.
func NewST7789(spi *machine.SPI, pins ST7789Pins, width, height int16) (*ST7789, error) {
	if err := spi.Configure(machine.SPIConfig{
		Frequency: 62500000,
		SCK:       pins.SCK,
		SDO:       pins.SDO,
		Mode:      0,
	}); err != nil {
		return nil, err
	}

	dev := st7789.New(spi, pins.Reset, pins.DC, pins.CS, pins.BL)
	dev.Configure(st7789.Config{
		Width:    width,
		Height:   height,
		Rotation: st7789.NO_ROTATION,
	})

	return &ST7789{device: &dev}, nil
}

// Flush writes the whole frame in one transfer.
func (p *ST7789) Flush(fb *framebuffer.Framebuffer) error {
	w, h := fb.PhysicalSize()
	return p.device.DrawRGBBitmap(0, 0, fb.Pix(), int16(w), int16(h))
}
