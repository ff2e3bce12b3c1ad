//go:build tinygo && ssd1306

package panel

import (
	"image/color"
	"machine"
	"time"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"

	"tinygo.org/x/drivers/ssd1306"
)

const ssd1306Address = 0x3C

var (
	black = color.RGBA{0, 0, 0, 0}
	white = color.RGBA{255, 255, 255, 255}
)

// SSD1306 drives a monochrome OLED over I2C. A pixel is lit when it
// differs from Background.
type SSD1306 struct {
	device     *ssd1306.Device
	Background framebuffer.Color
}

// NewSSD1306 configures the I2C bus and the controller and blanks the
// display.
func NewSSD1306(i2c *machine.I2C, scl, sda machine.Pin, width, height int16) (*SSD1306, error) {
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400000, // 400kHz fast mode
		SCL:       scl,
		SDA:       sda,
	}); err != nil {
		return nil, err
	}

	// Small delay for bus stabilization
	time.Sleep(10 * time.Millisecond)

	dev := ssd1306.NewI2C(i2c)
	dev.Configure(ssd1306.Config{
		Address: ssd1306Address,
		Width:   width,
		Height:  height,
	})
	dev.ClearDisplay()

	return &SSD1306{device: dev, Background: framebuffer.Black}, nil
}

// Flush converts fb to 1bpp and pushes it to the controller.
func (p *SSD1306) Flush(fb *framebuffer.Framebuffer) error {
	w, h := fb.PhysicalSize()
	pix := fb.Pix()
	for y := 0; y < h; y++ {
		row := pix[y*w : (y+1)*w]
		for x, c := range row {
			if framebuffer.Color(c) != p.Background {
				p.device.SetPixel(int16(x), int16(y), white)
			} else {
				p.device.SetPixel(int16(x), int16(y), black)
			}
		}
	}
	return p.device.Display()
}
