// Package panel moves finished framebuffers onto physical displays.
//
// A Panel only has to accept a full frame. Board code picks the adapter:
// ST7789 for 16-bit color LCDs, SSD1306 for monochrome OLEDs, Memory for
// host builds and tests.
package panel

import (
	"image/color"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"

	"tinygo.org/x/drivers"
)

// Panel transfers a framebuffer to display memory.
type Panel interface {
	Flush(fb *framebuffer.Framebuffer) error
}

// Func adapts a function to Panel.
type Func func(fb *framebuffer.Framebuffer) error

// Flush calls f(fb).
func (f Func) Flush(fb *framebuffer.Framebuffer) error {
	return f(fb)
}

// Discard is a Panel that drops every frame, for boards without a display.
var Discard Panel = Func(func(*framebuffer.Framebuffer) error { return nil })

// Screen couples a framebuffer with its panel so tinyfont and other
// drivers.Displayer users can draw into it.
type Screen struct {
	fb    *framebuffer.Framebuffer
	panel Panel
}

var _ drivers.Displayer = (*Screen)(nil)

// NewScreen returns a Displayer over fb that flushes to p.
func NewScreen(fb *framebuffer.Framebuffer, p Panel) *Screen {
	return &Screen{fb: fb, panel: p}
}

// Size returns the logical framebuffer size.
func (s *Screen) Size() (x, y int16) {
	w, h := s.fb.Size()
	return int16(w), int16(h)
}

// SetPixel writes one logical pixel, converting to RGB565.
func (s *Screen) SetPixel(x, y int16, c color.RGBA) {
	s.fb.Set(int(x), int(y), framebuffer.FromRGBA(c))
}

// Display flushes the framebuffer to the panel.
func (s *Screen) Display() error {
	return s.panel.Flush(s.fb)
}
