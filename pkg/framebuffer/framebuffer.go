// Package framebuffer provides the RGB565 pixel grid the log panel paints
// into before it is flushed to the physical display.
//
// Pixels are stored row-major in physical panel order. A rotated
// framebuffer swaps the logical axes: logical (x, y) lands on physical row
// x, column width-1-y, which is a 90 degree clockwise turn of the panel.
package framebuffer

import "image/color"

// Color is a 16-bit RGB565 pixel value.
type Color uint16

// Common colors.
const (
	Black Color = 0x0000
	White Color = 0xFFFF
)

// RGB packs 8-bit channels into RGB565.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// FromRGBA converts a color.RGBA, ignoring alpha.
func FromRGBA(c color.RGBA) Color {
	return RGB(c.R, c.G, c.B)
}

// RGBA expands c back to 8 bits per channel. The low bits are filled from
// the high bits so White maps to 0xFF.
func (c Color) RGBA() color.RGBA {
	r := uint8(c>>11) & 0x1F
	g := uint8(c>>5) & 0x3F
	b := uint8(c) & 0x1F
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xFF,
	}
}

// Framebuffer is a fixed-size pixel grid.
type Framebuffer struct {
	width   int // physical
	height  int // physical
	rotated bool
	pix     []uint16
}

// New allocates a width x height physical framebuffer.
func New(width, height int, rotated bool) *Framebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Framebuffer{
		width:   width,
		height:  height,
		rotated: rotated,
		pix:     make([]uint16, width*height),
	}
}

// Size returns the logical drawing size.
func (f *Framebuffer) Size() (width, height int) {
	if f.rotated {
		return f.height, f.width
	}
	return f.width, f.height
}

// PhysicalSize returns the panel size in its native orientation.
func (f *Framebuffer) PhysicalSize() (width, height int) {
	return f.width, f.height
}

// Rotated reports whether logical addressing is rotated.
func (f *Framebuffer) Rotated() bool {
	return f.rotated
}

// index maps logical coordinates to an offset in pix.
func (f *Framebuffer) index(x, y int) (int, bool) {
	w, h := f.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, false
	}
	if f.rotated {
		return x*f.width + (f.width - 1 - y), true
	}
	return y*f.width + x, true
}

// Set writes one logical pixel. Writes outside the grid are dropped.
func (f *Framebuffer) Set(x, y int, c Color) {
	if i, ok := f.index(x, y); ok {
		f.pix[i] = uint16(c)
	}
}

// At reads one logical pixel. Reads outside the grid return Black.
func (f *Framebuffer) At(x, y int) Color {
	if i, ok := f.index(x, y); ok {
		return Color(f.pix[i])
	}
	return Black
}

// Clear fills the whole buffer with c.
func (f *Framebuffer) Clear(c Color) {
	for i := range f.pix {
		f.pix[i] = uint16(c)
	}
}

// Pix exposes the physical row-major pixels for panel transfers.
// The slice aliases the framebuffer.
func (f *Framebuffer) Pix() []uint16 {
	return f.pix
}
