package ui

import "github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"

// Palette holds the large-mode colors. Every logical pixel is drawn as a
// face color plus a shadow color, chosen by whether the pixel is on.
type Palette struct {
	Background framebuffer.Color
	On         framebuffer.Color
	OnShadow   framebuffer.Color
	Off        framebuffer.Color
	OffShadow  framebuffer.Color
}

// LargeConfig positions the enlarged grid on the framebuffer.
type LargeConfig struct {
	Width   int // logical pixels
	Height  int // logical pixels
	OffsetX int // physical pixels
	OffsetY int // physical pixels
	Palette Palette
}

// LargeDefaults is an LCD-segment look: a 50x23 grid of 3x3 blocks.
var LargeDefaults = LargeConfig{
	Width:   50,
	Height:  23,
	OffsetX: 5,
	OffsetY: 5,
	Palette: Palette{
		Background: 0xCE00,
		On:         0x328B,
		OnShadow:   0x4C6E,
		Off:        0x7E2F,
		OffShadow:  0x7E70,
	},
}

// largeScale is the physical size of one logical pixel block.
const largeScale = 3

func (c LargeConfig) withDefaults() LargeConfig {
	if c.Width <= 0 || c.Height <= 0 {
		return LargeDefaults
	}
	if c.Palette == (Palette{}) {
		c.Palette = LargeDefaults.Palette
	}
	return c
}

// setLarge draws one logical pixel as a 2x2 face with a one pixel shadow
// along its right and bottom edges:
//
//	F F S
//	F F S
//	S S S
func (u *UI) setLarge(x, y int, on bool) {
	if x < 0 || y < 0 || x >= u.large.Width || y >= u.large.Height {
		return
	}
	face, shadow := u.large.Palette.Off, u.large.Palette.OffShadow
	if on {
		face, shadow = u.large.Palette.On, u.large.Palette.OnShadow
	}
	px := u.large.OffsetX + x*largeScale
	py := u.large.OffsetY + y*largeScale

	u.fb.Set(px, py, face)
	u.fb.Set(px+1, py, face)
	u.fb.Set(px, py+1, face)
	u.fb.Set(px+1, py+1, face)

	u.fb.Set(px+2, py, shadow)
	u.fb.Set(px+2, py+1, shadow)
	u.fb.Set(px+2, py+2, shadow)
	u.fb.Set(px+1, py+2, shadow)
	u.fb.Set(px, py+2, shadow)
}

// DrawBitmap draws a 1bpp image over the whole logical area. Rows are
// (width+7)/8 bytes, most significant bit first. A short image leaves the
// remaining rows untouched.
func (u *UI) DrawBitmap(img []byte) {
	w, h := u.Size()
	stride := (w + 7) / 8
	i := 0
	for y := 0; y < h; y++ {
		for bx := 0; bx < stride; bx++ {
			if i >= len(img) {
				return
			}
			p := img[i]
			i++
			for z := 0; z < 8; z++ {
				u.plot(bx*8+z, y, (p<<uint(z))&0x80 != 0, u.fg, u.bg)
			}
		}
	}
}

// LargeBackdrop is the boot image shown in large mode before the first
// log render: three rows of segment-style status labels.
var LargeBackdrop = []byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xCE, 0x60,
	0x00, 0x00, 0x06, 0x66, 0xC0, 0xA8, 0x90, 0x00, 0x00, 0x05, 0x55, 0x40, 0xCE, 0x90, 0x00, 0x00,
	0x06, 0x75, 0x40, 0xA8, 0xA0, 0x00, 0x00, 0x05, 0x45, 0x40, 0xAE, 0x50, 0x00, 0x00, 0x05, 0x44,
	0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xEE, 0xE0, 0x00, 0x00, 0x06, 0x66, 0xC0, 0x88, 0x40, 0x00,
	0x00, 0x05, 0x55, 0x40, 0xEE, 0x40, 0x00, 0x00, 0x06, 0x75, 0x40, 0x28, 0x40, 0x00, 0x00, 0x05,
	0x45, 0x40, 0xEE, 0x40, 0x00, 0x00, 0x05, 0x44, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46, 0xE0,
	0x00, 0x00, 0x06, 0x66, 0xC0, 0xA8, 0x40, 0x00, 0x00, 0x05, 0x55, 0x40, 0xE8, 0x40, 0x00, 0x00,
	0x06, 0x75, 0x40, 0xA8, 0x40, 0x00, 0x00, 0x05, 0x45, 0x40, 0xA6, 0x40, 0x00, 0x00, 0x05, 0x44,
	0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}
