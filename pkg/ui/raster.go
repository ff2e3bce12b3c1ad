package ui

import (
	"fmt"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/font"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"
)

// PrintfBufferSize bounds the text drawn by Printf.
const PrintfBufferSize = 128

// DrawGlyph draws r with its top-left corner at (x, y). Set bits get fg,
// clear bits get bg; the blank spacing column and row of the cell are left
// untouched. Control characters draw nothing.
func (u *UI) DrawGlyph(x, y int, r rune, fg, bg framebuffer.Color) {
	if !font.Printable(r) {
		return
	}
	bits := font.Glyph(r)
	for yy := 0; yy < font.GlyphHeight; yy++ {
		for xx := 0; xx < font.GlyphWidth; xx++ {
			on := (bits[xx]>>uint(yy))&0x01 != 0
			u.plot(x+xx, y+yy, on, fg, bg)
		}
	}
}

// Printf draws formatted text at (x, y) in the foreground color, wrapping at
// the UI width. Output longer than PrintfBufferSize-1 bytes is cut. It
// returns the untruncated formatted length.
func (u *UI) Printf(x, y int, format string, args ...any) int {
	s := fmt.Sprintf(format, args...)
	n := len(s)
	s = Truncate(s, PrintfBufferSize-1)
	w, _ := u.Size()
	u.Paint(x, y, s, w-x, u.fg)
	return n
}
