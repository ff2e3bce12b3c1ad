package ui

import (
	"unicode/utf8"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/font"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"
)

// walk runs the wrapping rule over text and calls place for every glyph
// with its column and row offsets in pixels. It returns the number of rows
// the text occupies, which is at least one.
//
// Measure and Paint both go through walk so their results cannot drift.
func walk(text string, maxWidth int, place func(dx, dy int, r rune)) int {
	col, rows := 0, 1
	for _, r := range text {
		if !font.Printable(r) {
			continue
		}
		// A glyph that would cross the right edge starts the next row.
		if col > 0 && col+font.CellWidth > maxWidth {
			col = 0
			rows++
		}
		if place != nil {
			place(col, (rows-1)*font.CellHeight, r)
		}
		col += font.CellWidth
	}
	return rows
}

// Measure returns the height in pixels text takes when wrapped at
// maxWidth. It draws nothing.
func (u *UI) Measure(text string, maxWidth int) int {
	return walk(text, maxWidth, nil) * font.CellHeight
}

// Paint draws text from (x, y), wrapping back to x whenever the next glyph
// would pass maxWidth, and returns the height covered. The result always
// equals Measure(text, maxWidth). Glyphs outside the UI are clipped pixel
// by pixel rather than moved.
func (u *UI) Paint(x, y int, text string, maxWidth int, c framebuffer.Color) int {
	rows := walk(text, maxWidth, func(dx, dy int, r rune) {
		u.DrawGlyph(x+dx, y+dy, r, c, u.bg)
	})
	return rows * font.CellHeight
}

// RowCapacity is the number of glyphs that fit on one row of maxWidth.
// It is never less than one.
func RowCapacity(maxWidth int) int {
	if n := maxWidth / font.CellWidth; n > 1 {
		return n
	}
	return 1
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
