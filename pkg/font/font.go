// Package font holds the 5x7 bitmap font used by the log panel.
//
// Every glyph is stored as 5 column bytes. Bit y of column x is the pixel at
// (x, y), bit 0 being the top row. Glyphs are placed in a 6x8 cell, which
// leaves one blank column and one blank row between neighbours.
package font

const (
	// GlyphWidth and GlyphHeight are the drawn pixel size of a glyph.
	GlyphWidth  = 5
	GlyphHeight = 7

	// CellWidth and CellHeight are the advance of one character.
	CellWidth  = 6
	CellHeight = 8

	// First and Last bound the printable range covered by the table.
	First = 0x20
	Last  = 0x7E

	// Replacement is drawn for runes above Last.
	Replacement = '?'
)

// Printable reports whether r occupies a cell. Runes below First are
// control characters and take no space at all.
func Printable(r rune) bool {
	return r >= First
}

// Glyph returns the column bitmaps for r. Control characters return an
// empty glyph, runes past the table return the replacement glyph.
func Glyph(r rune) [GlyphWidth]byte {
	var g [GlyphWidth]byte
	if r < First {
		return g
	}
	if r > Last {
		r = Replacement
	}
	base := int(r-First) * GlyphWidth
	copy(g[:], glyphData[base:base+GlyphWidth])
	return g
}

// Pixel reports whether pixel (x, y) of r's glyph is set.
func Pixel(r rune, x, y int) bool {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return false
	}
	g := Glyph(r)
	return (g[x]>>uint(y))&0x01 != 0
}
