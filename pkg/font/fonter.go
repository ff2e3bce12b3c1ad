package font

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Fonter exposes the panel font to tinyfont so the same bitmaps can be
// drawn with tinyfont.WriteLine on any drivers.Displayer.
//
// The y coordinate passed to tinyfont is the baseline, one pixel below the
// last glyph row: a glyph drawn at baseline y covers rows y-7 through y-1.
// Concurrent use is not safe because the glyph value is reused.
var Fonter tinyfont.Fonter = &fonter{}

type fonter struct {
	g glyph
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	bits := Glyph(g.r)
	for col := 0; col < GlyphWidth; col++ {
		for row := 0; row < GlyphHeight; row++ {
			if (bits[col]>>uint(row))&0x01 == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(GlyphHeight-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    GlyphWidth,
		Height:   GlyphHeight,
		XAdvance: CellWidth,
		XOffset:  0,
		YOffset:  -GlyphHeight,
	}
}

func (f *fonter) GetYAdvance() uint8 { return CellHeight }

func (f *fonter) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}
