package ui

import (
	"testing"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/config"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"
)

func newLargeUI() *UI {
	fb := framebuffer.New(160, 80, false)
	return New(fb, Config{Mode: ModeLarge, Foreground: framebuffer.White, Background: framebuffer.Black})
}

// block returns the physical top-left of logical pixel (x, y).
func block(x, y int) (int, int) {
	return LargeDefaults.OffsetX + x*3, LargeDefaults.OffsetY + y*3
}

func checkBlock(t *testing.T, u *UI, x, y int, face, shadow framebuffer.Color) {
	t.Helper()
	px, py := block(x, y)
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if got := u.fb.At(px+p[0], py+p[1]); got != face {
			t.Errorf("Logical (%d,%d) face +%v: expected %#04x, got %#04x", x, y, p, face, got)
		}
	}
	for _, p := range [][2]int{{2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}} {
		if got := u.fb.At(px+p[0], py+p[1]); got != shadow {
			t.Errorf("Logical (%d,%d) shadow +%v: expected %#04x, got %#04x", x, y, p, shadow, got)
		}
	}
}

func TestLargeSize(t *testing.T) {
	u := newLargeUI()
	w, h := u.Size()
	if w != 50 || h != 23 {
		t.Errorf("Expected logical size 50x23, got %dx%d", w, h)
	}
}

func TestLargeClear(t *testing.T) {
	u := newLargeUI()
	pal := LargeDefaults.Palette

	u.Clear()

	if got := u.fb.At(0, 0); got != pal.Background {
		t.Errorf("Margin: expected background %#04x, got %#04x", pal.Background, got)
	}
	checkBlock(t, u, 0, 0, pal.Off, pal.OffShadow)
	checkBlock(t, u, 49, 22, pal.Off, pal.OffShadow)
}

func TestLargeGlyphUsesPalette(t *testing.T) {
	u := newLargeUI()
	pal := LargeDefaults.Palette
	u.Clear()

	// '|' lights logical column 2 only; fg/bg arguments are ignored.
	u.DrawGlyph(0, 0, '|', 0x1234, 0x4321)

	for y := 0; y < 7; y++ {
		checkBlock(t, u, 2, y, pal.On, pal.OnShadow)
		checkBlock(t, u, 1, y, pal.Off, pal.OffShadow)
	}
}

func TestLargeClipsToLogicalGrid(t *testing.T) {
	u := newLargeUI()
	u.fb.Clear(framebuffer.Black)

	u.DrawGlyph(48, 20, 'H', framebuffer.White, framebuffer.Black)

	// Logical x=50 would start at physical 155; it must stay untouched.
	px, py := block(50, 20)
	for x := px; x < 160; x++ {
		if got := u.fb.At(x, py); got != framebuffer.Black {
			t.Fatalf("Expected no drawing past logical width at x=%d, got %#04x", x, got)
		}
	}
	checkBlock(t, u, 48, 20, LargeDefaults.Palette.On, LargeDefaults.Palette.OnShadow)
}

func TestDrawBitmap(t *testing.T) {
	u := newLargeUI()
	pal := LargeDefaults.Palette
	u.Clear()

	// Row 0: bits for x=0 and x=9; row 1: x=48.
	img := []byte{
		0x80, 0x40, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0x80,
	}
	u.DrawBitmap(img)

	checkBlock(t, u, 0, 0, pal.On, pal.OnShadow)
	checkBlock(t, u, 1, 0, pal.Off, pal.OffShadow)
	checkBlock(t, u, 9, 0, pal.On, pal.OnShadow)
	checkBlock(t, u, 48, 1, pal.On, pal.OnShadow)
	checkBlock(t, u, 0, 2, pal.Off, pal.OffShadow)
}

func TestLargeBackdropFitsGrid(t *testing.T) {
	w, h := LargeDefaults.Width, LargeDefaults.Height
	if len(LargeBackdrop) < (w+7)/8*h {
		t.Errorf("Backdrop has %d bytes, need %d", len(LargeBackdrop), (w+7)/8*h)
	}
}

func TestNormalBitmap(t *testing.T) {
	u := newTestUI(16, 2)
	u.DrawBitmap([]byte{0xA0, 0x01})
	want := map[int]bool{0: true, 2: true, 15: true}
	for x := 0; x < 16; x++ {
		if got := u.fb.At(x, 0) == framebuffer.White; got != want[x] {
			t.Errorf("Pixel %d: expected %v, got %v", x, want[x], got)
		}
	}
}

func TestFromDisplay(t *testing.T) {
	d := config.Default()
	cfg := FromDisplay(d)
	if cfg.Mode != ModeNormal || cfg.Foreground != framebuffer.White || cfg.Background != framebuffer.Black {
		t.Errorf("Unexpected config %+v", cfg)
	}

	d.Set(config.FlagLargeUI, true)
	if FromDisplay(d).Mode != ModeLarge {
		t.Error("Expected ModeLarge when FlagLargeUI is set")
	}
}
