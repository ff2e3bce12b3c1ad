package panel

import (
	"errors"
	"image/color"
	"testing"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/font"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"

	"tinygo.org/x/tinyfont"
)

func TestMemoryCapturesFrame(t *testing.T) {
	fb := framebuffer.New(4, 2, false)
	fb.Set(3, 1, 0xABCD)
	mem := NewMemory()

	if err := mem.Flush(fb); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if mem.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", mem.Frames())
	}
	if got := mem.At(3, 1); got != 0xABCD {
		t.Errorf("Expected 0xABCD, got %#04x", got)
	}

	// Later writes to the framebuffer do not leak into the captured frame.
	fb.Set(3, 1, 0)
	if got := mem.At(3, 1); got != 0xABCD {
		t.Errorf("Captured frame changed to %#04x", got)
	}
}

func TestMemoryCapturesPhysicalLayout(t *testing.T) {
	fb := framebuffer.New(4, 2, true)
	fb.Set(1, 0, framebuffer.White) // physical (3, 1)
	mem := NewMemory()
	mem.Flush(fb)

	w, h := mem.Size()
	if w != 4 || h != 2 {
		t.Fatalf("Expected 4x2, got %dx%d", w, h)
	}
	if got := mem.At(3, 1); got != framebuffer.White {
		t.Errorf("Expected White at physical (3,1), got %#04x", got)
	}
}

func TestMemoryError(t *testing.T) {
	mem := NewMemory()
	mem.Err = errors.New("bus fault")

	if err := mem.Flush(framebuffer.New(1, 1, false)); err != mem.Err {
		t.Errorf("Expected injected error, got %v", err)
	}
	if mem.Frames() != 0 {
		t.Errorf("Expected no frames captured, got %d", mem.Frames())
	}
}

func TestFunc(t *testing.T) {
	called := 0
	p := Func(func(*framebuffer.Framebuffer) error {
		called++
		return nil
	})
	p.Flush(nil)
	if called != 1 {
		t.Errorf("Expected 1 call, got %d", called)
	}
	if err := Discard.Flush(nil); err != nil {
		t.Errorf("Discard returned %v", err)
	}
}

func TestScreenWithTinyfont(t *testing.T) {
	fb := framebuffer.New(64, 16, false)
	mem := NewMemory()
	screen := NewScreen(fb, mem)

	w, h := screen.Size()
	if w != 64 || h != 16 {
		t.Fatalf("Expected 64x16, got %dx%d", w, h)
	}

	white := color.RGBA{255, 255, 255, 255}
	tinyfont.WriteLine(screen, font.Fonter, 0, font.GlyphHeight, "Hello", white)
	if err := screen.Display(); err != nil {
		t.Fatalf("Display failed: %v", err)
	}

	if mem.Frames() != 1 {
		t.Fatalf("Expected 1 frame, got %d", mem.Frames())
	}
	// 'H' has a full left column.
	for y := 0; y < font.GlyphHeight; y++ {
		if got := mem.At(0, y); got != framebuffer.White {
			t.Errorf("Expected 'H' stem at (0,%d), got %#04x", y, got)
		}
	}
}
