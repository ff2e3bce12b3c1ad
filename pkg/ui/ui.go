// Package ui draws text onto a framebuffer.
//
// It owns glyph rasterization (including the enlarged "large UI" mode) and
// the line layout used by the log renderer. All drawing clips silently at
// the edges of the logical UI area; nothing in this package fails.
package ui

import (
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/config"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"
)

// Mode selects how logical pixels reach the framebuffer.
type Mode uint8

const (
	// ModeNormal maps one logical pixel to one framebuffer pixel.
	ModeNormal Mode = iota
	// ModeLarge enlarges every logical pixel into a shaded 3x3 block.
	ModeLarge
)

// Config describes a UI surface.
type Config struct {
	Mode       Mode
	Foreground framebuffer.Color
	Background framebuffer.Color

	// Large is only used in ModeLarge. Zero values select LargeDefaults.
	Large LargeConfig
}

// FromDisplay derives a UI config from the persisted display settings.
func FromDisplay(d config.Display) Config {
	cfg := Config{
		Foreground: framebuffer.Color(d.Foreground),
		Background: framebuffer.Color(d.Background),
	}
	if d.Has(config.FlagLargeUI) {
		cfg.Mode = ModeLarge
	}
	return cfg
}

// UI draws on a framebuffer through a logical coordinate space.
type UI struct {
	fb    *framebuffer.Framebuffer
	mode  Mode
	fg    framebuffer.Color
	bg    framebuffer.Color
	large LargeConfig
}

// New creates a UI over fb.
func New(fb *framebuffer.Framebuffer, cfg Config) *UI {
	u := &UI{
		fb:   fb,
		mode: cfg.Mode,
		fg:   cfg.Foreground,
		bg:   cfg.Background,
	}
	if cfg.Mode == ModeLarge {
		u.large = cfg.Large.withDefaults()
	}
	return u
}

// Framebuffer returns the target buffer.
func (u *UI) Framebuffer() *framebuffer.Framebuffer {
	return u.fb
}

// Size returns the logical drawing area. In large mode this is the
// enlarged grid, not the framebuffer size.
func (u *UI) Size() (width, height int) {
	if u.mode == ModeLarge {
		return u.large.Width, u.large.Height
	}
	return u.fb.Size()
}

// Mode returns the drawing mode.
func (u *UI) Mode() Mode {
	return u.mode
}

// Foreground returns the default text color.
func (u *UI) Foreground() framebuffer.Color {
	return u.fg
}

// Background returns the color used behind glyphs and by Clear.
func (u *UI) Background() framebuffer.Color {
	return u.bg
}

// Clear resets the drawing area. In large mode the panel is filled with the
// palette background and every logical pixel is drawn off.
func (u *UI) Clear() {
	if u.mode != ModeLarge {
		u.fb.Clear(u.bg)
		return
	}
	u.fb.Clear(u.large.Palette.Background)
	for y := 0; y < u.large.Height; y++ {
		for x := 0; x < u.large.Width; x++ {
			u.setLarge(x, y, false)
		}
	}
}

// plot writes one logical pixel. on selects fg or bg in normal mode and the
// palette pair in large mode.
func (u *UI) plot(x, y int, on bool, fg, bg framebuffer.Color) {
	w, h := u.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	if u.mode == ModeLarge {
		u.setLarge(x, y, on)
		return
	}
	if on {
		u.fb.Set(x, y, fg)
	} else {
		u.fb.Set(x, y, bg)
	}
}
