//go:build tinygo

package main

import (
	"errors"
	"log/slog"
	"machine"
	"time"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/config"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/font"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/panel"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/protocol"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/storage"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/syslog"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/ui"
	"github.com/tuffrabit/tinygo-syslog-rp2040/serial"

	"tinygo.org/x/tinyfont"
)

const (
	ledPin      = machine.GPIO22
	blinkPeriod = 250 * time.Millisecond
	haltPeriod  = 100 * time.Millisecond
)

// MAIN THREAD DUTIES
//
// Blink the LED and repaint the log panel whenever the store is dirty.
// The serial link runs in its own goroutine and only appends or scrolls.

func main() {
	led := ledPin
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	sm, cfg, cfgErr := loadConfig()

	fb := framebuffer.New(panelWidth, panelHeight, cfg.Has(config.FlagRotate))
	u := ui.New(fb, ui.FromDisplay(cfg))
	p, panelErr := newPanel()
	if panelErr != nil {
		p = panel.Discard
	}

	splash(u, p)

	store := syslog.NewStore(int(cfg.Capacity))
	renderer := syslog.NewRenderer(u, p)
	if u.Mode() == ui.ModeLarge {
		renderer.SetTitle(syslog.LargeTitle)
	}

	logger := syslog.NewLogger(store,
		syslog.WithTimestamps(!cfg.Has(config.FlagNoTimestamps)),
		syslog.WithHalt(func(string) {
			halt(led, renderer, store, u, p)
		}),
	)
	log := slog.New(syslog.NewHandler(logger, nil))

	if panelErr != nil {
		log.Error("panel init", "err", panelErr)
	}
	if cfgErr != nil {
		log.Warn("config", "err", cfgErr)
	}
	w, h := u.Size()
	log.Info("up", "cap", store.Cap(), "w", w, "h", h)

	link := serial.NewLink(machine.Serial, protocol.NewHandler(sm, store), logger)
	go func() {
		if err := link.Handle(); err != nil {
			logger.Fatalf("serial: %v", err)
		}
	}()

	for {
		led.High()
		time.Sleep(blinkPeriod)
		led.Low()
		time.Sleep(blinkPeriod)

		// A failed flush leaves the store dirty, so the next pass retries.
		renderer.Render(store)
	}
}

// loadConfig mounts flash storage and reads the display settings, falling
// back to the defaults. The manager is nil if flash could not be mounted.
func loadConfig() (*storage.Manager, config.Display, error) {
	cfg := config.Default()

	sm, err := storage.New(machine.Flash, true)
	if err != nil {
		return nil, cfg, err
	}

	var stored config.Display
	switch err := sm.LoadDisplay(&stored); {
	case err == nil:
		cfg = stored
	case errors.Is(err, storage.ErrNotFound):
	default:
		return sm, cfg, err
	}
	return sm, cfg, nil
}

// splash shows the boot screen until the first render replaces it.
func splash(u *ui.UI, p panel.Panel) {
	u.Clear()
	if u.Mode() == ui.ModeLarge {
		u.DrawBitmap(ui.LargeBackdrop)
		p.Flush(u.Framebuffer())
		return
	}

	screen := panel.NewScreen(u.Framebuffer(), p)
	tinyfont.WriteLine(screen, font.Fonter, 0, font.GlyphHeight, "Hello, world!", u.Foreground().RGBA())
	screen.Display()
}

// halt repaints the log with a HALT marker and never returns.
func halt(led machine.Pin, r *syslog.Renderer, s *syslog.Store, u *ui.UI, p panel.Panel) {
	s.MarkDirty()
	r.Render(s)

	w, _ := u.Size()
	u.Printf(w-4*font.CellWidth, 0, "HALT")
	p.Flush(u.Framebuffer())

	for {
		led.High()
		time.Sleep(haltPeriod)
		led.Low()
		time.Sleep(haltPeriod)
	}
}
