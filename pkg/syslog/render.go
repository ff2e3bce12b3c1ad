package syslog

import (
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/panel"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/ui"
)

// DefaultTitle is painted on the first row of the panel.
const DefaultTitle = "System log"

// LargeTitle fits on one row of the large UI grid.
const LargeTitle = "Syslog"

// Renderer paints a Store onto a UI and flushes it to a panel.
type Renderer struct {
	ui    *ui.UI
	panel panel.Panel
	title string
}

// NewRenderer creates a renderer using DefaultTitle.
func NewRenderer(u *ui.UI, p panel.Panel) *Renderer {
	return &Renderer{ui: u, panel: p, title: DefaultTitle}
}

// SetTitle changes the title row text.
func (r *Renderer) SetTitle(title string) {
	r.title = title
}

// Render repaints the panel if the store is dirty and does nothing
// otherwise.
//
// The title goes at the top. Entries are then stacked upward from the
// bottom edge starting at the anchor, newest lowest. The walk stops at the
// first entry that would reach into the title rows, so no entry is ever
// painted in part. The store stays locked for the whole pass, which keeps
// appends from moving entries under the walk.
//
// If the panel flush fails the store stays dirty and the error is returned.
func (r *Renderer) Render(s *Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	r.ui.Clear()
	width, height := r.ui.Size()
	fg := r.ui.Foreground()
	titleHeight := r.ui.Paint(0, 0, r.title, width, fg)

	y := height
	for e := range s.fromAnchor() {
		y -= r.ui.Measure(e.Text, width)
		if y < titleHeight {
			break
		}
		r.ui.Paint(0, y, e.Text, width, fg)
	}

	if err := r.panel.Flush(r.ui.Framebuffer()); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
