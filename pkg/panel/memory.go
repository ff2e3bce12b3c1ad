package panel

import (
	"sync"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"
)

// Memory keeps a copy of the last flushed frame. It stands in for real
// hardware on the host.
type Memory struct {
	mu     sync.Mutex
	width  int
	height int
	frame  []uint16
	frames int

	// Err, when set, is returned by Flush and the frame is not captured.
	Err error
}

// NewMemory returns an empty memory panel.
func NewMemory() *Memory {
	return &Memory{}
}

// Flush captures the physical pixels of fb.
func (m *Memory) Flush(fb *framebuffer.Framebuffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.width, m.height = fb.PhysicalSize()
	if cap(m.frame) < len(fb.Pix()) {
		m.frame = make([]uint16, len(fb.Pix()))
	}
	m.frame = m.frame[:len(fb.Pix())]
	copy(m.frame, fb.Pix())
	m.frames++
	return nil
}

// Frames returns how many frames were flushed.
func (m *Memory) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Size returns the physical size of the last frame.
func (m *Memory) Size() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// At returns a physical pixel of the last frame, Black if out of range.
func (m *Memory) At(x, y int) framebuffer.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return framebuffer.Black
	}
	return framebuffer.Color(m.frame[y*m.width+x])
}
