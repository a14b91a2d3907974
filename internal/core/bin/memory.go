package bin

import (
	"ifcb/internal/core/adc"
	"ifcb/internal/core/hdr"
	"ifcb/internal/core/pid"
	perr "ifcb/internal/platform/errors"
)

// Memory is an in-memory backing: everything is held in the struct and
// Acquire/Release are no-ops. It is the target of Materialize and the
// fixture backing of choice in tests
type Memory struct {
	pid    *pid.Pid
	frame  *adc.Frame
	header hdr.Header
	images map[int]Image
}

// NewMemory builds a memory backing over an existing frame and header
func NewMemory(p *pid.Pid, f *adc.Frame, h hdr.Header) *Memory {
	return &Memory{pid: p, frame: f, header: h}
}

// SetImage attaches one target's image
func (m *Memory) SetImage(target int, img Image) {
	if m.images == nil {
		m.images = make(map[int]Image)
	}
	m.images[target] = img
}

// Pid returns the bin's identifier
func (m *Memory) Pid() *pid.Pid { return m.pid }

// Frame returns the held frame
func (m *Memory) Frame() (*adc.Frame, error) { return m.frame, nil }

// Header returns the held header
func (m *Memory) Header() (hdr.Header, error) { return m.header, nil }

// Acquire is a no-op
func (m *Memory) Acquire() error { return nil }

// Release is a no-op
func (m *Memory) Release() error { return nil }

// Image returns one target's held image
func (m *Memory) Image(target int) (Image, error) {
	img, ok := m.images[target]
	if !ok {
		return Image{}, perr.NotFoundf("no image for target %d in %s", target, m.pid)
	}
	return img, nil
}
