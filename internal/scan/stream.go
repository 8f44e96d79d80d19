package scan

import (
	"sync"

	"concurso-backend/internal/camera"
)

// OpenFunc acquires a capture device. Swapped for a fake in tests.
type OpenFunc func(camera.OpenOptions) (camera.Device, error)

// StreamManager owns the single camera stream the station is allowed to hold.
// Acquire tears down whatever was open before acquiring, so two simultaneous
// streams can never exist; Release is idempotent and safe on every exit path.
type StreamManager struct {
	open OpenFunc

	mu     sync.Mutex
	device camera.Device
}

func NewStreamManager(open OpenFunc) *StreamManager {
	if open == nil {
		open = camera.Open
	}
	return &StreamManager{open: open}
}

func (m *StreamManager) Acquire(opts camera.OpenOptions) (camera.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		_ = m.device.Close()
		m.device = nil
	}

	dev, err := m.open(opts)
	if err != nil {
		return nil, err
	}
	m.device = dev
	return dev, nil
}

// Release closes the given device. Closing an already-released or foreign
// handle is a no-op, which lets every exit path release unconditionally.
func (m *StreamManager) Release(dev camera.Device) {
	if dev == nil {
		return
	}
	m.mu.Lock()
	if m.device == dev {
		m.device = nil
	}
	m.mu.Unlock()
	_ = dev.Close()
}

// Active returns the currently held device, nil when none is open.
func (m *StreamManager) Active() camera.Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.device
}
