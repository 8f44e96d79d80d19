package scan

import (
	"sync"

	"github.com/google/uuid"

	"concurso-backend/domain"
	"concurso-backend/internal/camera"
)

// Manager is the station-facing entry point: it owns the current session and
// serializes start/stop so at most one detection loop and one camera stream
// exist at any time.
type Manager struct {
	streams  *StreamManager
	resolver Resolver
	probe    ProbeFunc

	mu      sync.Mutex
	session *Session
}

func NewManager(resolver Resolver, streams *StreamManager, probe ProbeFunc) *Manager {
	if probe == nil {
		probe = SelectStrategy
	}
	return &Manager{
		streams:  streams,
		resolver: resolver,
		probe:    probe,
	}
}

// Start begins a new scan session. An active session is stopped and fully
// torn down first, so the old stream's close completes before the new open.
func (m *Manager) Start(opts camera.OpenOptions) (*domain.StartScanResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.session.Stop()
		m.session.Wait()
		m.session = nil
	}

	strategy := m.probe()
	if strategy == nil {
		return nil, domain.ErrStrategyUnavailable
	}

	device, err := m.streams.Acquire(opts)
	if err != nil {
		return nil, err
	}

	s := newSession(uuid.NewString(), strategy, device, m.streams, m.resolver)
	s.start()
	m.session = s

	return &domain.StartScanResponse{
		SessionToken: s.Token,
		Strategy:     strategy.Name(),
	}, nil
}

// Stop ends the active session. Stopping when nothing runs is a no-op, which
// keeps the close path safe to call from every UI exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	s := m.session
	m.mu.Unlock()

	if s == nil {
		return
	}
	s.Stop()
	s.Wait()
}

// Status reports the current (or last finished) session.
func (m *Manager) Status() domain.ScanStatusResponse {
	m.mu.Lock()
	s := m.session
	m.mu.Unlock()

	if s == nil {
		return domain.ScanStatusResponse{Active: false, State: string(StateIdle)}
	}
	return s.Snapshot(m.torchState())
}

// ToggleTorch flips the torch on the active stream's track. Capability absence
// is informational, not an error state of the session.
func (m *Manager) ToggleTorch() (bool, error) {
	m.mu.Lock()
	s := m.session
	m.mu.Unlock()

	dev := m.streams.Active()
	if s == nil || dev == nil {
		return false, domain.ErrScanSessionNotActive
	}

	torch := dev.Torch()
	if !torch.Supported() {
		return false, domain.ErrTorchUnsupported
	}
	if err := torch.Set(!torch.State()); err != nil {
		return torch.State(), err
	}
	return torch.State(), nil
}

func (m *Manager) torchState() bool {
	dev := m.streams.Active()
	if dev == nil {
		return false
	}
	return dev.Torch().State()
}
