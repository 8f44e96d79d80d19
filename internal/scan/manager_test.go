package scan

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"concurso-backend/domain"
	"concurso-backend/internal/camera"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTorch struct {
	mu        sync.Mutex
	supported bool
	on        bool
}

func (f *fakeTorch) Supported() bool {
	return f.supported
}

func (f *fakeTorch) Set(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.supported {
		return domain.ErrTorchUnsupported
	}
	f.on = on
	return nil
}

func (f *fakeTorch) State() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on
}

type fakeDevice struct {
	mu      sync.Mutex
	closed  bool
	readErr error
	torch   *fakeTorch
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{torch: &fakeTorch{supported: true}}
}

func (d *fakeDevice) ReadFrame() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.readErr != nil {
		return nil, d.readErr
	}
	return image.NewRGBA(image.Rect(0, 0, 640, 480)), nil
}

func (d *fakeDevice) Dimensions() (int, int) {
	return 640, 480
}

func (d *fakeDevice) Torch() camera.TorchControl {
	return d.torch
}

func (d *fakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.torch.mu.Lock()
	d.torch.on = false
	d.torch.mu.Unlock()
	return nil
}

func (d *fakeDevice) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

type fakeStrategy struct {
	mu    sync.Mutex
	codes []string
}

func (s *fakeStrategy) Name() string {
	return StrategyNameFallback
}

func (s *fakeStrategy) Interval() time.Duration {
	return 2 * time.Millisecond
}

func (s *fakeStrategy) Detect(img image.Image) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.codes) == 0 {
		return "", ErrNoCode
	}
	code := s.codes[0]
	s.codes = s.codes[1:]
	return code, nil
}

func (s *fakeStrategy) queue(code string) {
	s.mu.Lock()
	s.codes = append(s.codes, code)
	s.mu.Unlock()
}

type fakeResolver struct {
	mu      sync.Mutex
	calls   []string
	outcome domain.CheckinOutcome
	err     error
}

func (r *fakeResolver) Resolve(ctx context.Context, raw string) (domain.CheckinResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, raw)
	if r.err != nil {
		return domain.CheckinResponse{}, r.err
	}
	return domain.CheckinResponse{Outcome: r.outcome, Message: string(r.outcome)}, nil
}

func (r *fakeResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type testRig struct {
	manager  *Manager
	strategy *fakeStrategy
	resolver *fakeResolver
	devices  []*fakeDevice
}

func newTestRig() *testRig {
	rig := &testRig{
		strategy: &fakeStrategy{},
		resolver: &fakeResolver{outcome: domain.CheckinSuccess},
	}
	streams := NewStreamManager(func(camera.OpenOptions) (camera.Device, error) {
		dev := newFakeDevice()
		rig.devices = append(rig.devices, dev)
		return dev, nil
	})
	rig.manager = NewManager(rig.resolver, streams, func() DetectionStrategy { return rig.strategy })
	return rig
}

func TestStartReportsStrategy(t *testing.T) {
	rig := newTestRig()
	defer rig.manager.Stop()

	res, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionToken)
	assert.Equal(t, StrategyNameFallback, res.Strategy)

	status := rig.manager.Status()
	assert.True(t, status.Active)
	assert.Equal(t, string(StateRunning), status.State)
}

func TestStartWithoutStrategy(t *testing.T) {
	streams := NewStreamManager(func(camera.OpenOptions) (camera.Device, error) {
		t.Fatal("camera must not be opened when no strategy is available")
		return nil, nil
	})
	m := NewManager(&fakeResolver{}, streams, func() DetectionStrategy { return nil })

	_, err := m.Start(camera.OpenOptions{})
	assert.ErrorIs(t, err, domain.ErrStrategyUnavailable)
}

func TestRestartClosesPreviousStream(t *testing.T) {
	rig := newTestRig()
	defer rig.manager.Stop()

	_, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)
	_, err = rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)

	require.Len(t, rig.devices, 2)
	assert.True(t, rig.devices[0].isClosed())
	assert.False(t, rig.devices[1].isClosed())
}

func TestDetectionAutoStops(t *testing.T) {
	rig := newTestRig()

	_, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)

	rig.strategy.queue("2000000000428")

	require.Eventually(t, func() bool {
		return rig.manager.Status().State == string(StateDetected)
	}, time.Second, 5*time.Millisecond)

	status := rig.manager.Status()
	assert.False(t, status.Active)
	require.NotNil(t, status.LastResult)
	assert.Equal(t, domain.CheckinSuccess, status.LastResult.Outcome)

	// Terminal sessions release their stream.
	require.Eventually(t, func() bool {
		return rig.devices[0].isClosed()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, rig.resolver.callCount())
}

func TestAlreadyReceivedIsTerminal(t *testing.T) {
	rig := newTestRig()
	rig.resolver.outcome = domain.CheckinAlreadyReceived

	_, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)

	rig.strategy.queue("2000000000428")

	require.Eventually(t, func() bool {
		return rig.manager.Status().State == string(StateDetected)
	}, time.Second, 5*time.Millisecond)
}

func TestNotFoundKeepsSessionRunning(t *testing.T) {
	rig := newTestRig()
	rig.resolver.outcome = domain.CheckinNotFound

	_, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)
	defer rig.manager.Stop()

	rig.strategy.queue("9999999999999")

	require.Eventually(t, func() bool {
		return rig.resolver.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	status := rig.manager.Status()
	assert.True(t, status.Active)
	assert.Equal(t, string(StateRunning), status.State)
	require.NotNil(t, status.LastResult)
	assert.Equal(t, domain.CheckinNotFound, status.LastResult.Outcome)

	// Miss feedback shows exactly once.
	assert.Nil(t, rig.manager.Status().LastResult)
}

func TestResolverFailureKeepsSessionRunning(t *testing.T) {
	rig := newTestRig()
	rig.resolver.err = errors.New("database offline")

	_, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)
	defer rig.manager.Stop()

	rig.strategy.queue("2000000000428")

	require.Eventually(t, func() bool {
		return rig.resolver.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	assert.True(t, rig.manager.Status().Active)
}

func TestPersistentReadFailureEndsSession(t *testing.T) {
	rig := newTestRig()

	_, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)

	rig.devices[0].mu.Lock()
	rig.devices[0].readErr = errors.New("frame grab failed")
	rig.devices[0].mu.Unlock()

	require.Eventually(t, func() bool {
		return rig.manager.Status().State == string(StateFailed)
	}, 2*time.Second, 5*time.Millisecond)

	status := rig.manager.Status()
	assert.False(t, status.Active)
	assert.Equal(t, domain.ErrCameraUnavailable.Error(), status.Error)
}

func TestStopWithoutSessionIsNoop(t *testing.T) {
	rig := newTestRig()

	rig.manager.Stop()

	status := rig.manager.Status()
	assert.False(t, status.Active)
	assert.Equal(t, string(StateIdle), status.State)
}

func TestStopReleasesStream(t *testing.T) {
	rig := newTestRig()

	_, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)

	rig.manager.Stop()

	assert.True(t, rig.devices[0].isClosed())
	assert.Equal(t, string(StateStopped), rig.manager.Status().State)
}

func TestToggleTorch(t *testing.T) {
	rig := newTestRig()

	_, err := rig.manager.ToggleTorch()
	assert.ErrorIs(t, err, domain.ErrScanSessionNotActive)

	_, err = rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)
	defer rig.manager.Stop()

	on, err := rig.manager.ToggleTorch()
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, rig.manager.Status().TorchEnabled)

	off, err := rig.manager.ToggleTorch()
	require.NoError(t, err)
	assert.False(t, off)
}

func TestToggleTorchUnsupported(t *testing.T) {
	rig := newTestRig()

	_, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)
	defer rig.manager.Stop()

	rig.devices[0].torch.supported = false

	_, err = rig.manager.ToggleTorch()
	assert.ErrorIs(t, err, domain.ErrTorchUnsupported)
}

func TestCloseResetsTorch(t *testing.T) {
	rig := newTestRig()

	_, err := rig.manager.Start(camera.OpenOptions{})
	require.NoError(t, err)

	on, err := rig.manager.ToggleTorch()
	require.NoError(t, err)
	require.True(t, on)

	rig.manager.Stop()

	assert.False(t, rig.devices[0].torch.State())
}
