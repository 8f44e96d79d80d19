package scan

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"concurso-backend/domain"
	"concurso-backend/internal/camera"
)

type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDetected State = "detected"
	StateStopped  State = "stopped"
	StateFailed   State = "failed"
)

// Resolver applies the check-in transition for a detected code.
// pkg/checkin's service satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (domain.CheckinResponse, error)
}

const (
	// A camera that stops delivering frames ends the session; isolated read
	// glitches do not.
	maxConsecutiveReadFailures = 30

	// After an unmatched code the loop pauses briefly so the same label in
	// front of the lens does not hammer the database every tick.
	missCooldown = 1500 * time.Millisecond
)

// Session is one scan attempt: it exclusively owns its capture device and a
// single goroutine that drives sequential detection ticks. Cancellation is the
// alive flag; every continuation checks it before acting on a stale result.
type Session struct {
	Token    string
	strategy DetectionStrategy
	device   camera.Device
	streams  *StreamManager
	resolver Resolver

	alive atomic.Bool
	done  chan struct{}
	stop  sync.Once
	wg    sync.WaitGroup

	mu         sync.Mutex
	state      State
	lastResult *domain.CheckinResponse
	failure    string

	readFailures int
	lastMissAt   time.Time
}

func newSession(token string, strategy DetectionStrategy, device camera.Device, streams *StreamManager, resolver Resolver) *Session {
	s := &Session{
		Token:    token,
		strategy: strategy,
		device:   device,
		streams:  streams,
		resolver: resolver,
		done:     make(chan struct{}),
		state:    StateRunning,
	}
	s.alive.Store(true)
	return s
}

func (s *Session) start() {
	s.wg.Add(1)
	go s.run()
}

// Stop clears the liveness flag. Safe to call from any goroutine, any number
// of times; the loop owns the actual teardown.
func (s *Session) Stop() {
	s.stop.Do(func() {
		s.alive.Store(false)
		close(s.done)
	})
}

// Wait blocks until the loop has torn down, so a new session can acquire the
// camera knowing the previous stream is fully released.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) run() {
	defer s.wg.Done()
	defer s.streams.Release(s.device)

	interval := s.strategy.Interval()
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if !s.alive.Load() {
			s.setTerminal(StateStopped)
			return
		}
		if tick != nil {
			select {
			case <-s.done:
				s.setTerminal(StateStopped)
				return
			case <-tick:
			}
		}
		if s.step() {
			return
		}
	}
}

// step runs one detection tick. It returns true when the session reached a
// terminal state. No error from a single tick is allowed to propagate and
// kill the loop; frame analysis dominates the tick count and spurious
// failures are normal.
func (s *Session) step() bool {
	img, err := s.device.ReadFrame()
	if err != nil {
		s.readFailures++
		if s.readFailures >= maxConsecutiveReadFailures {
			s.fail(domain.ErrCameraUnavailable)
			return true
		}
		return false
	}
	s.readFailures = 0

	raw, err := s.strategy.Detect(CropImage(img))
	if err != nil {
		// Transient: most frames simply contain no readable code.
		return false
	}

	// A decode that lands after Stop must not act on the stale result.
	if !s.alive.Load() {
		s.setTerminal(StateStopped)
		return true
	}

	if time.Since(s.lastMissAt) < missCooldown {
		return false
	}

	result, err := s.resolver.Resolve(context.Background(), raw)
	if err != nil {
		// Persistence failure: surfaced as transient feedback, loop keeps
		// running with unchanged state.
		s.setFeedback(&domain.CheckinResponse{
			Outcome: domain.CheckinNotFound,
			Message: domain.MessageFailedCheckin,
		})
		s.lastMissAt = time.Now()
		return false
	}

	if result.Outcome == domain.CheckinNotFound {
		s.setFeedback(&result)
		s.lastMissAt = time.Now()
		return false
	}

	// Success or AlreadyReceived: the code resolved to a sample, the session
	// is done and auto-stops.
	s.mu.Lock()
	s.state = StateDetected
	s.lastResult = &result
	s.mu.Unlock()
	s.Stop()
	return true
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	s.state = StateFailed
	s.failure = err.Error()
	s.mu.Unlock()
	s.Stop()
}

func (s *Session) setTerminal(state State) {
	s.mu.Lock()
	if s.state == StateRunning {
		s.state = state
	}
	s.mu.Unlock()
}

func (s *Session) setFeedback(result *domain.CheckinResponse) {
	s.mu.Lock()
	s.lastResult = result
	s.mu.Unlock()
}

// Snapshot reports the session state. Transient feedback (a not-found miss)
// auto-clears once read, so the UI shows it exactly once.
func (s *Session) Snapshot(torchOn bool) domain.ScanStatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := domain.ScanStatusResponse{
		Active:       s.state == StateRunning,
		State:        string(s.state),
		Strategy:     s.strategy.Name(),
		TorchEnabled: torchOn,
		LastResult:   s.lastResult,
		Error:        s.failure,
	}
	if s.state == StateRunning && s.lastResult != nil && s.lastResult.Outcome == domain.CheckinNotFound {
		s.lastResult = nil
	}
	return res
}
