package animation

import (
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/descent/pkg/domain"
)

// Handle identifies a pending frame request.
type Handle uint64

// FrameFunc is invoked once per refresh with a monotonic timestamp.
type FrameFunc func(now time.Duration)

// FrameRequester schedules a single callback for the next refresh.
type FrameRequester interface {
	Request(FrameFunc) Handle
	Cancel(Handle)
}

// State of a Scheduler.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Playback describes one replay.
type Playback struct {
	Frames  int       // number of waypoints
	FPS     int       // target frame rate
	OnFrame func(int) // called with the frame index to display
	OnDone  func()    // called once after the final frame
}

// Scheduler advances a frame index against wall-clock time.
// Only one playback runs at a time; Start cancels the previous one.
type Scheduler struct {
	req FrameRequester

	// dispatch is held while callbacks run, and by Start and Cancel, so no
	// callback of a replaced playback runs after either returns.
	dispatch sync.Mutex

	mu       sync.Mutex
	state    State
	gen      uint64
	handle   Handle
	pending  bool
	interval time.Duration
	last     int
	index    int
	debt     time.Duration
	prev     time.Duration
	primed   bool
	onFrame  func(int)
	onDone   func()
}

// NewScheduler creates an idle scheduler on req.
func NewScheduler(req FrameRequester) *Scheduler {
	return &Scheduler{req: req}
}

// Start begins a replay. Any running replay is cancelled and its timing state
// discarded first. Callbacks must not call Start or Cancel.
func (s *Scheduler) Start(p Playback) error {
	if p.Frames < 2 {
		return domain.ErrPathTooShort
	}
	if p.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", domain.ErrInvalidConfig, p.FPS)
	}

	s.dispatch.Lock()
	defer s.dispatch.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()

	s.gen++
	s.state = StateRunning
	s.interval = time.Second / time.Duration(p.FPS)
	s.last = p.Frames - 1
	s.index = 0
	s.debt = 0
	s.prev = 0
	s.primed = false
	s.onFrame = p.OnFrame
	s.onDone = p.OnDone
	s.requestLocked()
	return nil
}

// Cancel stops a running replay. OnDone is not called.
func (s *Scheduler) Cancel() {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// State returns the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Running reports whether a replay is in progress.
func (s *Scheduler) Running() bool { return s.State() == StateRunning }

// Index returns the logical frame index.
func (s *Scheduler) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Scheduler) cancelLocked() {
	if s.pending {
		s.req.Cancel(s.handle)
		s.pending = false
	}
	if s.state == StateRunning {
		s.state = StateCancelled
	}
}

func (s *Scheduler) requestLocked() {
	gen := s.gen
	s.handle = s.req.Request(func(now time.Duration) { s.tick(gen, now) })
	s.pending = true
}

func (s *Scheduler) tick(gen uint64, now time.Duration) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()
	s.mu.Lock()
	if gen != s.gen || s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.pending = false

	if !s.primed {
		s.prev = now
		s.primed = true
	}
	s.debt += now - s.prev
	s.prev = now
	if n := s.debt / s.interval; n >= 1 {
		s.debt -= n * s.interval
		s.index += int(n)
	}

	index, onFrame := s.index, s.onFrame
	var onDone func()
	if index >= s.last {
		index = s.last
		s.index = index
		s.state = StateFinished
		onDone = s.onDone
	} else {
		s.requestLocked()
	}
	s.mu.Unlock()

	if onFrame != nil {
		onFrame(index)
	}
	if onDone != nil {
		onDone()
	}
}
