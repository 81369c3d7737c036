package animation

import (
	"context"
	"sort"
	"sync"
	"time"
)

// DefaultRefreshRate is the tick rate of a Loop, matching a common display.
const DefaultRefreshRate = 60

// Loop is a FrameRequester backed by a ticker. All callbacks run on the
// goroutine that called Run, in request order.
type Loop struct {
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	epoch   time.Time
	next    Handle
	pending map[Handle]FrameFunc
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithRefreshRate sets the number of ticks per second.
func WithRefreshRate(hz int) LoopOption {
	return func(l *Loop) {
		if hz > 0 {
			l.period = time.Second / time.Duration(hz)
		}
	}
}

// WithClock replaces the time source used for callback timestamps.
func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLoop creates a Loop. It does nothing until Run is called.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		period:  time.Second / DefaultRefreshRate,
		now:     time.Now,
		pending: make(map[Handle]FrameFunc),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.epoch = l.now()
	return l
}

// Request implements FrameRequester.
func (l *Loop) Request(fn FrameFunc) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.pending[l.next] = fn
	return l.next
}

// Cancel implements FrameRequester.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, h)
}

// Pending returns the number of outstanding requests.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Step dispatches every request pending at the time of the call.
// Requests made by the callbacks wait for the next Step.
func (l *Loop) Step() {
	l.mu.Lock()
	if len(l.pending) == 0 {
		l.mu.Unlock()
		return
	}
	handles := make([]Handle, 0, len(l.pending))
	for h := range l.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	fns := make([]FrameFunc, len(handles))
	for i, h := range handles {
		fns[i] = l.pending[h]
		delete(l.pending, h)
	}
	ts := l.now().Sub(l.epoch)
	l.mu.Unlock()

	for _, fn := range fns {
		fn(ts)
	}
}

// Run ticks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Step()
		}
	}
}

// Play replays p on a private Loop and blocks until the last frame was shown
// or ctx is done.
func Play(ctx context.Context, p Playback, opts ...LoopOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := NewLoop(opts...)
	done := make(chan struct{})
	onDone := p.OnDone
	p.OnDone = func() {
		if onDone != nil {
			onDone()
		}
		close(done)
	}

	sched := NewScheduler(loop)
	if err := sched.Start(p); err != nil {
		return err
	}
	go func() { _ = loop.Run(ctx) }()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		sched.Cancel()
		return ctx.Err()
	}
}
