package animation

import (
	"sync"
	"testing"
	"time"

	"github.com/aretw0/descent/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequester records requests and fires them on demand.
type fakeRequester struct {
	next      Handle
	pending   map[Handle]FrameFunc
	cancelled []Handle
}

func newFakeRequester() *fakeRequester {
	return &fakeRequester{pending: make(map[Handle]FrameFunc)}
}

func (f *fakeRequester) Request(fn FrameFunc) Handle {
	f.next++
	f.pending[f.next] = fn
	return f.next
}

func (f *fakeRequester) Cancel(h Handle) {
	f.cancelled = append(f.cancelled, h)
	delete(f.pending, h)
}

// fire runs every pending callback at now and reports how many ran.
func (f *fakeRequester) fire(now time.Duration) int {
	fns := f.pending
	f.pending = make(map[Handle]FrameFunc)
	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

type recorder struct {
	frames []int
	done   int
}

func (r *recorder) playback(frames, fps int) Playback {
	return Playback{
		Frames:  frames,
		FPS:     fps,
		OnFrame: func(i int) { r.frames = append(r.frames, i) },
		OnDone:  func() { r.done++ },
	}
}

func TestScheduler_AdvancesByElapsedIntervals(t *testing.T) {
	req := newFakeRequester()
	rec := &recorder{}
	s := NewScheduler(req)
	require.NoError(t, s.Start(rec.playback(100, 30)))

	// first callback only primes the clock
	require.Equal(t, 1, req.fire(1*time.Second))
	assert.Equal(t, []int{0}, rec.frames)

	interval := time.Second / 30
	now := 1 * time.Second
	for _, elapsed := range []time.Duration{interval, 20 * time.Millisecond, 20 * time.Millisecond, 3 * interval, 10 * time.Millisecond} {
		now += elapsed
		req.fire(now)
	}
	assert.Equal(t, []int{0, 1, 1, 2, 5, 5}, rec.frames)
	assert.Equal(t, StateRunning, s.State())
	assert.Zero(t, rec.done)
}

func TestScheduler_SkipsFramesOnSlowRefresh(t *testing.T) {
	req := newFakeRequester()
	rec := &recorder{}
	s := NewScheduler(req)
	require.NoError(t, s.Start(rec.playback(50, 60)))

	req.fire(0)
	req.fire(100 * time.Millisecond)
	// 100ms at 60fps is 6 whole intervals
	assert.Equal(t, []int{0, 6}, rec.frames)
	assert.Equal(t, 6, s.Index())
}

func TestScheduler_ClampsAndFinishes(t *testing.T) {
	req := newFakeRequester()
	rec := &recorder{}
	s := NewScheduler(req)
	require.NoError(t, s.Start(rec.playback(5, 30)))

	req.fire(0)
	req.fire(10 * time.Second)

	assert.Equal(t, []int{0, 4}, rec.frames)
	assert.Equal(t, 1, rec.done)
	assert.Equal(t, StateFinished, s.State())
	assert.Zero(t, req.fire(11*time.Second), "no callback after the final frame")
}

func TestScheduler_FullReplayNeverPassesLastIndex(t *testing.T) {
	req := newFakeRequester()
	rec := &recorder{}
	s := NewScheduler(req)
	const frames = 40
	require.NoError(t, s.Start(rec.playback(frames, 30)))

	now := time.Duration(0)
	for req.fire(now) > 0 {
		now += 16 * time.Millisecond
	}
	require.Equal(t, 1, rec.done)
	for _, i := range rec.frames {
		assert.LessOrEqual(t, i, frames-1)
	}
	assert.Equal(t, frames-1, rec.frames[len(rec.frames)-1])
}

func TestScheduler_StartCancelsPrevious(t *testing.T) {
	req := newFakeRequester()
	first := &recorder{}
	second := &recorder{}
	s := NewScheduler(req)

	require.NoError(t, s.Start(first.playback(100, 30)))
	req.fire(0)
	req.fire(time.Second)
	require.Equal(t, []int{0, 30}, first.frames)

	require.NoError(t, s.Start(second.playback(100, 30)))
	assert.Len(t, req.cancelled, 1)
	require.Len(t, req.pending, 1)

	req.fire(5 * time.Second)
	// timing state was discarded: the new replay primes again at index 0
	assert.Equal(t, []int{0}, second.frames)
	assert.Equal(t, []int{0, 30}, first.frames)
	assert.Zero(t, first.done)
}

func TestScheduler_Cancel(t *testing.T) {
	req := newFakeRequester()
	rec := &recorder{}
	s := NewScheduler(req)
	require.NoError(t, s.Start(rec.playback(10, 30)))

	s.Cancel()
	assert.Equal(t, StateCancelled, s.State())
	assert.Zero(t, req.fire(time.Second))
	assert.Empty(t, rec.frames)
	assert.Zero(t, rec.done)
}

func TestScheduler_StaleCallbackIgnored(t *testing.T) {
	req := newFakeRequester()
	rec := &recorder{}
	s := NewScheduler(req)
	require.NoError(t, s.Start(rec.playback(10, 30)))

	var stale FrameFunc
	for _, fn := range req.pending {
		stale = fn
	}
	s.Cancel()
	stale(time.Second)
	assert.Empty(t, rec.frames)
}

func TestScheduler_StartWaitsForRunningCallbacks(t *testing.T) {
	req := newFakeRequester()
	s := NewScheduler(req)

	var (
		mu     sync.Mutex
		events []string
	)
	record := func(e string) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, s.Start(Playback{
		Frames: 2,
		FPS:    30,
		OnFrame: func(i int) {
			if i == 1 {
				close(entered)
				<-release
			}
			record("first frame")
		},
		OnDone: func() { record("first done") },
	}))
	req.fire(0)

	var last FrameFunc
	for _, fn := range req.pending {
		last = fn
	}
	require.NotNil(t, last)
	req.pending = make(map[Handle]FrameFunc)

	ticked := make(chan struct{})
	go func() {
		last(time.Second)
		close(ticked)
	}()
	<-entered

	started := make(chan error, 1)
	go func() {
		started <- s.Start(Playback{
			Frames:  10,
			FPS:     30,
			OnFrame: func(int) { record("second frame") },
		})
	}()

	select {
	case <-started:
		t.Fatal("Start returned while the previous playback was dispatching")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-started)
	record("second started")
	<-ticked

	assert.Equal(t, StateRunning, s.State())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first frame", "first frame", "first done", "second started"}, events)
}

func TestScheduler_StartValidation(t *testing.T) {
	s := NewScheduler(newFakeRequester())
	assert.ErrorIs(t, s.Start(Playback{Frames: 1, FPS: 30}), domain.ErrPathTooShort)
	assert.ErrorIs(t, s.Start(Playback{Frames: 10, FPS: 0}), domain.ErrInvalidConfig)
	assert.Equal(t, StateIdle, s.State())
}
