package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestLoop_StepDispatchesInOrder(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	loop := NewLoop(WithClock(clock.Now))

	var got []string
	var stamps []time.Duration
	loop.Request(func(now time.Duration) { got = append(got, "a"); stamps = append(stamps, now) })
	h := loop.Request(func(time.Duration) { got = append(got, "b") })
	loop.Request(func(now time.Duration) { got = append(got, "c"); stamps = append(stamps, now) })
	loop.Cancel(h)
	require.Equal(t, 2, loop.Pending())

	clock.Advance(250 * time.Millisecond)
	loop.Step()

	assert.Equal(t, []string{"a", "c"}, got)
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, stamps)
	assert.Zero(t, loop.Pending())
}

func TestLoop_RequestsFromCallbackWaitForNextStep(t *testing.T) {
	loop := NewLoop()
	calls := 0
	var fn FrameFunc
	fn = func(time.Duration) {
		calls++
		loop.Request(fn)
	}
	loop.Request(fn)

	loop.Step()
	loop.Step()
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, loop.Pending())
}

func TestLoop_DrivesScheduler(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	loop := NewLoop(WithClock(clock.Now))
	rec := &recorder{}
	s := NewScheduler(loop)
	require.NoError(t, s.Start(rec.playback(4, 10)))

	for i := 0; i < 10 && s.Running(); i++ {
		loop.Step()
		clock.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, rec.frames)
	assert.Equal(t, 1, rec.done)
}

func TestPlay(t *testing.T) {
	var frames []int
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Play(ctx, Playback{
		Frames:  5,
		FPS:     120,
		OnFrame: func(i int) { frames = append(frames, i) },
	}, WithRefreshRate(240))

	require.NoError(t, err)
	require.NotEmpty(t, frames)
	assert.Equal(t, 4, frames[len(frames)-1])
}

func TestPlay_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Play(ctx, Playback{Frames: 1000, FPS: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
