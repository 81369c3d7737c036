package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/descent/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_Exclusive(t *testing.T) {
	l := memory.NewLocker()
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "trace-1", time.Minute)
	require.NoError(t, err)

	// a different key is independent
	other, err := l.Lock(ctx, "trace-2", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = l.Lock(short, "trace-1", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	acquired := make(chan struct{})
	go func() {
		u, err := l.Lock(ctx, "trace-1", time.Minute)
		if err == nil {
			_ = u(ctx)
		}
		close(acquired)
	}()

	require.NoError(t, unlock(ctx))
	require.NoError(t, unlock(ctx), "unlock is idempotent")
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter was not released")
	}
}
