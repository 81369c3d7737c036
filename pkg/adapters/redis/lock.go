package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/descent/pkg/ports"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

var (
	// ErrLockAcquire is returned when the lock cannot be acquired.
	ErrLockAcquire = errors.New("failed to acquire distributed lock")
)

// Locker implements ports.DistributedLocker using Redis.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker creates a new Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
	}
}

// Lock acquires a distributed lock for the given key using Redis SET NX PX,
// polling every 100ms while it is held elsewhere.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	// Owner token, checked on release so an expired holder can't free a newer lock.
	val := uuid.NewString()

	if ok, err := l.client.SetNX(ctx, lockKey, val, ttl).Result(); err != nil {
		return nil, fmt.Errorf("redis error acquiring lock: %w", err)
	} else if ok {
		return l.unlocker(lockKey, val), nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w %s: %w", ErrLockAcquire, key, ctx.Err())
		case <-ticker.C:
			// Try to acquire
			success, err := l.client.SetNX(ctx, lockKey, val, ttl).Result()
			if err != nil {
				return nil, fmt.Errorf("redis error acquiring lock: %w", err)
			}
			if success {
				return l.unlocker(lockKey, val), nil
			}
		}
	}
}

const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

func (l *Locker) unlocker(lockKey, val string) ports.UnlockFunc {
	return func(ctx context.Context) error {
		return l.client.Eval(ctx, unlockScript, []string{lockKey}, val).Err()
	}
}
