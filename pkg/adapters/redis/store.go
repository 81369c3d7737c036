package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/descent/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "descent:trace:"

// Store implements ports.TraceStore on Redis. Each trace is a JSON string at
// prefix+id; a sorted set at prefix+"index" lists the IDs.
//
// With a TTL, index scores are expiry times (unix ms) and List drops expired
// members lazily. Without one, scores are creation times.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL expires traces after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client { return s.client }

func (s *Store) key(id string) string { return s.prefix + id }
func (s *Store) index() string        { return s.prefix + "index" }

// Save persists the trace and indexes its ID.
func (s *Store) Save(ctx context.Context, trace *domain.Trace) error {
	data, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("failed to marshal trace %s: %w", trace.ID, err)
	}

	now := time.Now()
	score := float64(now.UnixMilli())
	if s.ttl > 0 {
		score = float64(now.Add(s.ttl).UnixMilli())
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(trace.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.index(), backend.Z{Score: score, Member: trace.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error saving trace %s: %w", trace.ID, err)
	}
	return nil
}

// Load retrieves a trace by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.Trace, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrTraceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading trace %s: %w", id, err)
	}

	var trace domain.Trace
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trace %s: %w", id, err)
	}
	return &trace, nil
}

// Delete removes a trace and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.index(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error deleting trace %s: %w", id, err)
	}
	return nil
}

// List returns stored trace IDs, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.ttl > 0 {
		now := strconv.FormatInt(time.Now().UnixMilli(), 10)
		if err := s.client.ZRemRangeByScore(ctx, s.index(), "-inf", now).Err(); err != nil {
			return nil, fmt.Errorf("redis error pruning index: %w", err)
		}
	}
	ids, err := s.client.ZRange(ctx, s.index(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing traces: %w", err)
	}
	return ids, nil
}
