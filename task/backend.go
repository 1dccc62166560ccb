package task

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/mp/redis"
)

// ResultBackend stores task results by ID.
type ResultBackend interface {
	Store(ctx context.Context, res Result) error
	// Load returns (nil, nil) for an unknown ID.
	Load(ctx context.Context, id string) (*Result, error)
	Close() error
}

// MemoryBackend keeps results in a map.
type MemoryBackend struct {
	mu      sync.RWMutex
	results map[string]Result
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{results: make(map[string]Result)}
}

func (b *MemoryBackend) Store(_ context.Context, res Result) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results[res.ID] = res
	return nil
}

func (b *MemoryBackend) Load(_ context.Context, id string) (*Result, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	res, ok := b.results[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (b *MemoryBackend) Close() error { return nil }

// RedisBackend stores results as JSON under "<queue>:task-meta:<id>".
type RedisBackend struct {
	store  *redis.TypedStore[Result]
	client *redis.Client
	ttl    time.Duration
	owned  bool
}

// NewRedisBackend keeps results for ttl. When owned is true Close also
// closes client.
func NewRedisBackend(client *redis.Client, queue string, ttl time.Duration, owned bool) *RedisBackend {
	return &RedisBackend{
		store:  redis.NewTypedStore[Result](client, queue+":task-meta"),
		client: client,
		ttl:    ttl,
		owned:  owned,
	}
}

func (b *RedisBackend) Store(ctx context.Context, res Result) error {
	return b.store.Save(ctx, res.ID, &res, b.ttl)
}

func (b *RedisBackend) Load(ctx context.Context, id string) (*Result, error) {
	return b.store.Load(ctx, id)
}

func (b *RedisBackend) Close() error {
	if !b.owned {
		return nil
	}
	return b.client.Close()
}
