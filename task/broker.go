package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kbukum/mp/redis"
)

// Broker carries task messages from clients to workers.
type Broker interface {
	Publish(ctx context.Context, msg Message) error
	// Consume waits up to wait for the next message. It returns (nil, nil)
	// when nothing arrived.
	Consume(ctx context.Context, wait time.Duration) (*Message, error)
	Ping(ctx context.Context) error
	Close() error
}

// MemoryBroker is an in-process FIFO queue.
type MemoryBroker struct {
	ch chan Message
}

// NewMemoryBroker creates a queue holding up to size messages.
func NewMemoryBroker(size int) *MemoryBroker {
	if size <= 0 {
		size = 1024
	}
	return &MemoryBroker{ch: make(chan Message, size)}
}

func (b *MemoryBroker) Publish(ctx context.Context, msg Message) error {
	select {
	case b.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (b *MemoryBroker) Consume(ctx context.Context, wait time.Duration) (*Message, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case msg := <-b.ch:
		return &msg, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of queued messages.
func (b *MemoryBroker) Len() int { return len(b.ch) }

func (b *MemoryBroker) Ping(context.Context) error { return nil }

func (b *MemoryBroker) Close() error { return nil }

// RedisBroker queues JSON messages on a Redis list.
type RedisBroker struct {
	client *redis.Client
	key    string
	owned  bool
}

// NewRedisBroker uses the list "<queue>:queue". When owned is true Close
// also closes client.
func NewRedisBroker(client *redis.Client, queue string, owned bool) *RedisBroker {
	return &RedisBroker{client: client, key: queue + ":queue", owned: owned}
}

func (b *RedisBroker) Publish(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("task: encode message: %w", err)
	}
	if err := b.client.LPush(ctx, b.key, data); err != nil {
		return fmt.Errorf("task: publish %s: %w", msg.Name, err)
	}
	return nil
}

func (b *RedisBroker) Consume(ctx context.Context, wait time.Duration) (*Message, error) {
	raw, err := b.client.BRPop(ctx, wait, b.key)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("task: consume: %w", err)
	}

	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, fmt.Errorf("task: decode message: %w", err)
	}
	return &msg, nil
}

// Len returns the number of queued messages.
func (b *RedisBroker) Len(ctx context.Context) (int64, error) {
	return b.client.LLen(ctx, b.key)
}

func (b *RedisBroker) Ping(ctx context.Context) error { return b.client.Ping(ctx) }

func (b *RedisBroker) Close() error {
	if !b.owned {
		return nil
	}
	return b.client.Close()
}
