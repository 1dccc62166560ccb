package task

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/redis"
)

// Connections owns the Redis components behind the broker and result
// backend. Each distinct URL gets one started redis.Component whose client
// is shared by everything that names it.
type Connections struct {
	log *logger.Logger

	mu    sync.Mutex
	byURL map[string]*redis.Component
	order []*redis.Component
}

// NewConnections creates an empty set. Nothing connects until Redis.
func NewConnections(log *logger.Logger) *Connections {
	return &Connections{log: log, byURL: map[string]*redis.Component{}}
}

// Redis returns the client for rawURL, starting its component on first
// use. Start pings the server.
func (c *Connections) Redis(ctx context.Context, rawURL string) (*redis.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if comp, ok := c.byURL[rawURL]; ok {
		return comp.Client(), nil
	}
	comp := redis.NewComponent(redis.Config{URL: rawURL}, c.log)
	if err := comp.Start(ctx); err != nil {
		return nil, err
	}
	c.byURL[rawURL] = comp
	c.order = append(c.order, comp)
	return comp.Client(), nil
}

// Components returns the started Redis components in start order.
func (c *Connections) Components() []*redis.Component {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*redis.Component(nil), c.order...)
}

// Stop stops every component in reverse start order.
func (c *Connections) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for i := len(c.order) - 1; i >= 0; i-- {
		errs = append(errs, c.order[i].Stop(ctx))
	}
	c.order = nil
	c.byURL = map[string]*redis.Component{}
	return errors.Join(errs...)
}

// NewBroker opens the broker named by rawURL: memory:// or redis(s)://.
// Redis brokers borrow their client from conns.
func NewBroker(ctx context.Context, rawURL, queue string, queueSize int, conns *Connections) (Broker, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("task: broker url: %w", err)
	}
	switch u.Scheme {
	case "memory":
		return NewMemoryBroker(queueSize), nil
	case "redis", "rediss":
		client, err := conns.Redis(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("task: broker: %w", err)
		}
		return NewRedisBroker(client, queue, false), nil
	default:
		return nil, fmt.Errorf("task: unsupported broker scheme %q", u.Scheme)
	}
}

// NewResultBackend opens the backend named by rawURL: memory://,
// cache+memory:// or redis(s)://. Redis backends borrow their client from
// conns.
func NewResultBackend(ctx context.Context, rawURL, queue string, ttl time.Duration, conns *Connections) (ResultBackend, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("task: result backend url: %w", err)
	}
	switch u.Scheme {
	case "memory", "cache+memory":
		return NewMemoryBackend(), nil
	case "redis", "rediss":
		client, err := conns.Redis(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("task: result backend: %w", err)
		}
		return NewRedisBackend(client, queue, ttl, false), nil
	default:
		return nil, fmt.Errorf("task: unsupported result backend scheme %q", u.Scheme)
	}
}
