package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/util"
)

// ErrNil is returned when a key or list is empty.
var ErrNil = goredis.Nil

// Client wraps a go-redis client.
type Client struct {
	rdb *goredis.Client
	log *logger.Logger
	cfg Config

	mu     sync.Mutex
	closed bool
}

// New creates a client. No connection is made until the first command.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	opts, err := cfg.options()
	if err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}

	rdb := goredis.NewClient(opts)
	log.Debug("Redis client created", logger.Fields(
		"url", util.MaskURL(cfg.URL),
		"pool_size", cfg.PoolSize,
	))
	return &Client{rdb: rdb, log: log, cfg: cfg}, nil
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Get returns the value at key, or ErrNil.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// Set stores value at key. A zero expiration keeps the key forever.
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Del removes keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// LPush prepends values to the list at key.
func (c *Client) LPush(ctx context.Context, key string, values ...interface{}) error {
	return c.rdb.LPush(ctx, key, values...).Err()
}

// BRPop blocks up to timeout for the oldest element of the list at key.
// It returns ErrNil when the timeout elapses.
func (c *Client) BRPop(ctx context.Context, timeout time.Duration, key string) (string, error) {
	res, err := c.rdb.BRPop(ctx, timeout, key).Result()
	if err != nil {
		return "", err
	}
	// res is [key, value]
	return res[1], nil
}

// LLen returns the length of the list at key.
func (c *Client) LLen(ctx context.Context, key string) (int64, error) {
	return c.rdb.LLen(ctx, key).Result()
}

// IsNil reports whether err means "no such key".
func IsNil(err error) bool {
	return errors.Is(err, goredis.Nil)
}

// Close closes the connection pool. Safe to call more than once.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.log.Debug("Closing Redis connection")
	return c.rdb.Close()
}

// Unwrap returns the go-redis client.
func (c *Client) Unwrap() *goredis.Client {
	return c.rdb
}
