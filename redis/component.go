package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/mp/component"
	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/util"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component manages a Client inside a component.Registry.
type Component struct {
	cfg Config
	log *logger.Logger

	mu     sync.RWMutex
	client *Client
}

// NewComponent creates a Redis component. Nothing connects until Start.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("redis")}
}

// Client returns the client, or nil before Start.
func (c *Component) Client() *Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

func (c *Component) Name() string { return "redis" }

// Start creates the client and verifies connectivity.
func (c *Component) Start(ctx context.Context) error {
	client, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("redis start: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis start: %w", err)
	}

	c.mu.Lock()
	c.client = client
	c.mu.Unlock()
	c.log.Info("Redis connected", logger.Fields("url", util.MaskURL(c.cfg.URL)))
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Component) Health(ctx context.Context) component.Health {
	client := c.Client()
	if client == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "redis not initialized"}
	}
	if err := client.Ping(ctx); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: err.Error()}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Type:    "redis",
		Details: fmt.Sprintf("%s pool=%d", util.MaskURL(c.cfg.URL), c.cfg.PoolSize),
	}
}
