package task

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kbukum/mp/component"
	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
	"github.com/kbukum/mp/util"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component opens the broker and result backend, then runs the worker
// and, when enabled, the beat scheduler.
type Component struct {
	cfg      Config
	registry *Registry
	metrics  *observability.Metrics
	runWork  bool
	log      *logger.Logger

	mu        sync.RWMutex
	conns     *Connections
	broker    Broker
	backend   ResultBackend
	client    *Client
	worker    *Worker
	scheduler *Scheduler
}

// NewComponent creates the task component. With runWorker false only the
// client side is started, which is enough to enqueue tasks.
func NewComponent(cfg Config, registry *Registry, metrics *observability.Metrics, runWorker bool) *Component {
	cfg.ApplyDefaults()
	return &Component{
		cfg:      cfg,
		registry: registry,
		metrics:  metrics,
		runWork:  runWorker,
		log:      logger.WithComponent("task"),
	}
}

func (c *Component) Name() string { return "tasks" }

// Client returns the client, or nil before Start.
func (c *Component) Client() *Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Worker returns the worker, or nil when not running one.
func (c *Component) Worker() *Worker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.worker
}

// Scheduler returns the beat scheduler, or nil when beat is disabled.
func (c *Component) Scheduler() *Scheduler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scheduler
}

func (c *Component) Start(ctx context.Context) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	conns := NewConnections(c.log)
	broker, err := NewBroker(ctx, c.cfg.BrokerURL, c.cfg.Queue, c.cfg.QueueSize, conns)
	if err != nil {
		_ = conns.Stop(ctx)
		return err
	}
	if err := broker.Ping(ctx); err != nil {
		_ = errors.Join(broker.Close(), conns.Stop(ctx))
		return fmt.Errorf("task: broker unreachable: %w", err)
	}
	backend, err := NewResultBackend(ctx, c.cfg.ResultBackend, c.cfg.Queue, c.cfg.ResultTTL, conns)
	if err != nil {
		_ = errors.Join(broker.Close(), conns.Stop(ctx))
		return err
	}
	release := func() {
		_ = errors.Join(broker.Close(), backend.Close(), conns.Stop(ctx))
	}

	client := NewClient(c.cfg, c.registry, broker, backend, c.metrics)

	var worker *Worker
	if c.runWork && !c.cfg.AlwaysEager {
		worker = NewWorker(c.cfg, c.registry, broker, backend, c.metrics)
		if err := worker.Start(ctx); err != nil {
			release()
			return err
		}
	}

	var scheduler *Scheduler
	if c.cfg.Beat.Enabled {
		scheduler, err = NewScheduler(c.cfg.Beat, client)
		if err == nil {
			err = scheduler.Start(ctx)
		}
		if err != nil {
			if worker != nil {
				_ = worker.Stop(ctx)
			}
			release()
			return err
		}
	}

	c.mu.Lock()
	c.conns, c.broker, c.backend, c.client, c.worker, c.scheduler = conns, broker, backend, client, worker, scheduler
	c.mu.Unlock()

	c.log.Info("task runtime started", logger.Fields(
		"tasks", c.registry.Names(),
		"worker", worker != nil,
		"beat", scheduler != nil,
		"redis_connections", len(conns.Components()),
	))
	return nil
}

// Stop shuts down beat, then the worker, then the broker and backend, and
// closes the shared Redis connections last.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.scheduler != nil {
		errs = append(errs, c.scheduler.Stop(ctx))
	}
	if c.worker != nil {
		errs = append(errs, c.worker.Stop(ctx))
	}
	if c.broker != nil {
		errs = append(errs, c.broker.Close())
	}
	if c.backend != nil {
		errs = append(errs, c.backend.Close())
	}
	if c.conns != nil {
		errs = append(errs, c.conns.Stop(ctx))
	}
	c.conns, c.broker, c.backend, c.client, c.worker, c.scheduler = nil, nil, nil, nil, nil, nil
	return errors.Join(errs...)
}

func (c *Component) Health(ctx context.Context) component.Health {
	c.mu.RLock()
	conns, broker, worker := c.conns, c.broker, c.worker
	c.mu.RUnlock()

	if broker == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	for _, rc := range conns.Components() {
		if h := rc.Health(ctx); h.Status != component.StatusHealthy {
			return component.Health{Name: c.Name(), Status: h.Status, Message: h.Message}
		}
	}
	if err := broker.Ping(ctx); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: err.Error()}
	}
	if c.runWork && worker != nil && !worker.Running() {
		return component.Health{Name: c.Name(), Status: component.StatusDegraded, Message: "worker stopped"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Type: "tasks",
		Details: fmt.Sprintf("broker=%s backend=%s concurrency=%d eager=%t beat=%t",
			util.MaskURL(c.cfg.BrokerURL), util.MaskURL(c.cfg.ResultBackend),
			c.cfg.Concurrency, c.cfg.AlwaysEager, c.cfg.Beat.Enabled),
	}
}
