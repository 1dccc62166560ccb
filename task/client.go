package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
)

// Client enqueues tasks.
type Client struct {
	broker  Broker
	backend ResultBackend
	exec    *executor
	eager   bool
	poll    time.Duration
	log     *logger.Logger
}

// NewClient creates a client. metrics may be nil.
func NewClient(cfg Config, registry *Registry, broker Broker, backend ResultBackend, metrics *observability.Metrics) *Client {
	cfg.ApplyDefaults()
	log := logger.WithComponent("task")
	return &Client{
		broker:  broker,
		backend: backend,
		exec:    &executor{registry: registry, backend: backend, metrics: metrics, timeout: cfg.TaskTimeout, log: log},
		eager:   cfg.AlwaysEager,
		poll:    cfg.PollInterval,
		log:     log,
	}
}

// Delay enqueues the named task. In eager mode it runs before returning.
func (c *Client) Delay(ctx context.Context, name string) (*AsyncResult, error) {
	if _, ok := c.exec.registry.Lookup(name); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}

	msg := Message{ID: uuid.NewString(), Name: name, EnqueuedAt: time.Now().UTC()}
	ar := &AsyncResult{ID: msg.ID, Name: name, backend: c.backend, poll: c.poll}

	if c.eager {
		c.exec.run(ctx, msg)
		return ar, nil
	}

	if err := c.broker.Publish(ctx, msg); err != nil {
		return nil, err
	}
	c.log.WithContext(ctx).Debug("task published", logger.Fields(logger.FieldTask, name, logger.FieldTaskID, msg.ID))
	return ar, nil
}

// AsyncResult is a handle on an enqueued task.
type AsyncResult struct {
	ID   string
	Name string

	backend ResultBackend
	poll    time.Duration
}

// State returns the stored state, or PENDING when nothing is stored yet.
func (r *AsyncResult) State(ctx context.Context) (State, error) {
	res, err := r.backend.Load(ctx, r.ID)
	if err != nil {
		return "", err
	}
	if res == nil {
		return StatePending, nil
	}
	return res.State, nil
}

// Get waits up to timeout for the task to finish and returns its value.
// A failed task yields an *Error.
func (r *AsyncResult) Get(ctx context.Context, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()

	for {
		res, err := r.backend.Load(ctx, r.ID)
		if err != nil && ctx.Err() == nil {
			return "", err
		}
		if res != nil && res.State.Ready() {
			if res.State == StateFailure {
				return "", &Error{ID: r.ID, Name: r.Name, Message: res.Error}
			}
			return res.Value, nil
		}

		select {
		case <-ctx.Done():
			return "", ErrResultTimeout
		case <-ticker.C:
		}
	}
}

// Lookup returns the stored result for id. An id with nothing stored is
// reported as PENDING.
func (c *Client) Lookup(ctx context.Context, id string) (*Result, error) {
	res, err := c.backend.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &Result{ID: id, State: StatePending}, nil
	}
	return res, nil
}
