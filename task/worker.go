package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
	"github.com/kbukum/mp/resilience"
)

// Worker consumes the broker and runs up to Concurrency tasks at once.
type Worker struct {
	broker   Broker
	exec     *executor
	bulkhead *resilience.Bulkhead
	wait     time.Duration
	log      *logger.Logger

	mu         sync.Mutex
	running    bool
	cancelLoop context.CancelFunc
	cancelRun  context.CancelFunc
	done       chan struct{}
	inflight   sync.WaitGroup
	processed  atomic.Int64
}

// NewWorker creates a worker. metrics may be nil.
func NewWorker(cfg Config, registry *Registry, broker Broker, backend ResultBackend, metrics *observability.Metrics) *Worker {
	cfg.ApplyDefaults()
	log := logger.WithComponent("task.worker")
	return &Worker{
		broker: broker,
		exec:   &executor{registry: registry, backend: backend, metrics: metrics, timeout: cfg.TaskTimeout, log: log},
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "task.worker",
			MaxConcurrent: cfg.Concurrency,
			MaxWait:       -1,
		}),
		wait: cfg.ConsumeTimeout,
		log:  log,
	}
}

// Start launches the consume loop in the background.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	base := context.WithoutCancel(ctx)
	loopCtx, cancelLoop := context.WithCancel(base)
	runCtx, cancelRun := context.WithCancel(base)
	w.cancelLoop, w.cancelRun = cancelLoop, cancelRun
	w.done = make(chan struct{})
	w.running = true

	w.log.Info("worker started", logger.Fields("concurrency", w.bulkhead.Available()))
	go w.loop(loopCtx, runCtx)
	return nil
}

// Stop stops consuming and waits for running tasks until ctx expires,
// after which their contexts are cancelled.
func (w *Worker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.cancelLoop()
	done := w.done
	w.mu.Unlock()

	<-done

	drained := make(chan struct{})
	go func() {
		w.inflight.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		w.log.Warn("stop deadline reached, cancelling running tasks", logger.Fields("in_flight", w.bulkhead.InUse()))
		w.cancelRun()
		<-drained
	}
	w.cancelRun()
	w.log.Info("worker stopped", logger.Fields("processed", w.processed.Load()))
	return nil
}

// Running reports whether the consume loop is active.
func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Processed returns how many tasks have finished.
func (w *Worker) Processed() int64 {
	return w.processed.Load()
}

func (w *Worker) loop(loopCtx, runCtx context.Context) {
	defer close(w.done)
	failures := 0

	for {
		if err := w.bulkhead.Acquire(loopCtx); err != nil {
			return
		}

		msg, err := w.broker.Consume(loopCtx, w.wait)
		if err != nil {
			w.bulkhead.Release()
			if loopCtx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			failures++
			if w.backoff(loopCtx, err, failures) != nil {
				return
			}
			continue
		}
		failures = 0
		if msg == nil {
			w.bulkhead.Release()
			continue
		}

		w.inflight.Add(1)
		go func(m Message) {
			defer w.inflight.Done()
			defer w.bulkhead.Release()
			w.exec.run(runCtx, m)
			w.processed.Add(1)
		}(*msg)
	}
}

// backoff sleeps after a broker error, up to 30s.
func (w *Worker) backoff(ctx context.Context, err error, failures int) error {
	if failures <= 3 {
		w.log.WithError(err).Error("broker consume failed", logger.Fields("failures", failures))
	}
	d := time.Duration(failures) * time.Second
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
