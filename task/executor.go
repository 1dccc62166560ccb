package task

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
)

// executor runs one message and records its result.
type executor struct {
	registry *Registry
	backend  ResultBackend
	metrics  *observability.Metrics
	timeout  time.Duration
	log      *logger.Logger
}

func (e *executor) run(ctx context.Context, msg Message) Result {
	ctx = logger.ContextWithTaskID(ctx, msg.ID)
	ctx, span := observability.StartSpan(ctx, observability.SpanTaskExecute)
	defer span.End()
	span.SetAttributes(
		attribute.String(observability.AttrTaskName, msg.Name),
		attribute.String(observability.AttrTaskID, msg.ID),
	)
	log := e.log.WithContext(ctx)

	res := Result{ID: msg.ID, Name: msg.Name, State: StateStarted, StartedAt: time.Now().UTC()}
	e.store(ctx, res)
	log.Info("task received", logger.Fields(logger.FieldTask, msg.Name))

	value, err := e.invoke(ctx, msg.Name)
	res.FinishedAt = time.Now().UTC()
	elapsed := res.FinishedAt.Sub(res.StartedAt)

	if err != nil {
		res.State, res.Error = StateFailure, err.Error()
		observability.SetSpanError(ctx, err)
		log.WithError(err).Error("task failed",
			logger.Fields(logger.FieldTask, msg.Name), logger.DurationFields("task", elapsed))
	} else {
		res.State, res.Value = StateSuccess, value
		log.Info("task succeeded",
			logger.Fields(logger.FieldTask, msg.Name, "result", value), logger.DurationFields("task", elapsed))
	}

	e.metrics.RecordTask(ctx, msg.Name, string(res.State), elapsed)
	e.store(ctx, res)
	return res
}

// invoke calls the handler with a timeout, turning panics into errors.
func (e *executor) invoke(ctx context.Context, name string) (value string, err error) {
	h, ok := e.registry.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ctx)
}

// store writes res, logging instead of failing: the task already ran.
func (e *executor) store(ctx context.Context, res Result) {
	// Results outlive a cancelled worker context.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := e.backend.Store(storeCtx, res); err != nil {
		e.log.WithContext(ctx).WithError(err).Error("store task result",
			logger.Fields(logger.FieldTask, res.Name, "state", string(res.State)))
	}
}
