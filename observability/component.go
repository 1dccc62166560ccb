package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/mp/component"
)

// Component installs the configured providers on Start and flushes them
// on Stop.
type Component struct {
	cfg Config
	tp  *sdktrace.TracerProvider
	mp  *sdkmetric.MeterProvider
}

var _ component.Component = (*Component)(nil)

// NewComponent returns an observability component for cfg.
func NewComponent(cfg Config) *Component {
	return &Component{cfg: cfg}
}

func (c *Component) Name() string { return "observability" }

func (c *Component) Start(ctx context.Context) error {
	if c.cfg.Tracing.Enabled {
		tp, err := InitTracer(ctx, c.cfg.Tracing)
		if err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
		c.tp = tp
	}
	if c.cfg.Metrics.Enabled {
		mp, err := InitMeter(ctx, c.cfg.Metrics)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		c.mp = mp
	}
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		errs = append(errs, c.tp.Shutdown(ctx))
	}
	if c.mp != nil {
		errs = append(errs, c.mp.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Type:    "observability",
		Details: fmt.Sprintf("tracing=%t metrics=%t", c.cfg.Tracing.Enabled, c.cfg.Metrics.Enabled),
	}
}
