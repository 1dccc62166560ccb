package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/mp/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	id identity

	// Enabled turns on the OTLP exporter.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows plain HTTP to the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
// The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, cfg MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg.id)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the service's instruments.
type Metrics struct {
	authTotal    metric.Int64Counter
	taskTotal    metric.Int64Counter
	taskDuration metric.Float64Histogram
	scrapeTotal  metric.Int64Counter
}

// NewMetrics creates instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	authTotal, err := meter.Int64Counter("auth.attempts",
		metric.WithDescription("Registration, login and token checks by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.attempts counter: %w", err)
	}

	taskTotal, err := meter.Int64Counter("task.runs",
		metric.WithDescription("Executed tasks by name and state"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating task.runs counter: %w", err)
	}

	taskDuration, err := meter.Float64Histogram("task.duration",
		metric.WithDescription("Task execution time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating task.duration histogram: %w", err)
	}

	scrapeTotal, err := meter.Int64Counter("scraper.pages",
		metric.WithDescription("Scraped pages by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scraper.pages counter: %w", err)
	}

	return &Metrics{
		authTotal:    authTotal,
		taskTotal:    taskTotal,
		taskDuration: taskDuration,
		scrapeTotal:  scrapeTotal,
	}, nil
}

// DefaultMetrics builds Metrics on the global meter. Instruments on the
// no-op provider never fail, so neither does this when metrics are off.
func DefaultMetrics() *Metrics {
	m, err := NewMetrics(Meter(defaultTracerName))
	if err != nil {
		logger.WithComponent("observability").WithError(err).Warn("metrics disabled")
		return nil
	}
	return m
}

// RecordAuth counts an auth operation ("register", "login", "resolve").
func (m *Metrics) RecordAuth(ctx context.Context, operation, outcome string) {
	if m == nil {
		return
	}
	m.authTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordTask counts a task execution and its duration.
func (m *Metrics) RecordTask(ctx context.Context, name, state string, duration time.Duration) {
	if m == nil {
		return
	}
	m.taskTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task", name),
		attribute.String("state", state),
	))
	m.taskDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("task", name),
	))
}

// RecordScrape counts a scraped page.
func (m *Metrics) RecordScrape(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.scrapeTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
