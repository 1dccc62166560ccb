package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults("mp-api", "1.2.3", "staging")

	if cfg.Tracing.Endpoint != "localhost:4318" || cfg.Metrics.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoints, got %q %q", cfg.Tracing.Endpoint, cfg.Metrics.Endpoint)
	}
	if cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", cfg.Metrics.Interval)
	}
	if cfg.Tracing.id.ServiceName != "mp-api" || cfg.Metrics.id.Environment != "staging" {
		t.Errorf("identity not propagated: %+v %+v", cfg.Tracing.id, cfg.Metrics.id)
	}
	if cfg.Tracing.Enabled || cfg.Metrics.Enabled {
		t.Error("exporters must be off by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"half", 0.5, false},
		{"one", 1, false},
		{"negative", -0.1, true},
		{"above one", 1.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Tracing: TracerConfig{SampleRate: tt.rate}}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStartSpanRecorded(t *testing.T) {
	rec := withRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanAuthLogin)
	if TraceID(ctx) == "" {
		t.Error("expected a trace id inside the span")
	}
	SetSpanError(ctx, errors.New("invalid credentials"))
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Name() != SpanAuthLogin {
		t.Errorf("expected span %q, got %q", SpanAuthLogin, ended[0].Name())
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", ended[0].Status().Code)
	}
	if len(ended[0].Events()) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}

func TestSetSpanErrorWithoutSpan(t *testing.T) {
	SetSpanError(context.Background(), errors.New("ignored"))
	SetSpanError(context.Background(), nil)
	if TraceID(context.Background()) != "" {
		t.Error("expected empty trace id without a span")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
	}
	for _, tt := range tests {
		if got := sampler(tt.rate).Description(); got != tt.want {
			t.Errorf("sampler(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
	if got := sampler(0.5).Description(); got == "AlwaysOnSampler" || got == "AlwaysOffSampler" {
		t.Errorf("expected ratio sampler, got %q", got)
	}
}

func TestMetricsRecord(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	ctx := context.Background()
	m.RecordAuth(ctx, "login", "success")
	m.RecordTask(ctx, "tasks.example_task", "SUCCESS", 10*time.Millisecond)
	m.RecordScrape(ctx, "saved")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordAuth(ctx, "login", "failure")
	m.RecordTask(ctx, "x", "FAILURE", time.Second)
	m.RecordScrape(ctx, "failed")
}

func TestDefaultMetrics(t *testing.T) {
	if DefaultMetrics() == nil {
		t.Fatal("expected metrics on the global provider")
	}
}

func TestComponentDisabled(t *testing.T) {
	c := NewComponent(Config{})
	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if c.tp != nil || c.mp != nil {
		t.Error("no providers should be created when disabled")
	}
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if c.Health(ctx).Status != "healthy" {
		t.Error("expected healthy")
	}
	if c.Describe().Details != "tracing=false metrics=false" {
		t.Errorf("unexpected description %q", c.Describe().Details)
	}
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	cfg := TracerConfig{Endpoint: "localhost:4318", Insecure: true, SampleRate: 1}
	cfg.id.apply("mp-test", "dev", "test")

	tp, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = tp.Shutdown(ctx)
}

func TestInitMeter(t *testing.T) {
	prev := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	cfg := MeterConfig{Endpoint: "localhost:4318", Insecure: true, Interval: time.Minute}
	cfg.id.apply("mp-test", "dev", "test")

	mp, err := InitMeter(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitMeter failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = mp.Shutdown(ctx)
}
