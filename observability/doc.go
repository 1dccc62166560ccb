// Package observability wires OpenTelemetry tracing and metrics.
//
// Both exporters speak OTLP over HTTP and are off unless enabled in config:
//
//	observability:
//	  tracing:
//	    enabled: true
//	    endpoint: "localhost:4318"
//	    sample_rate: 1.0
//	  metrics:
//	    enabled: true
//	    interval: 15s
//
// Spans are always safe to start: with tracing disabled the global
// provider is a no-op.
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanAuthLogin)
//	defer span.End()
package observability
