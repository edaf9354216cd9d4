package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("not-project-backend")

// GetTracer returns the shared tracer. Code that wants a span around its
// own work starts it here rather than holding its own tracer instance.
func GetTracer() trace.Tracer {
	return tracer
}
