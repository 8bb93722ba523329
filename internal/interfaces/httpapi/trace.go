package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("github.com/riskibarqy/football-cache/internal/interfaces/httpapi")

// startSpan opens a handler span under the request span. Requests the
// tracing middleware skipped (health probes) carry no parent and get a
// no-op span instead of a new root.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
