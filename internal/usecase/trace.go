package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("github.com/riskibarqy/football-cache/internal/usecase")

const (
	attrOp        = attribute.Key("football.op")
	attrCacheHit  = attribute.Key("football.cache.hit")
	attrResults   = attribute.Key("football.results")
	attrFallback  = attribute.Key("football.cache.fallback")
	attrWriteBack = attribute.Key("football.cache.write_back")
)

// startUsecaseSpan only opens a span inside an existing trace, so warm-up
// runs started outside a request do not produce orphan roots.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func spanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
