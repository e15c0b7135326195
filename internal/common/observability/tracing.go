// internal/common/observability/tracing.go
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "pawmatch-workers"

type tracerProvider struct {
	sdk *sdktrace.TracerProvider
}

func newTracerProvider(serviceName string, sampleAll bool) *tracerProvider {
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.1))
	if sampleAll {
		sampler = sdktrace.AlwaysSample()
	}
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	return &tracerProvider{sdk: sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(res),
	)}
}

// RegisterSpanProcessor attaches p, typically an exporter or a test recorder.
func (o *Observability) RegisterSpanProcessor(p sdktrace.SpanProcessor) {
	o.tracerProvider.sdk.RegisterSpanProcessor(p)
}

// StartSpan opens a span on the global tracer. Workers call it once per job.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err, if any, and ends span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
