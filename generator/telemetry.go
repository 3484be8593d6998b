package generator

import (
	"context"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/erraggy/oastypes"
)

const instrumentationName = "github.com/erraggy/oastypes/generator"

// telemetry holds the tracer and instruments of one Generator.
type telemetry struct {
	tracer    trace.Tracer
	stored    metric.Int64Counter
	conflicts metric.Int64Counter
}

func newTelemetry(cfg *config) *telemetry {
	tp := cfg.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := cfg.meterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	meter := mp.Meter(instrumentationName, metric.WithInstrumentationVersion(oastypes.Version()))
	stored, _ := meter.Int64Counter(
		"oastypes.schemas.stored",
		metric.WithDescription("Number of schema definitions stored in a repository"),
		metric.WithUnit("{schema}"),
	)
	conflicts, _ := meter.Int64Counter(
		"oastypes.schemas.conflicts",
		metric.WithDescription("Number of schema identifier conflicts"),
		metric.WithUnit("{conflict}"),
	)

	return &telemetry{
		tracer:    tp.Tracer(instrumentationName, trace.WithInstrumentationVersion(oastypes.Version())),
		stored:    stored,
		conflicts: conflicts,
	}
}

// start opens a span for a generator operation.
func (t *telemetry) start(ctx context.Context, name string, typ reflect.Type) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{}
	if typ != nil {
		attrs = append(attrs, attribute.String("oastypes.type", typeString(typ)))
	}
	return t.tracer.Start(ctx, "oastypes."+name, trace.WithAttributes(attrs...))
}

// end records the outcome of a span and closes it.
func (t *telemetry) end(span trace.Span, repo *Repository, err error) {
	span.SetAttributes(
		attribute.Int("oastypes.repository.size", repo.Len()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (t *telemetry) schemaStored(ctx context.Context, id string) {
	t.stored.Add(ctx, 1)
	trace.SpanFromContext(ctx).AddEvent("schema.stored", trace.WithAttributes(attribute.String("oastypes.schema.id", id)))
}

func (t *telemetry) conflict(ctx context.Context, id string) {
	t.conflicts.Add(ctx, 1, metric.WithAttributes(attribute.String("oastypes.schema.id", id)))
}
