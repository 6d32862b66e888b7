package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span and event names.
const (
	SpanEvaluate = "jsepeval.evaluate"
	EventCall    = "jsepeval.call"
)

// SpanManager opens one span per evaluation and annotates it with the
// function calls made while evaluating.
type SpanManager interface {
	// StartEvaluationSpan starts the span for one evaluation.
	StartEvaluationSpan(ctx context.Context, evalID, rootType string) (context.Context, trace.Span)

	// RecordCall adds a call event to the evaluation span in ctx.
	RecordCall(ctx context.Context, callee string, args int)

	// EndEvaluationSpan ends span with the result type or the error.
	EndEvaluationSpan(span trace.Span, resultType string, err error)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager using the global tracer provider.
func NewSpanManager() SpanManager {
	return NewSpanManagerFor(otel.GetTracerProvider())
}

// NewSpanManagerFor returns a SpanManager using tp.
func NewSpanManagerFor(tp trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: tp.Tracer(instrumentationName)}
}

func (m *otelSpanManager) StartEvaluationSpan(ctx context.Context, evalID, rootType string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, SpanEvaluate,
		trace.WithAttributes(
			attribute.String("eval.id", evalID),
			attribute.String("eval.root_type", rootType),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) RecordCall(ctx context.Context, callee string, args int) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(EventCall, trace.WithAttributes(
		attribute.String("call.callee", callee),
		attribute.Int("call.args", args),
	))
}

func (m *otelSpanManager) EndEvaluationSpan(span trace.Span, resultType string, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("eval.result_type", resultType))
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
