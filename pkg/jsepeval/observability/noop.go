package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics discards every measurement.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

func (NoopMetrics) RecordEvaluation(context.Context, string, time.Duration, string) {}
func (NoopMetrics) RecordOperator(context.Context, string, string)                  {}
func (NoopMetrics) RecordCall(context.Context, string, bool)                        {}

// NoopSpanManager starts non-recording spans and leaves ctx untouched.
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

func (NoopSpanManager) StartEvaluationSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noop.Span{}
}

func (NoopSpanManager) RecordCall(context.Context, string, int)     {}
func (NoopSpanManager) EndEvaluationSpan(trace.Span, string, error) {}
