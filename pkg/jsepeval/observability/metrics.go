package observability

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentationName scopes every meter and tracer of this module.
const instrumentationName = "github.com/randalmurphal/jsepeval"

// Instrument names.
const (
	MetricEvaluations = "jsepeval.evaluations"
	MetricLatency     = "jsepeval.evaluation.latency_ms"
	MetricErrors      = "jsepeval.evaluation.errors"
	MetricOperators   = "jsepeval.operator.calls"
	MetricCalls       = "jsepeval.function.calls"
)

// MetricsRecorder records evaluation metrics.
type MetricsRecorder interface {
	// RecordEvaluation records one top-level evaluation. errKind is empty on
	// success, otherwise a short classification such as "structural".
	RecordEvaluation(ctx context.Context, rootType string, duration time.Duration, errKind string)

	// RecordOperator records one operator application.
	RecordOperator(ctx context.Context, kind, symbol string)

	// RecordCall records one function invocation from a call expression.
	RecordCall(ctx context.Context, callee string, failed bool)
}

type otelMetrics struct {
	evaluations metric.Int64Counter
	latency     metric.Float64Histogram
	errors      metric.Int64Counter
	operators   metric.Int64Counter
	calls       metric.Int64Counter
}

var (
	globalMetrics     MetricsRecorder
	globalMetricsOnce sync.Once
)

// NewMetricsRecorder returns the recorder bound to the global meter
// provider. It is created once; instruments follow later calls to
// otel.SetMeterProvider. If the instruments cannot be created the no-op
// recorder is returned.
func NewMetricsRecorder() MetricsRecorder {
	globalMetricsOnce.Do(func() {
		m, err := NewMetricsRecorderFor(otel.GetMeterProvider())
		if err != nil {
			slog.Warn("metrics initialization failed, using no-op recorder",
				slog.String("error", err.Error()))
			m = NoopMetrics{}
		}
		globalMetrics = m
	})
	return globalMetrics
}

// NewMetricsRecorderFor returns a recorder whose instruments come from mp.
func NewMetricsRecorderFor(mp metric.MeterProvider) (MetricsRecorder, error) {
	meter := mp.Meter(instrumentationName)

	var errs []error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		errs = append(errs, err)
		return c
	}

	m := &otelMetrics{
		evaluations: counter(MetricEvaluations, "Expression evaluations"),
		errors:      counter(MetricErrors, "Failed expression evaluations"),
		operators:   counter(MetricOperators, "Operator applications"),
		calls:       counter(MetricCalls, "Function invocations from call expressions"),
	}
	latency, err := meter.Float64Histogram(MetricLatency,
		metric.WithDescription("Evaluation latency"),
		metric.WithUnit("ms"),
	)
	m.latency = latency
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *otelMetrics) RecordEvaluation(ctx context.Context, rootType string, duration time.Duration, errKind string) {
	attrs := metric.WithAttributes(
		attribute.String("root_type", rootType),
		attribute.Bool("success", errKind == ""),
	)
	m.evaluations.Add(ctx, 1, attrs)
	m.latency.Record(ctx, millis(duration), attrs)

	if errKind != "" {
		m.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("root_type", rootType),
			attribute.String("error_kind", errKind),
		))
	}
}

func (m *otelMetrics) RecordOperator(ctx context.Context, kind, symbol string) {
	m.operators.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("operator", symbol),
	))
}

func (m *otelMetrics) RecordCall(ctx context.Context, callee string, failed bool) {
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("callee", callee),
		attribute.Bool("success", !failed),
	))
}
