package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestRecorder(t *testing.T) (MetricsRecorder, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetricsRecorderFor(provider)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) *metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	t.Fatalf("metric %s not collected", name)
	return nil
}

// sumWhere adds the data points whose attribute key has the given value.
func sumWhere(t *testing.T, m *metricdata.Metrics, key string, want attribute.Value) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum[int64], got %T", m.Data)

	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v == want {
			total += dp.Value
		}
	}
	return total
}

func TestRecordEvaluation(t *testing.T) {
	m, reader := newTestRecorder(t)
	ctx := context.Background()

	m.RecordEvaluation(ctx, "BinaryExpression", 2*time.Millisecond, "")
	m.RecordEvaluation(ctx, "BinaryExpression", time.Millisecond, "operator")
	m.RecordEvaluation(ctx, "MemberExpression", time.Millisecond, "structural")

	count := collect(t, reader, MetricEvaluations)
	assert.Equal(t, int64(2), sumWhere(t, count, "root_type", attribute.StringValue("BinaryExpression")))
	assert.Equal(t, int64(1), sumWhere(t, count, "success", attribute.BoolValue(true)))

	errs := collect(t, reader, MetricErrors)
	assert.Equal(t, int64(1), sumWhere(t, errs, "error_kind", attribute.StringValue("structural")))
	assert.Equal(t, int64(1), sumWhere(t, errs, "error_kind", attribute.StringValue("operator")))

	latency := collect(t, reader, MetricLatency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var n uint64
	for _, dp := range hist.DataPoints {
		n += dp.Count
	}
	assert.Equal(t, uint64(3), n)
}

func TestRecordOperator(t *testing.T) {
	m, reader := newTestRecorder(t)

	m.RecordOperator(context.Background(), "binary", "===")
	m.RecordOperator(context.Background(), "binary", "===")
	m.RecordOperator(context.Background(), "unary", "!")

	calls := collect(t, reader, MetricOperators)
	assert.Equal(t, int64(2), sumWhere(t, calls, "operator", attribute.StringValue("===")))
	assert.Equal(t, int64(1), sumWhere(t, calls, "kind", attribute.StringValue("unary")))
}

func TestRecordCall(t *testing.T) {
	m, reader := newTestRecorder(t)

	m.RecordCall(context.Background(), "fmt.upper", false)
	m.RecordCall(context.Background(), "fmt.upper", true)
	m.RecordCall(context.Background(), "double", false)

	calls := collect(t, reader, MetricCalls)
	assert.Equal(t, int64(2), sumWhere(t, calls, "callee", attribute.StringValue("fmt.upper")))
	assert.Equal(t, int64(1), sumWhere(t, calls, "success", attribute.BoolValue(false)))
}

func TestNewMetricsRecorder_Shared(t *testing.T) {
	first := NewMetricsRecorder()
	require.NotNil(t, first)
	assert.Same(t, first, NewMetricsRecorder())
}
