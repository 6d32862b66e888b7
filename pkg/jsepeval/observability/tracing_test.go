package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestSpanManager(t *testing.T) (SpanManager, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewSpanManagerFor(tp), exporter
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestSpanManager_Success(t *testing.T) {
	sm, exporter := newTestSpanManager(t)

	ctx, span := sm.StartEvaluationSpan(context.Background(), "eval-1", "CallExpression")
	sm.RecordCall(ctx, "obj.f", 2)
	sm.EndEvaluationSpan(span, "string", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, SpanEvaluate, s.Name)
	assert.Equal(t, codes.Ok, s.Status.Code)

	attrs := attrMap(s.Attributes)
	assert.Equal(t, "eval-1", attrs["eval.id"].AsString())
	assert.Equal(t, "CallExpression", attrs["eval.root_type"].AsString())
	assert.Equal(t, "string", attrs["eval.result_type"].AsString())

	require.Len(t, s.Events, 1)
	assert.Equal(t, EventCall, s.Events[0].Name)
	ev := attrMap(s.Events[0].Attributes)
	assert.Equal(t, "obj.f", ev["call.callee"].AsString())
	assert.Equal(t, int64(2), ev["call.args"].AsInt64())
}

func TestSpanManager_Error(t *testing.T) {
	sm, exporter := newTestSpanManager(t)

	_, span := sm.StartEvaluationSpan(context.Background(), "eval-2", "Literal")
	sm.EndEvaluationSpan(span, "", errors.New("bad node"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "bad node", spans[0].Status.Description)
	assert.NotEmpty(t, spans[0].Events, "error should be recorded as an event")
	assert.NotContains(t, attrMap(spans[0].Attributes), attribute.Key("eval.result_type"))
}

func TestSpanManager_RecordCallWithoutSpan(t *testing.T) {
	sm, exporter := newTestSpanManager(t)
	assert.NotPanics(t, func() { sm.RecordCall(context.Background(), "f", 0) })
	assert.Empty(t, exporter.GetSpans())
}

func TestSpanManager_NilSpan(t *testing.T) {
	sm, _ := newTestSpanManager(t)
	assert.NotPanics(t, func() { sm.EndEvaluationSpan(nil, "", nil) })
}
