package jsepeval

import (
	"log/slog"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/config"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/observability"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/operators"
)

// evalConfig holds Evaluator configuration.
type evalConfig struct {
	registry       *operators.Registry
	emptyResult    any
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	metricsEnabled bool
	tracingEnabled bool
}

// defaultEvalConfig returns the default configuration: a private built-in
// registry, true for empty trees, no logging, metrics or tracing.
func defaultEvalConfig() evalConfig {
	return evalConfig{
		emptyResult: true,
		metrics:     observability.NoopMetrics{},
		spans:       observability.NoopSpanManager{},
	}
}

// Option configures an Evaluator.
type Option func(*evalConfig)

// WithRegistry makes the evaluator use r. Mutations of r are visible to
// subsequent evaluations. Sharing r between evaluators is safe.
func WithRegistry(r *operators.Registry) Option {
	return func(c *evalConfig) {
		c.registry = r
	}
}

// WithEmptyResult sets the value returned when there is no expression.
// Default: true
//
// The default suits evaluators used as optional filter predicates, where a
// missing condition accepts everything.
func WithEmptyResult(v any) Option {
	return func(c *evalConfig) {
		c.emptyResult = v
	}
}

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *evalConfig) {
		c.logger = logger
	}
}

// WithMetrics enables or disables OpenTelemetry metrics.
// Default: disabled
func WithMetrics(enabled bool) Option {
	return func(c *evalConfig) {
		c.metricsEnabled = enabled
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder enables metrics using m.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(c *evalConfig) {
		if m == nil {
			return
		}
		c.metricsEnabled = true
		c.metrics = m
	}
}

// WithTracing enables or disables OpenTelemetry spans.
// Default: disabled
func WithTracing(enabled bool) Option {
	return func(c *evalConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithSpanManager enables tracing using m.
func WithSpanManager(m observability.SpanManager) Option {
	return func(c *evalConfig) {
		if m == nil {
			return
		}
		c.tracingEnabled = true
		c.spans = m
	}
}

// FromSettings converts loaded settings into options. Disabled node types
// and operators are removed from a fresh built-in registry, so the result
// does not affect other evaluators.
//
// Example:
//
//	cfg, _ := config.FromFile("jsepeval.yaml")
//	ev := jsepeval.New(jsepeval.FromSettings(config.Evaluator(cfg))...)
func FromSettings(s config.EvaluatorSettings) []Option {
	reg := operators.New()
	for _, t := range s.DisabledNodeTypes {
		reg.DisallowNodeType(ast.Type(t))
	}
	for _, sym := range s.DisabledUnaryOperators {
		reg.RemoveUnary(sym)
	}
	for _, sym := range s.DisabledBinaryOperators {
		reg.RemoveBinary(sym)
	}

	return []Option{
		WithRegistry(reg),
		WithEmptyResult(s.EmptyResult),
		WithMetrics(s.Metrics),
		WithTracing(s.Tracing),
	}
}
