// Package observability carries the logging, metrics and tracing hooks of
// an evaluation.
//
// Logging uses log/slog; a nil logger is silent. Metrics and spans go
// through the MetricsRecorder and SpanManager interfaces, backed by
// OpenTelemetry or by the Noop implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EvalLog logs the lifecycle of one evaluation. Every record carries the
// evaluation ID. With a nil logger every method is a no-op.
type EvalLog struct {
	logger *slog.Logger
	start  time.Time
}

// StartEval logs the start of evaluation evalID of expr and returns the
// log for the rest of the evaluation.
func StartEval(logger *slog.Logger, evalID, expr string) *EvalLog {
	l := &EvalLog{start: time.Now()}
	if logger != nil {
		l.logger = logger.With(slog.String("eval_id", evalID))
		l.logger.Debug("evaluation starting", slog.String("expression", expr))
	}
	return l
}

// Logger returns the logger enriched with the evaluation ID, or nil.
func (l *EvalLog) Logger() *slog.Logger {
	return l.logger
}

// Elapsed returns the time since StartEval.
func (l *EvalLog) Elapsed() time.Duration {
	return time.Since(l.start)
}

// Done logs a successful evaluation.
func (l *EvalLog) Done(resultType string) {
	if l.logger == nil {
		return
	}
	l.logger.Debug("evaluation completed",
		slog.Float64("duration_ms", millis(l.Elapsed())),
		slog.String("result_type", resultType),
	)
}

// Failed logs a failed evaluation.
func (l *EvalLog) Failed(err error) {
	if l.logger == nil {
		return
	}
	l.logger.Error("evaluation failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", millis(l.Elapsed())),
	)
}

// LogRuleResult logs the outcome of a named rule.
func LogRuleResult(logger *slog.Logger, rule string, matched bool) {
	if logger == nil {
		return
	}
	logger.Debug("rule evaluated",
		slog.String("rule", rule),
		slog.Bool("matched", matched),
	)
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
