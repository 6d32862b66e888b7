package config

// EvaluatorSection is the config key holding evaluator settings.
const EvaluatorSection = "evaluator"

// EvaluatorSettings is the typed form of the evaluator section.
type EvaluatorSettings struct {
	// EmptyResult is returned when there is no expression. Defaults to true.
	EmptyResult any
	// Metrics enables OpenTelemetry metrics.
	Metrics bool
	// Tracing enables OpenTelemetry spans.
	Tracing bool
	// DisabledNodeTypes lists node types removed from the registry.
	DisabledNodeTypes []string
	// DisabledUnaryOperators lists unary symbols removed from the registry.
	DisabledUnaryOperators []string
	// DisabledBinaryOperators lists binary symbols removed from the registry.
	DisabledBinaryOperators []string
}

// DefaultEvaluatorSettings returns the settings used when nothing is configured.
func DefaultEvaluatorSettings() EvaluatorSettings {
	return EvaluatorSettings{EmptyResult: true}
}

// Evaluator extracts EvaluatorSettings from the evaluator section of c.
func Evaluator(c Config) EvaluatorSettings {
	s := c.Section(EvaluatorSection)
	return EvaluatorSettings{
		EmptyResult:             s.Any("empty_result", true),
		Metrics:                 s.Bool("metrics", false),
		Tracing:                 s.Bool("tracing", false),
		DisabledNodeTypes:       s.StringSlice("disabled_node_types", nil),
		DisabledUnaryOperators:  s.StringSlice("disabled_unary_operators", nil),
		DisabledBinaryOperators: s.StringSlice("disabled_binary_operators", nil),
	}
}
