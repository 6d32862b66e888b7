package config_test

import (
	"testing"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Defaults(t *testing.T) {
	s := config.Evaluator(config.New(nil))

	assert.Equal(t, config.DefaultEvaluatorSettings(), s)
	assert.Equal(t, true, s.EmptyResult)
}

func TestEvaluator_FromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
evaluator:
  empty_result: false
  metrics: true
  tracing: true
  disabled_node_types: [CallExpression, ThisExpression]
  disabled_unary_operators: ["~"]
  disabled_binary_operators: ["**", ">>>"]
`))
	require.NoError(t, err)

	s := config.Evaluator(cfg)
	assert.Equal(t, false, s.EmptyResult)
	assert.True(t, s.Metrics)
	assert.True(t, s.Tracing)
	assert.Equal(t, []string{"CallExpression", "ThisExpression"}, s.DisabledNodeTypes)
	assert.Equal(t, []string{"~"}, s.DisabledUnaryOperators)
	assert.Equal(t, []string{"**", ">>>"}, s.DisabledBinaryOperators)
}

func TestEvaluator_NullEmptyResult(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"evaluator":{"empty_result":null}}`))
	require.NoError(t, err)

	assert.Nil(t, config.Evaluator(cfg).EmptyResult)
}
