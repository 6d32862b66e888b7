package rules_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/config"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/rules"
)

const ruleYAML = `
rules:
  - name: adult
    description: at least 18
    expression:
      type: BinaryExpression
      operator: ">="
      left: {type: Identifier, name: age}
      right: {type: Literal, value: 18, raw: "18"}
  - name: admin
    expression: '{"type":"BinaryExpression","operator":"===","left":{"type":"MemberExpression","computed":true,"object":{"type":"Identifier","name":"roles"},"property":{"type":"Literal","value":0}},"right":{"type":"Literal","value":"admin"}}'
  - name: anyone
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	set, err := rules.Load(writeFile(t, "rules.yaml", ruleYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"adult", "admin", "anyone"}, set.Names())
	r, _ := set.Get("adult")
	assert.Equal(t, "at least 18", r.Description)

	got, err := set.Match(context.Background(), map[string]any{"age": 40, "roles": []any{"admin"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"adult", "admin", "anyone"}, got)

	got, err = set.Match(context.Background(), map[string]any{"age": 4, "roles": []string{"dev"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"anyone"}, got)
}

func TestLoad_JSON(t *testing.T) {
	src := `{"rules":[{"name":"flag","expression":{"type":"Identifier","name":"flag"}}]}`
	set, err := rules.Load(writeFile(t, "rules.json", src))
	require.NoError(t, err)

	ok, err := set.Test(context.Background(), "flag", map[string]any{"flag": true})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"bad extension", "rules.txt", "rules: []", "unsupported config file extension"},
		{"rules not a list", "rules.yaml", "rules: 3", "must be a list"},
		{"entry not a mapping", "rules.yaml", "rules: [3]", "expected mapping"},
		{"bad expression", "rules.yaml", "rules:\n  - name: x\n    expression: {type: Regex}", "unknown node type"},
		{"bad json expression", "rules.yaml", "rules:\n  - name: x\n    expression: '{'", "parse json"},
		{"duplicate", "rules.yaml", "rules:\n  - name: x\n  - name: x", "duplicate rule name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFromConfig_EvaluatorSection(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
evaluator:
  empty_result: false
  disabled_node_types: [CallExpression]
rules:
  - name: empty
  - name: call
    expression: {type: CallExpression, callee: {type: Identifier, name: f}, arguments: []}
`))
	require.NoError(t, err)

	set, err := rules.FromConfig(cfg)
	require.NoError(t, err)

	ok, err := set.Test(context.Background(), "empty", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = set.Test(context.Background(), "call", map[string]any{"f": func() bool { return true }})
	assert.ErrorIs(t, err, jsepeval.ErrNodeTypeNotAllowed)

	// an explicit evaluator wins over the section
	set, err = rules.FromConfig(cfg, rules.WithEvaluator(jsepeval.New()))
	require.NoError(t, err)
	ok, err = set.Test(context.Background(), "call", map[string]any{"f": func() bool { return true }})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFromConfig_NoRules(t *testing.T) {
	set, err := rules.FromConfig(config.New(nil))
	require.NoError(t, err)
	assert.Zero(t, set.Len())
}
