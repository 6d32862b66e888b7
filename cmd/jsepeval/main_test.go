package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
)

func tree(t *testing.T, n ast.Node) string {
	t.Helper()
	out, err := json.Marshal(ast.Encode(n))
	require.NoError(t, err)
	return string(out)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCmd(t, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: jsepeval")

	code, stdout, _ := runCmd(t, "", "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "commands:")

	code, _, stderr = runCmd(t, "", "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)

	code, _, _ = runCmd(t, "", "eval", "-h")
	assert.Equal(t, 0, code)
}

func TestEval(t *testing.T) {
	sum := tree(t, ast.Binary("+", ast.Ident("a"), ast.Lit(1)))

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"inline", "", []string{"-expr", sum, "-data", `{"a": 2}`}, "3\n"},
		{"expression from stdin", sum, []string{"-expr", "-", "-data", `{"a": 2}`}, "3\n"},
		{"data from stdin", `{"a": "x"}`, []string{"-expr", sum, "-data", "-"}, "\"x1\"\n"},
		{"undefined", "", []string{"-expr", tree(t, ast.Path("a", "b"))}, "undefined\n"},
		{"array", "", []string{"-expr", tree(t, ast.Array(ast.Lit(1), ast.Lit("s"))), "-data", "{}"}, "[1,\"s\"]\n"},
		{"null tree", "", []string{"-expr", "null"}, "true\n"},
		{"nested undefined", "", []string{"-expr", tree(t, ast.Array(ast.Ident("missing"), ast.Lit(1))), "-data", "{}"}, "[null,1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCmd(t, tt.stdin, append([]string{"eval"}, tt.args...)...)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing expr", nil, "-expr is required"},
		{"bad tree", []string{"-expr", `{"type": "Nope"}`}, `unknown node type "Nope"`},
		{"bad data", []string{"-expr", "null", "-data", "{"}, "parse data"},
		{"structural", []string{"-expr", tree(t, ast.Binary("+", nil, ast.Lit(1)))}, "structural error"},
		{"missing config", []string{"-expr", "null", "-config", "/nonexistent/jsepeval.yaml"}, "read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCmd(t, "", append([]string{"eval"}, tt.args...)...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestEval_ConfigDisablesOperator(t *testing.T) {
	cfg := writeFile(t, "jsepeval.yaml", `
evaluator:
  disabled_binary_operators: ["+"]
`)
	code, _, stderr := runCmd(t, "", "eval",
		"-config", cfg,
		"-expr", tree(t, ast.Binary("+", ast.Lit(1), ast.Lit(1))),
	)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unknown binary operator "+"`)
}

func TestEval_LayeredConfig(t *testing.T) {
	base := writeFile(t, "base.yaml", `
evaluator:
  disabled_binary_operators: ["+"]
`)
	local := writeFile(t, "local.json", `{"evaluator": {"disabled_binary_operators": []}}`)

	code, stdout, stderr := runCmd(t, "", "eval",
		"-config", base+","+local,
		"-expr", tree(t, ast.Binary("+", ast.Lit(1), ast.Lit(1))),
	)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "2\n", stdout)
}

func TestEval_Script(t *testing.T) {
	mod := writeFile(t, "helpers.star", "def double(x):\n    return x * 2\n")

	code, stdout, stderr := runCmd(t, "", "eval",
		"-script", mod,
		"-expr", tree(t, ast.Call(ast.Ident("double"), ast.Ident("a"))),
		"-data", `{"a": 21}`,
	)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "42\n", stdout)
}

const rulesYAML = `
rules:
  - name: adult
    expression:
      type: BinaryExpression
      operator: ">="
      left: {type: Identifier, name: age}
      right: {type: Literal, value: 18}
  - name: named
    expression: {type: Identifier, name: name}
`

func TestRules(t *testing.T) {
	cfg := writeFile(t, "rules.yaml", rulesYAML)

	tests := []struct {
		name string
		data string
		want string
	}{
		{"match both", `{"age": 30, "name": "kim"}`, "[\"adult\",\"named\"]\n"},
		{"match none", `{"age": 3}`, "[]\n"},
		{"filter", `[{"age": 30, "name": "a"}, {"age": 30}, {"age": 3, "name": "b"}]`, "[{\"age\":30,\"name\":\"a\"}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCmd(t, "", "rules", "-config", cfg, "-data", tt.data)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRules_RequiresConfig(t *testing.T) {
	code, _, stderr := runCmd(t, "", "rules")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "-config is required")
}

func TestNewLogger_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Warn("hello")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), buf.String())

	buf.Reset()
	newLogger(&buf, false).Debug("quiet")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}
