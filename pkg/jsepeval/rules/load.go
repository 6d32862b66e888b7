package rules

import (
	"fmt"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/config"
)

// RulesKey is the config key holding the rule list.
const RulesKey = "rules"

// Load reads a rule file (.yaml, .yml or .json) and builds a Set.
func Load(path string, opts ...Option) (*Set, error) {
	cfg, err := config.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return FromConfig(cfg, opts...)
}

// FromConfig builds a Set from the rules list in cfg. When cfg has an
// evaluator section and no WithEvaluator option is given, the set uses an
// evaluator configured from that section.
func FromConfig(cfg config.Config, opts ...Option) (*Set, error) {
	raw, ok := cfg.Any(RulesKey, []any{}).([]any)
	if !ok {
		return nil, fmt.Errorf("load rules: %q must be a list", RulesKey)
	}

	list := make([]Rule, 0, len(raw))
	for i, item := range raw {
		r, err := decodeRule(item)
		if err != nil {
			return nil, fmt.Errorf("load rules: rule %d: %w", i, err)
		}
		list = append(list, r)
	}

	if cfg.Has(config.EvaluatorSection) {
		ev := jsepeval.New(jsepeval.FromSettings(config.Evaluator(cfg))...)
		opts = append([]Option{WithEvaluator(ev)}, opts...)
	}
	return NewSet(list, opts...)
}

func decodeRule(item any) (Rule, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return Rule{}, fmt.Errorf("expected mapping, got %T", item)
	}
	entry := config.New(m)

	r := Rule{
		Name:        entry.String("name", ""),
		Description: entry.String("description", ""),
	}

	var (
		expr ast.Node
		err  error
	)
	switch src := entry.Any("expression", nil).(type) {
	case string:
		expr, err = ast.FromJSON([]byte(src))
	default:
		expr, err = ast.FromAny(src)
	}
	if err != nil {
		return Rule{}, fmt.Errorf("%s: expression: %w", r.Name, err)
	}
	r.Expression = expr
	return r, nil
}
