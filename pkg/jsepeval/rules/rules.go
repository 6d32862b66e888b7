package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/observability"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// Sentinel errors for rule sets.
var (
	// ErrRuleNotFound indicates a lookup of an unknown rule name.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrDuplicateRule indicates two rules share a name.
	ErrDuplicateRule = errors.New("duplicate rule name")

	// ErrEmptyName indicates a rule without a name.
	ErrEmptyName = errors.New("rule name is empty")
)

// Rule is a named expression.
type Rule struct {
	Name        string
	Description string
	// Expression may be nil, in which case the rule is always satisfied.
	Expression ast.Node
}

// RuleError wraps an error from a specific rule.
type RuleError struct {
	// Rule is the rule name.
	Rule string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.Rule, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// Set is an ordered collection of uniquely named rules sharing one evaluator.
// A Set is safe for concurrent use; it is not modified after construction.
type Set struct {
	rules     []Rule
	index     map[string]int
	evaluator *jsepeval.Evaluator
	logger    *slog.Logger
}

// Option configures a Set.
type Option func(*Set)

// WithEvaluator sets the evaluator used for every rule.
// Default: an evaluator with the built-in registry, or one configured from
// the evaluator section when loading from config.
func WithEvaluator(ev *jsepeval.Evaluator) Option {
	return func(s *Set) {
		s.evaluator = ev
	}
}

// WithLogger sets the logger for rule outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Set) {
		s.logger = logger
	}
}

// NewSet builds a Set from rules, preserving their order.
func NewSet(rules []Rule, opts ...Option) (*Set, error) {
	s := &Set{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.evaluator == nil {
		s.evaluator = jsepeval.New()
	}

	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: %w", i, ErrEmptyName)
		}
		if _, ok := s.index[r.Name]; ok {
			return nil, &RuleError{Rule: r.Name, Err: ErrDuplicateRule}
		}
		s.index[r.Name] = len(s.rules)
		s.rules = append(s.rules, r)
	}
	return s, nil
}

// Len returns the number of rules.
func (s *Set) Len() int {
	return len(s.rules)
}

// Names returns the rule names in order.
func (s *Set) Names() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Name
	}
	return names
}

// Get returns the named rule.
func (s *Set) Get(name string) (Rule, bool) {
	i, ok := s.index[name]
	if !ok {
		return Rule{}, false
	}
	return s.rules[i], true
}

// Evaluate evaluates the named rule against data and returns its raw value.
func (s *Set) Evaluate(ctx context.Context, name string, data any) (any, error) {
	r, ok := s.Get(name)
	if !ok {
		return nil, &RuleError{Rule: name, Err: ErrRuleNotFound}
	}
	v, err := s.evaluator.Evaluate(ctx, r.Expression, data)
	if err != nil {
		return nil, &RuleError{Rule: name, Err: err}
	}
	return v, nil
}

// Test reports whether the named rule's value is truthy for data.
func (s *Set) Test(ctx context.Context, name string, data any) (bool, error) {
	v, err := s.Evaluate(ctx, name, data)
	if err != nil {
		return false, err
	}
	matched := value.Truthy(v)
	observability.LogRuleResult(s.logger, name, matched)
	return matched, nil
}

// Match returns the names of the rules whose value is truthy for data, in
// rule order. The first failing rule aborts the match.
func (s *Set) Match(ctx context.Context, data any) ([]string, error) {
	var matched []string
	for _, r := range s.rules {
		ok, err := s.Test(ctx, r.Name, data)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, r.Name)
		}
	}
	return matched, nil
}

// All reports whether every rule is satisfied by data. An empty set is
// satisfied by anything.
func (s *Set) All(ctx context.Context, data any) (bool, error) {
	for _, r := range s.rules {
		ok, err := s.Test(ctx, r.Name, data)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Filter returns the items that satisfy every rule, in order.
func (s *Set) Filter(ctx context.Context, items []any) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		ok, err := s.All(ctx, item)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}
