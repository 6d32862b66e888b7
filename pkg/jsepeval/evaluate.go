package jsepeval

import (
	"context"
	"sync"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
)

var (
	defaultOnce      sync.Once
	defaultEvaluator *Evaluator
)

// Default returns the package-level evaluator used by Evaluate and
// EvaluateJSON. It owns a private built-in registry.
func Default() *Evaluator {
	defaultOnce.Do(func() {
		defaultEvaluator = New()
	})
	return defaultEvaluator
}

// Evaluate evaluates root against data with the default evaluator.
func Evaluate(root ast.Node, data any) (any, error) {
	return Default().Evaluate(context.Background(), root, data)
}

// EvaluateJSON decodes a jsep tree from src and evaluates it with the
// default evaluator.
func EvaluateJSON(src []byte, data any) (any, error) {
	return Default().EvaluateJSON(context.Background(), src, data)
}

// EvaluateJSON decodes a jsep tree from src and evaluates it. Empty or
// null input is an empty expression.
func (e *Evaluator) EvaluateJSON(ctx context.Context, src []byte, data any) (any, error) {
	root, err := ast.FromJSON(src)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, root, data)
}
