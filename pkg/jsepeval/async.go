package jsepeval

import (
	"context"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
)

// Result is the outcome of an asynchronous evaluation.
type Result struct {
	Value any
	Err   error
}

// EvaluateAsync runs Evaluate on a new goroutine. The returned channel
// receives exactly one Result and is then closed.
func (e *Evaluator) EvaluateAsync(ctx context.Context, root ast.Node, data any) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		v, err := e.Evaluate(ctx, root, data)
		ch <- Result{Value: v, Err: err}
	}()
	return ch
}
