package jsepeval

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/lookup"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/observability"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/operators"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// Evaluator walks expression trees against data values.
//
// An Evaluator is safe for concurrent use. Its registry is consulted on
// every node visit, so changes to the registry apply to the next node
// evaluated.
type Evaluator struct {
	cfg evalConfig
}

// New creates an Evaluator. Without WithRegistry it gets its own
// built-in registry.
func New(opts ...Option) *Evaluator {
	cfg := defaultEvalConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = operators.New()
	}
	return &Evaluator{cfg: cfg}
}

// Registry returns the evaluator's registry for customisation.
func (e *Evaluator) Registry() *operators.Registry {
	return e.cfg.registry
}

// Evaluate evaluates root against data.
//
// A nil root yields the configured empty result (true by default).
// Malformed trees, unknown operators and failed calls return an error and
// no partial result. Missing data never fails: a path through an absent
// property yields value.Undefined.
//
// Example:
//
//	tree := ast.Binary("===", ast.Path("a", "b"), ast.Lit(3))
//	ok, err := ev.Evaluate(ctx, tree, map[string]any{"a": map[string]any{"b": 3}})
func (e *Evaluator) Evaluate(ctx context.Context, root ast.Node, data any) (result any, err error) {
	if ast.IsNil(root) {
		return e.cfg.emptyResult, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	evalID := uuid.NewString()
	rootType := string(root.Type())
	log := observability.StartEval(e.cfg.logger, evalID, ast.Format(root))

	if e.cfg.tracingEnabled {
		var span trace.Span
		ctx, span = e.cfg.spans.StartEvaluationSpan(ctx, evalID, rootType)
		defer func() {
			e.cfg.spans.EndEvaluationSpan(span, value.TypeOf(result), err)
		}()
	}

	s := &state{
		ctx:     ctx,
		cfg:     &e.cfg,
		reg:     e.cfg.registry,
		data:    data,
		logger:  log.Logger(),
		metrics: e.cfg.metricsEnabled,
		tracing: e.cfg.tracingEnabled,
	}
	result, err = s.eval(root)

	e.cfg.metrics.RecordEvaluation(ctx, rootType, log.Elapsed(), errorKind(err))
	if err != nil {
		log.Failed(err)
		return nil, err
	}
	log.Done(value.TypeOf(result))
	return result, nil
}

// state is the per-call evaluation state.
type state struct {
	ctx     context.Context
	cfg     *evalConfig
	reg     *operators.Registry
	data    any
	logger  *slog.Logger
	metrics bool
	tracing bool
}

// check rejects missing nodes and node types the registry does not allow.
func (s *state) check(n ast.Node) error {
	if ast.IsNil(n) {
		return &StructuralError{Err: ErrMissingNode}
	}
	if !s.reg.HasNodeType(n.Type()) {
		return structural(n, ErrNodeTypeNotAllowed)
	}
	return nil
}

func structural(n ast.Node, err error) *StructuralError {
	return &StructuralError{NodeType: n.Type(), Expr: ast.Format(n), Err: err}
}

func (s *state) eval(n ast.Node) (any, error) {
	if err := s.check(n); err != nil {
		return nil, err
	}

	switch node := n.(type) {
	case *ast.Literal:
		return node.Value, nil

	case *ast.ThisExpression:
		return s.data, nil

	case *ast.Compound:
		var last any = value.Undefined
		for _, expr := range node.Body {
			v, err := s.eval(expr)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil

	case *ast.ArrayExpression:
		out := make([]any, 0, len(node.Elements))
		for _, el := range node.Elements {
			v, err := s.eval(el)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case *ast.UnaryExpression:
		op, ok := s.reg.UnaryOperator(node.Operator)
		if !ok {
			return nil, &UnknownOperatorError{Kind: "unary", Operator: node.Operator}
		}
		arg, err := s.eval(node.Argument)
		if err != nil {
			return nil, err
		}
		s.recordOperator("unary", node.Operator)
		return op(arg), nil

	case *ast.BinaryExpression:
		return s.binary(node.Operator, node.Left, node.Right)

	case *ast.LogicalExpression:
		return s.binary(node.Operator, node.Left, node.Right)

	case *ast.ConditionalExpression:
		test, err := s.eval(node.Test)
		if err != nil {
			return nil, err
		}
		if value.Truthy(test) {
			return s.eval(node.Consequent)
		}
		return s.eval(node.Alternate)

	case *ast.CallExpression:
		return s.call(node)

	case *ast.Identifier, *ast.MemberExpression:
		path, err := s.resolvePath(n)
		if err != nil {
			return nil, err
		}
		return lookup.Get(s.data, path), nil
	}

	return nil, structural(n, ErrUnsupportedNode)
}

// binary evaluates both operands, left then right, and applies the
// operator. Logical operators do not short-circuit.
func (s *state) binary(symbol string, left, right ast.Node) (any, error) {
	op, ok := s.reg.BinaryOperator(symbol)
	if !ok {
		return nil, &UnknownOperatorError{Kind: "binary", Operator: symbol}
	}
	l, err := s.eval(left)
	if err != nil {
		return nil, err
	}
	r, err := s.eval(right)
	if err != nil {
		return nil, err
	}
	s.recordOperator("binary", symbol)
	return op(l, r), nil
}

// call invokes the callee without a receiver.
func (s *state) call(node *ast.CallExpression) (any, error) {
	callee := node.Callee
	if err := s.check(callee); err != nil {
		return nil, err
	}
	switch callee.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.ThisExpression:
	default:
		return nil, &CallError{Callee: ast.Format(callee), Err: ErrInvalidCallee}
	}

	fn, err := s.eval(callee)
	if err != nil {
		return nil, err
	}
	args := make([]any, 0, len(node.Arguments))
	for _, arg := range node.Arguments {
		v, err := s.eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	name := ast.Format(callee)
	if s.logger != nil {
		s.logger.Debug("invoking callee",
			slog.String("callee", name),
			slog.Int("args", len(args)),
		)
	}
	if s.tracing {
		s.cfg.spans.RecordCall(s.ctx, name, len(args))
	}

	out, err := value.Call(fn, args)
	if s.metrics {
		s.cfg.metrics.RecordCall(s.ctx, name, err != nil)
	}
	if err != nil {
		return nil, &CallError{Callee: name, Err: err}
	}
	return out, nil
}

func (s *state) recordOperator(kind, symbol string) {
	if s.metrics {
		s.cfg.metrics.RecordOperator(s.ctx, kind, symbol)
	}
}
