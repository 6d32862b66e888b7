/*
Package jsepeval evaluates jsep expression trees against Go data.

The parser is external: trees come from jsep output decoded with
ast.FromJSON or ast.FromYAML, or are built with the ast builders.

# Quick Start

	tree := ast.Binary("===", ast.Path("a", "b", "c", "d"), ast.Lit(3))
	ok, err := jsepeval.Evaluate(tree, map[string]any{
	    "a": map[string]any{"b": map[string]any{"c": map[string]any{"d": 3}}},
	})
	// ok == true

# Registry

Each Evaluator owns an operators.Registry holding the allowed node types
and the unary and binary operator tables. The registry is read on every
node visit, so removing an operator makes the next evaluation that uses
it fail with *UnknownOperatorError:

	ev := jsepeval.New()
	plus, _ := ev.Registry().BinaryOperator("+")
	ev.Registry().RemoveBinary("+")
	_, err := ev.Evaluate(ctx, ast.Binary("+", ast.Lit(1), ast.Lit(2)), nil)
	// errors.Is(err, jsepeval.ErrUnknownOperator)
	ev.Registry().SetBinary("+", plus)

Pass operators.New().Clone() or a fresh registry with WithRegistry to keep
customisations isolated.

# Semantics

  - Literal yields its value; this yields the data value itself.
  - Compound evaluates every expression and yields the last.
  - Binary and logical operators evaluate both operands, left first.
  - Conditional evaluates only the selected branch.
  - Member and identifier chains become a lookup.Path resolved against the
    data. Absent properties yield value.Undefined instead of failing.
  - Calls invoke the callee with no receiver.

A nil tree yields true unless WithEmptyResult says otherwise.

# Errors

  - *StructuralError: missing nodes, disallowed types, bad member chains
  - *UnknownOperatorError: operator not in the registry
  - *CallError: bad callee, non-function callee, or an error from the callee

# Observability

WithLogger, WithMetrics and WithTracing enable slog logging, OpenTelemetry
metrics and spans. Each evaluation gets a UUID used in logs and spans.
*/
package jsepeval
