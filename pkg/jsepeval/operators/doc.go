// Package operators provides the capability registry consulted by the
// jsepeval evaluator: the set of node types it may evaluate and the tables
// of unary and binary operator implementations.
//
// # Basic Usage
//
// New returns a registry holding every node type and the built-in JS
// operators:
//
//	reg := operators.New()
//	reg.SetBinary("in", func(a, b any) any { ... }) // add
//	reg.RemoveBinary("**")                           // forbid
//	reg.DisallowNodeType(ast.TypeCall)               // no function calls
//
// # Lookup At Evaluation Time
//
// The evaluator looks operators and node types up on every node visit, so a
// change is visible to the next evaluation without rebuilding any tree. A
// common pattern replaces an operator for a single call and restores it:
//
//	orig, _ := reg.BinaryOperator("+")
//	reg.SetBinary("+", func(a, b any) any { return value.ToString(a) + value.ToString(b) })
//	result, err := ev.Evaluate(ctx, tree, data)
//	reg.SetBinary("+", orig)
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Mutation is immediate
// and shared by every evaluator using the registry; use Clone to give an
// evaluation its own copy.
package operators
