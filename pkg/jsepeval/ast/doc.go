/*
Package ast defines the expression tree consumed by the jsepeval evaluator.

# Overview

Trees follow the ESTree-like shape produced by the jsep expression parser.
Every node reports its Type, which is one of the jsep tag strings:

	Literal               42, 'text', true, null
	Identifier            a
	ThisExpression        this
	UnaryExpression       !a, -b
	BinaryExpression      a + b, a === b
	LogicalExpression     a && b
	ConditionalExpression a ? b : c
	MemberExpression      a.b, a[b]
	CallExpression        f(x)
	ArrayExpression       [a, 2]
	Compound              a, b

The set of node shapes is fixed by the Go types in this package. Whether a
shape may be evaluated is decided separately by the operator registry.

# Building Trees

Trees can be decoded from parser output:

	node, err := ast.FromJSON(jsepOutput)

or built directly:

	// a.b[c] === 3
	node := ast.Binary("===",
	    ast.Index(ast.Member(ast.Ident("a"), ast.Ident("b")), ast.Ident("c")),
	    ast.Lit(3),
	)

Nodes are never modified by the evaluator and may be shared between
concurrent evaluations.
*/
package ast
