package operators

import (
	"slices"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
)

// UnaryFunc implements a prefix operator.
type UnaryFunc func(operand any) any

// BinaryFunc implements an infix operator. Logical operators use the same
// signature and receive both evaluated operands.
type BinaryFunc func(left, right any) any

// Registry holds the node types an evaluator accepts and its operator tables.
// The zero value is not usable; create one with New or NewEmpty.
type Registry struct {
	nodeTypes *table[ast.Type, struct{}]
	unary     *table[string, UnaryFunc]
	binary    *table[string, BinaryFunc]
}

// New returns a registry allowing every node type, with the built-in
// operators installed.
func New() *Registry {
	r := NewEmpty()
	for _, t := range ast.Types() {
		r.AllowNodeType(t)
	}
	r.unary.setMany(builtinUnary())
	r.binary.setMany(builtinBinary())
	return r
}

// NewEmpty returns a registry with no node types and no operators.
func NewEmpty() *Registry {
	return &Registry{
		nodeTypes: newTable[ast.Type, struct{}](),
		unary:     newTable[string, UnaryFunc](),
		binary:    newTable[string, BinaryFunc](),
	}
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	c := NewEmpty()
	c.nodeTypes.setMany(r.nodeTypes.snapshot())
	c.unary.setMany(r.unary.snapshot())
	c.binary.setMany(r.binary.snapshot())
	return c
}

// HasNodeType reports whether nodes of type t may be evaluated.
func (r *Registry) HasNodeType(t ast.Type) bool {
	return r.nodeTypes.has(t)
}

// AllowNodeType permits nodes of type t.
func (r *Registry) AllowNodeType(t ast.Type) {
	r.nodeTypes.set(t, struct{}{})
}

// DisallowNodeType forbids nodes of type t. Evaluating such a node fails.
func (r *Registry) DisallowNodeType(t ast.Type) {
	r.nodeTypes.remove(t)
}

// NodeTypes returns the allowed node types, sorted.
func (r *Registry) NodeTypes() []ast.Type {
	types := r.nodeTypes.keys()
	slices.Sort(types)
	return types
}

// UnaryOperator returns the implementation of a unary operator.
func (r *Registry) UnaryOperator(symbol string) (UnaryFunc, bool) {
	return r.unary.get(symbol)
}

// SetUnary installs or replaces a unary operator.
func (r *Registry) SetUnary(symbol string, fn UnaryFunc) {
	r.unary.set(symbol, fn)
}

// RemoveUnary removes a unary operator. Removing an absent symbol is a no-op.
func (r *Registry) RemoveUnary(symbol string) {
	r.unary.remove(symbol)
}

// UnaryOperators returns the installed unary symbols, sorted.
func (r *Registry) UnaryOperators() []string {
	symbols := r.unary.keys()
	slices.Sort(symbols)
	return symbols
}

// BinaryOperator returns the implementation of a binary or logical operator.
func (r *Registry) BinaryOperator(symbol string) (BinaryFunc, bool) {
	return r.binary.get(symbol)
}

// SetBinary installs or replaces a binary operator.
func (r *Registry) SetBinary(symbol string, fn BinaryFunc) {
	r.binary.set(symbol, fn)
}

// RemoveBinary removes a binary operator. Removing an absent symbol is a no-op.
func (r *Registry) RemoveBinary(symbol string) {
	r.binary.remove(symbol)
}

// BinaryOperators returns the installed binary symbols, sorted.
func (r *Registry) BinaryOperators() []string {
	symbols := r.binary.keys()
	slices.Sort(symbols)
	return symbols
}
