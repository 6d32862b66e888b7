package ast

import "reflect"

// Type is the discriminant of an expression node.
type Type string

// Node types, named after the jsep tags.
const (
	TypeLiteral     Type = "Literal"
	TypeUnary       Type = "UnaryExpression"
	TypeBinary      Type = "BinaryExpression"
	TypeLogical     Type = "LogicalExpression"
	TypeConditional Type = "ConditionalExpression"
	TypeMember      Type = "MemberExpression"
	TypeIdentifier  Type = "Identifier"
	TypeThis        Type = "ThisExpression"
	TypeCall        Type = "CallExpression"
	TypeArray       Type = "ArrayExpression"
	TypeCompound    Type = "Compound"
)

// Types returns every node type this package can represent.
func Types() []Type {
	return []Type{
		TypeLiteral,
		TypeUnary,
		TypeBinary,
		TypeLogical,
		TypeConditional,
		TypeMember,
		TypeIdentifier,
		TypeThis,
		TypeCall,
		TypeArray,
		TypeCompound,
	}
}

// Node is an expression tree node.
type Node interface {
	Type() Type
}

// Literal is a constant value: number (float64), string, bool or nil.
type Literal struct {
	Value any
	// Raw is the source text, when the parser supplied it.
	Raw string
}

// Identifier names a value in the evaluation data.
type Identifier struct {
	Name string
}

// ThisExpression refers to the evaluation data itself.
type ThisExpression struct{}

// UnaryExpression applies a prefix operator to one operand.
type UnaryExpression struct {
	Operator string
	Argument Node
	Prefix   bool
}

// BinaryExpression applies an infix operator to two operands.
type BinaryExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// LogicalExpression is a BinaryExpression with && or ||.
type LogicalExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// ConditionalExpression is the ternary test ? consequent : alternate.
type ConditionalExpression struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

// MemberExpression is a property access. Computed is true for a[b],
// false for a.b.
type MemberExpression struct {
	Object   Node
	Property Node
	Computed bool
}

// CallExpression invokes Callee with Arguments.
type CallExpression struct {
	Callee    Node
	Arguments []Node
}

// ArrayExpression is an array literal.
type ArrayExpression struct {
	Elements []Node
}

// Compound is a comma separated sequence of expressions.
type Compound struct {
	Body []Node
}

func (*Literal) Type() Type               { return TypeLiteral }
func (*Identifier) Type() Type            { return TypeIdentifier }
func (*ThisExpression) Type() Type        { return TypeThis }
func (*UnaryExpression) Type() Type       { return TypeUnary }
func (*BinaryExpression) Type() Type      { return TypeBinary }
func (*LogicalExpression) Type() Type     { return TypeLogical }
func (*ConditionalExpression) Type() Type { return TypeConditional }
func (*MemberExpression) Type() Type      { return TypeMember }
func (*CallExpression) Type() Type        { return TypeCall }
func (*ArrayExpression) Type() Type       { return TypeArray }
func (*Compound) Type() Type              { return TypeCompound }

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
