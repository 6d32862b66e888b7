package jsepeval

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// Sentinel errors for malformed trees.
var (
	// ErrMissingNode indicates a required child node is nil.
	ErrMissingNode = errors.New("node missing")

	// ErrNodeTypeNotAllowed indicates the node type is not in the registry.
	ErrNodeTypeNotAllowed = errors.New("node type not allowed")

	// ErrUnsupportedNode indicates an allowed node type the evaluator cannot evaluate.
	ErrUnsupportedNode = errors.New("unsupported node type")

	// ErrInvalidObject indicates a member object that is not an identifier,
	// member expression or this.
	ErrInvalidObject = errors.New("invalid member object type")

	// ErrMissingProperty indicates a member expression without a property.
	ErrMissingProperty = errors.New("member property missing")

	// ErrInvalidProperty indicates a dotted property that is not an
	// identifier or member expression.
	ErrInvalidProperty = errors.New("invalid member property type")
)

// Sentinel errors for operators and calls.
var (
	// ErrUnknownOperator indicates an operator symbol absent from the registry.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrInvalidCallee indicates a callee that is not an identifier, member
	// expression or this.
	ErrInvalidCallee = errors.New("invalid callee type")

	// ErrNotCallable indicates the callee resolved to a non-function value.
	ErrNotCallable = value.ErrNotCallable
)

// StructuralError reports a malformed tree. It aborts the evaluation.
type StructuralError struct {
	// NodeType is the type of the offending node, empty when the node is missing.
	NodeType ast.Type
	// Expr is the offending node rendered with ast.Format.
	Expr string
	// Err is one of the structural sentinels.
	Err error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.NodeType == "" {
		return fmt.Sprintf("structural error: %v", e.Err)
	}
	return fmt.Sprintf("structural error at %s %q: %v", e.NodeType, e.Expr, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StructuralError) Unwrap() error {
	return e.Err
}

// UnknownOperatorError reports an operator missing from the registry at
// evaluation time.
type UnknownOperatorError struct {
	// Kind is "unary" or "binary".
	Kind string
	// Operator is the symbol that was looked up.
	Operator string
}

// Error implements the error interface.
func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown %s operator %q", e.Kind, e.Operator)
}

// Unwrap returns ErrUnknownOperator for errors.Is support.
func (e *UnknownOperatorError) Unwrap() error {
	return ErrUnknownOperator
}

// CallError reports a failed call expression. Err is ErrInvalidCallee,
// ErrNotCallable, an argument conversion error, or the error returned by
// the callee itself.
type CallError struct {
	// Callee is the callee expression rendered with ast.Format.
	Callee string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return fmt.Sprintf("call %s: %v", e.Callee, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CallError) Unwrap() error {
	return e.Err
}

// errorKind classifies err for the error_kind metric attribute.
func errorKind(err error) string {
	var (
		structErr *StructuralError
		opErr     *UnknownOperatorError
		callErr   *CallError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &structErr):
		return "structural"
	case errors.As(err, &opErr):
		return "operator"
	case errors.As(err, &callErr):
		return "call"
	default:
		return "other"
	}
}
