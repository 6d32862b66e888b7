package jsepeval

import (
	"slices"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/lookup"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// resolvePath reduces an Identifier or MemberExpression chain to a path
// relative to the data root. Computed properties are evaluated against the
// same data. A this-rooted chain contributes no segment for this.
func (s *state) resolvePath(n ast.Node) (lookup.Path, error) {
	if err := s.check(n); err != nil {
		return nil, err
	}

	switch node := n.(type) {
	case *ast.Identifier:
		return lookup.Path{{Key: node.Name}}, nil
	case *ast.MemberExpression:
		return s.memberPath(node)
	}
	return nil, structural(n, ErrInvalidObject)
}

func (s *state) memberPath(node *ast.MemberExpression) (lookup.Path, error) {
	if err := s.check(node.Object); err != nil {
		return nil, err
	}

	var base lookup.Path
	switch node.Object.(type) {
	case *ast.ThisExpression:
	case *ast.Identifier, *ast.MemberExpression:
		p, err := s.resolvePath(node.Object)
		if err != nil {
			return nil, err
		}
		base = p
	default:
		return nil, structural(node.Object, ErrInvalidObject)
	}

	if ast.IsNil(node.Property) {
		return nil, structural(node, ErrMissingProperty)
	}

	if node.Computed {
		key, err := s.eval(node.Property)
		if err != nil {
			return nil, err
		}
		return base.Bracket(value.ToPropertyKey(key)), nil
	}

	if err := s.check(node.Property); err != nil {
		return nil, err
	}
	switch prop := node.Property.(type) {
	case *ast.Identifier:
		return base.Dot(prop.Name), nil
	case *ast.MemberExpression:
		sub, err := s.memberPath(prop)
		if err != nil {
			return nil, err
		}
		return slices.Concat(base, sub), nil
	}
	return nil, structural(node.Property, ErrInvalidProperty)
}
