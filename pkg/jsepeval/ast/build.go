package ast

// Lit returns a Literal. Integer values are stored as float64 so that
// built trees match decoded ones.
func Lit(v any) *Literal {
	return &Literal{Value: normalizeNumber(v)}
}

// Ident returns an Identifier.
func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// This returns a ThisExpression.
func This() *ThisExpression {
	return &ThisExpression{}
}

// Unary returns a prefix UnaryExpression.
func Unary(op string, arg Node) *UnaryExpression {
	return &UnaryExpression{Operator: op, Argument: arg, Prefix: true}
}

// Binary returns a BinaryExpression.
func Binary(op string, left, right Node) *BinaryExpression {
	return &BinaryExpression{Operator: op, Left: left, Right: right}
}

// Logical returns a LogicalExpression.
func Logical(op string, left, right Node) *LogicalExpression {
	return &LogicalExpression{Operator: op, Left: left, Right: right}
}

// Cond returns a ConditionalExpression.
func Cond(test, consequent, alternate Node) *ConditionalExpression {
	return &ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}
}

// Member returns a dotted (non-computed) MemberExpression: object.property.
func Member(object, property Node) *MemberExpression {
	return &MemberExpression{Object: object, Property: property}
}

// Index returns a computed MemberExpression: object[property].
func Index(object, property Node) *MemberExpression {
	return &MemberExpression{Object: object, Property: property, Computed: true}
}

// Path builds a dotted member chain from identifier names: Path("a", "b", "c")
// is a.b.c. It returns nil for no names.
func Path(names ...string) Node {
	if len(names) == 0 {
		return nil
	}
	var n Node = Ident(names[0])
	for _, name := range names[1:] {
		n = Member(n, Ident(name))
	}
	return n
}

// Call returns a CallExpression.
func Call(callee Node, args ...Node) *CallExpression {
	return &CallExpression{Callee: callee, Arguments: args}
}

// Array returns an ArrayExpression.
func Array(elements ...Node) *ArrayExpression {
	return &ArrayExpression{Elements: elements}
}

// Seq returns a Compound.
func Seq(body ...Node) *Compound {
	return &Compound{Body: body}
}

func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}
