package ast

// Encode renders n in the generic map form FromAny accepts, with the same
// field names jsep emits. A nil node encodes to nil.
func Encode(n Node) map[string]any {
	if IsNil(n) {
		return nil
	}
	m := map[string]any{"type": string(n.Type())}
	switch v := n.(type) {
	case *Literal:
		m["value"] = v.Value
		if v.Raw != "" {
			m["raw"] = v.Raw
		}
	case *Identifier:
		m["name"] = v.Name
	case *UnaryExpression:
		m["operator"] = v.Operator
		m["argument"] = encodeChild(v.Argument)
		m["prefix"] = v.Prefix
	case *BinaryExpression:
		m["operator"] = v.Operator
		m["left"] = encodeChild(v.Left)
		m["right"] = encodeChild(v.Right)
	case *LogicalExpression:
		m["operator"] = v.Operator
		m["left"] = encodeChild(v.Left)
		m["right"] = encodeChild(v.Right)
	case *ConditionalExpression:
		m["test"] = encodeChild(v.Test)
		m["consequent"] = encodeChild(v.Consequent)
		m["alternate"] = encodeChild(v.Alternate)
	case *MemberExpression:
		m["object"] = encodeChild(v.Object)
		m["property"] = encodeChild(v.Property)
		m["computed"] = v.Computed
	case *CallExpression:
		m["callee"] = encodeChild(v.Callee)
		m["arguments"] = encodeList(v.Arguments)
	case *ArrayExpression:
		m["elements"] = encodeList(v.Elements)
	case *Compound:
		m["body"] = encodeList(v.Body)
	}
	return m
}

// encodeChild keeps absent children as untyped nil so they survive
// conversion to JSON or structpb as null.
func encodeChild(n Node) any {
	if IsNil(n) {
		return nil
	}
	return Encode(n)
}

func encodeList(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = encodeChild(n)
	}
	return out
}
