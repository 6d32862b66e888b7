package ast

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeError reports a malformed tree in parser output.
type DecodeError struct {
	// Path locates the offending node, e.g. "left.arguments[1]".
	Path    string
	Message string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode expression: %s", e.Message)
	}
	return fmt.Sprintf("decode expression at %s: %s", e.Path, e.Message)
}

// FromJSON decodes jsep JSON output. Empty input and "null" decode to a nil Node.
func FromJSON(data []byte) (Node, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return FromAny(raw)
}

// FromYAML decodes a tree written as YAML, using the same field names as jsep.
func FromYAML(data []byte) (Node, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return FromAny(raw)
}

// FromMap decodes a single node from its generic map form.
func FromMap(m map[string]any) (Node, error) {
	return decodeNode(m, "")
}

// FromAny decodes a tree from a generic value as produced by encoding/json
// or yaml.v3. A nil value decodes to a nil Node.
func FromAny(raw any) (Node, error) {
	return decodeValue(raw, "")
}

func decodeValue(raw any, path string) (Node, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return decodeNode(v, path)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			ks, ok := k.(string)
			if !ok {
				return nil, &DecodeError{Path: path, Message: fmt.Sprintf("non-string key %v", k)}
			}
			m[ks] = val
		}
		return decodeNode(m, path)
	default:
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("expected object, got %T", raw)}
	}
}

func decodeNode(m map[string]any, path string) (Node, error) {
	t, _ := m["type"].(string)
	if t == "" {
		return nil, &DecodeError{Path: path, Message: "missing node type"}
	}

	d := decoder{m: m, path: path}
	var n Node
	switch Type(t) {
	case TypeLiteral:
		n = &Literal{Value: normalizeNumber(m["value"]), Raw: d.str("raw")}
	case TypeIdentifier:
		n = &Identifier{Name: d.str("name")}
	case TypeThis:
		n = &ThisExpression{}
	case TypeUnary:
		prefix := true
		if p, ok := m["prefix"].(bool); ok {
			prefix = p
		}
		n = &UnaryExpression{Operator: d.str("operator"), Argument: d.node("argument"), Prefix: prefix}
	case TypeBinary:
		n = &BinaryExpression{Operator: d.str("operator"), Left: d.node("left"), Right: d.node("right")}
	case TypeLogical:
		n = &LogicalExpression{Operator: d.str("operator"), Left: d.node("left"), Right: d.node("right")}
	case TypeConditional:
		n = &ConditionalExpression{Test: d.node("test"), Consequent: d.node("consequent"), Alternate: d.node("alternate")}
	case TypeMember:
		computed, _ := m["computed"].(bool)
		n = &MemberExpression{Object: d.node("object"), Property: d.node("property"), Computed: computed}
	case TypeCall:
		n = &CallExpression{Callee: d.node("callee"), Arguments: d.nodes("arguments")}
	case TypeArray:
		n = &ArrayExpression{Elements: d.nodes("elements")}
	case TypeCompound:
		n = &Compound{Body: d.nodes("body")}
	default:
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("unknown node type %q", t)}
	}
	if d.err != nil {
		return nil, d.err
	}
	return n, nil
}

// decoder keeps the first error so node construction stays linear.
type decoder struct {
	m    map[string]any
	path string
	err  error
}

func (d *decoder) child(key string) string {
	if d.path == "" {
		return key
	}
	return d.path + "." + key
}

func (d *decoder) str(key string) string {
	s, _ := d.m[key].(string)
	return s
}

func (d *decoder) node(key string) Node {
	if d.err != nil {
		return nil
	}
	n, err := decodeValue(d.m[key], d.child(key))
	if err != nil {
		d.err = err
		return nil
	}
	return n
}

func (d *decoder) nodes(key string) []Node {
	if d.err != nil {
		return nil
	}
	raw, ok := d.m[key]
	if !ok || raw == nil {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		d.err = &DecodeError{Path: d.child(key), Message: fmt.Sprintf("expected list, got %T", raw)}
		return nil
	}
	out := make([]Node, len(items))
	for i, item := range items {
		n, err := decodeValue(item, fmt.Sprintf("%s[%d]", d.child(key), i))
		if err != nil {
			d.err = err
			return nil
		}
		out[i] = n
	}
	return out
}
