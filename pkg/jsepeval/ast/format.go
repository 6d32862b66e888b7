package ast

import (
	"math"
	"strconv"
	"strings"
)

// Format renders n as source-like text. It is meant for logs and error
// messages; the output is not guaranteed to re-parse to the same tree.
func Format(n Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n Node) {
	if IsNil(n) {
		b.WriteString("<nil>")
		return
	}
	switch n := n.(type) {
	case *Literal:
		if n.Raw != "" {
			b.WriteString(n.Raw)
			return
		}
		writeLiteral(b, n.Value)
	case *Identifier:
		b.WriteString(n.Name)
	case *ThisExpression:
		b.WriteString("this")
	case *UnaryExpression:
		b.WriteString(n.Operator)
		writeOperand(b, n.Argument)
	case *BinaryExpression:
		writeOperand(b, n.Left)
		b.WriteString(" " + n.Operator + " ")
		writeOperand(b, n.Right)
	case *LogicalExpression:
		writeOperand(b, n.Left)
		b.WriteString(" " + n.Operator + " ")
		writeOperand(b, n.Right)
	case *ConditionalExpression:
		writeOperand(b, n.Test)
		b.WriteString(" ? ")
		writeOperand(b, n.Consequent)
		b.WriteString(" : ")
		writeOperand(b, n.Alternate)
	case *MemberExpression:
		write(b, n.Object)
		if n.Computed {
			b.WriteByte('[')
			write(b, n.Property)
			b.WriteByte(']')
		} else {
			b.WriteByte('.')
			write(b, n.Property)
		}
	case *CallExpression:
		write(b, n.Callee)
		b.WriteByte('(')
		writeList(b, n.Arguments)
		b.WriteByte(')')
	case *ArrayExpression:
		b.WriteByte('[')
		writeList(b, n.Elements)
		b.WriteByte(']')
	case *Compound:
		writeList(b, n.Body)
	default:
		b.WriteString("<" + string(n.Type()) + ">")
	}
}

// writeOperand parenthesizes operands that contain their own operators.
func writeOperand(b *strings.Builder, n Node) {
	switch n.(type) {
	case *BinaryExpression, *LogicalExpression, *ConditionalExpression, *Compound:
		b.WriteByte('(')
		write(b, n)
		b.WriteByte(')')
	default:
		write(b, n)
	}
}

func writeList(b *strings.Builder, nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		write(b, n)
	}
}

func writeLiteral(b *strings.Builder, v any) {
	switch v := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(strconv.Quote(v))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case float64:
		switch {
		case math.IsNaN(v):
			b.WriteString("NaN")
		case math.IsInf(v, 1):
			b.WriteString("Infinity")
		case math.IsInf(v, -1):
			b.WriteString("-Infinity")
		default:
			b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
	default:
		b.WriteString("<literal>")
	}
}
