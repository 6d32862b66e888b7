package operators

import (
	"math"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

func builtinBinary() map[string]BinaryFunc {
	return map[string]BinaryFunc{
		"===": func(a, b any) any { return value.StrictEquals(a, b) },
		"!==": func(a, b any) any { return !value.StrictEquals(a, b) },
		"==":  func(a, b any) any { return value.LooseEquals(a, b) },
		"!=":  func(a, b any) any { return !value.LooseEquals(a, b) },
		">":   relational(func(c int) bool { return c > 0 }),
		"<":   relational(func(c int) bool { return c < 0 }),
		">=":  relational(func(c int) bool { return c >= 0 }),
		"<=":  relational(func(c int) bool { return c <= 0 }),
		"+":   value.Add,
		"-":   arithmetic(func(x, y float64) float64 { return x - y }),
		"*":   arithmetic(func(x, y float64) float64 { return x * y }),
		"/":   arithmetic(func(x, y float64) float64 { return x / y }),
		"%":   arithmetic(math.Mod),
		"**":  arithmetic(power),
		"&":   bitwise(func(x, y int32) int32 { return x & y }),
		"|":   bitwise(func(x, y int32) int32 { return x | y }),
		"^":   bitwise(func(x, y int32) int32 { return x ^ y }),
		"<<": func(a, b any) any {
			return float64(value.ToInt32(a) << (value.ToUint32(b) & 31))
		},
		">>": func(a, b any) any {
			return float64(value.ToInt32(a) >> (value.ToUint32(b) & 31))
		},
		">>>": func(a, b any) any {
			return float64(value.ToUint32(a) >> (value.ToUint32(b) & 31))
		},
		"||": func(a, b any) any {
			if value.Truthy(a) {
				return a
			}
			return b
		},
		"&&": func(a, b any) any {
			if !value.Truthy(a) {
				return a
			}
			return b
		},
	}
}

func builtinUnary() map[string]UnaryFunc {
	return map[string]UnaryFunc{
		"!":  func(a any) any { return !value.Truthy(a) },
		"~":  func(a any) any { return float64(^value.ToInt32(a)) },
		"+":  func(a any) any { return value.ToNumber(a) },
		"-":  func(a any) any { return -value.ToNumber(a) },
		"++": func(a any) any { return value.ToNumber(a) + 1 },
		"--": func(a any) any { return value.ToNumber(a) - 1 },
	}
}

func relational(test func(cmp int) bool) BinaryFunc {
	return func(a, b any) any {
		cmp, ok := value.Compare(a, b)
		return ok && test(cmp)
	}
}

func arithmetic(op func(x, y float64) float64) BinaryFunc {
	return func(a, b any) any {
		return op(value.ToNumber(a), value.ToNumber(b))
	}
}

func bitwise(op func(x, y int32) int32) BinaryFunc {
	return func(a, b any) any {
		return float64(op(value.ToInt32(a), value.ToInt32(b)))
	}
}

// power follows JS: 1 ** NaN and (-1) ** ±Infinity are NaN, unlike math.Pow.
func power(x, y float64) float64 {
	if math.IsNaN(y) || (math.Abs(x) == 1 && math.IsInf(y, 0)) {
		return math.NaN()
	}
	return math.Pow(x, y)
}
