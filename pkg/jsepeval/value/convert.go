package value

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ToNumber returns the JS numeric coercion of v.
func ToNumber(v any) float64 {
	if f, ok := number(v); ok {
		return f
	}
	switch val := v.(type) {
	case nil:
		return 0
	case undefined:
		return math.NaN()
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		return stringToNumber(val)
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return stringToNumber(ToString(v))
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	lower := strings.ToLower(s)
	for prefix, base := range map[string]int{"0x": 16, "0o": 8, "0b": 2} {
		if strings.HasPrefix(lower, prefix) {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	// ParseFloat accepts forms JS rejects ("inf", "nan", "1_000").
	if strings.ContainsAny(lower, "_in") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToString returns the JS string coercion of v.
func ToString(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return FormatNumber(val)
	}
	if f, ok := number(v); ok {
		return FormatNumber(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			el := rv.Index(i).Interface()
			if !IsNullish(el) {
				parts[i] = ToString(el)
			}
		}
		return strings.Join(parts, ",")
	case reflect.Func:
		return "function"
	}
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return "[object Object]"
}

// FormatNumber renders f the way JS Number.prototype.toString does for
// the common cases.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go writes e+21 / e-07, JS writes e+21 / e-7.
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToPropertyKey converts a computed member key to the string used for lookup.
func ToPropertyKey(v any) string {
	return ToString(v)
}

// ToInt32 implements the JS ToInt32 conversion used by bitwise operators.
func ToInt32(v any) int32 {
	return int32(toUint32(ToNumber(v)))
}

// ToUint32 implements the JS ToUint32 conversion.
func ToUint32(v any) uint32 {
	return toUint32(ToNumber(v))
}

func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	f = math.Mod(f, 1<<32)
	if f < 0 {
		f += 1 << 32
	}
	return uint32(f)
}

// ToPrimitive reduces slices, arrays, maps and structs to their string form;
// other values are returned unchanged.
func ToPrimitive(v any) any {
	if v == nil || IsUndefined(v) {
		return v
	}
	switch v.(type) {
	case bool, string:
		return v
	}
	if IsNumber(v) {
		return v
	}
	return ToString(v)
}
