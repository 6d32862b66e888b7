package script

import (
	"fmt"
	"math"

	starlarkLib "go.starlark.net/starlark"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// maxExactInt is the largest integer every float64 below it can represent.
const maxExactInt = 1 << 53

// toStarlark converts an evaluation value to Starlark. nil and Undefined
// both become None.
func toStarlark(v any) (starlarkLib.Value, error) {
	if v == nil || value.IsUndefined(v) {
		return starlarkLib.None, nil
	}

	switch val := v.(type) {
	case starlarkLib.Value:
		return val, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case string:
		return starlarkLib.String(val), nil
	case []any:
		elems := make([]starlarkLib.Value, len(val))
		for i, e := range val {
			sv, err := toStarlark(e)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			elems[i] = sv
		}
		return starlarkLib.NewList(elems), nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for k, e := range val {
			sv, err := toStarlark(e)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlarkLib.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
		}
		return dict, nil
	}

	if value.IsNumber(v) {
		f := value.ToNumber(v)
		if f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
			return starlarkLib.MakeInt64(int64(f)), nil
		}
		return starlarkLib.Float(f), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrConvert, v)
}

// fromStarlark converts a Starlark value to an evaluation value. Ints
// become float64 like every other number in expressions.
func fromStarlark(v starlarkLib.Value) (any, error) {
	switch val := v.(type) {
	case nil, starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(val), nil
	case starlarkLib.Int:
		if i, ok := val.Int64(); ok {
			return float64(i), nil
		}
		return float64(val.Float()), nil
	case starlarkLib.Float:
		return float64(val), nil
	case starlarkLib.String:
		return string(val), nil
	case starlarkLib.Bytes:
		return string(val), nil
	case starlarkLib.Indexable:
		out := make([]any, val.Len())
		for i := range out {
			e, err := fromStarlark(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = e
		}
		return out, nil
	case *starlarkLib.Dict:
		out := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			key, ok := starlarkLib.AsString(item[0])
			if !ok {
				key = item[0].String()
			}
			e, err := fromStarlark(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
			out[key] = e
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: starlark %s", ErrConvert, v.Type())
}
