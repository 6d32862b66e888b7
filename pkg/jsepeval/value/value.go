// Package value implements the dynamic value model used by jsepeval.
//
// Values are plain Go values. Go nil stands for JS null and Undefined marks
// an absent value (a missing property, an empty compound, a call with no
// result). Numbers read from data keep their Go type and are coerced on use;
// numbers produced by operators are float64.
package value

import (
	"math"
	"reflect"
)

type undefined struct{}

// String returns "undefined".
func (undefined) String() string { return "undefined" }

// MarshalJSON encodes Undefined as null, which is how JSON.stringify
// renders it inside arrays.
func (undefined) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Undefined is the absent-value marker.
var Undefined any = undefined{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// IsNullish reports whether v is nil or Undefined.
func IsNullish(v any) bool {
	return v == nil || IsUndefined(v)
}

// Truthy returns the JS boolean coercion of v.
// nil, Undefined, false, 0, NaN and "" are falsy; everything else,
// including empty slices and maps, is truthy.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case undefined:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case int:
		return val != 0
	case int64:
		return val != 0
	}
	if f, ok := number(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return !rv.IsNil()
	}
	return true
}

// TypeOf returns the JS typeof name of v.
func TypeOf(v any) string {
	switch {
	case IsUndefined(v):
		return "undefined"
	case v == nil:
		return "object"
	}
	switch v.(type) {
	case bool:
		return "boolean"
	case string:
		return "string"
	}
	if _, ok := number(v); ok {
		return "number"
	}
	if IsCallable(v) {
		return "function"
	}
	return "object"
}

// number returns v as float64 when v is a Go numeric value.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case float32:
		return float64(n), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// IsNumber reports whether v is a Go numeric value.
func IsNumber(v any) bool {
	_, ok := number(v)
	return ok
}
