package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	var nilMap map[string]any
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"undefined", Undefined, false},
		{"true", true, true},
		{"false", false, false},
		{"empty string", "", false},
		{"string", "x", true},
		{"zero float", 0.0, false},
		{"NaN", math.NaN(), false},
		{"zero int", 0, false},
		{"int", 3, true},
		{"zero uint8", uint8(0), false},
		{"negative int32", int32(-1), true},
		{"empty slice", []any{}, true},
		{"empty map", map[string]any{}, true},
		{"nil map", nilMap, false},
		{"struct", struct{}{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truthy(tt.v))
		})
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want float64
	}{
		{"float", 2.5, 2.5},
		{"int", 7, 7},
		{"uint16", uint16(9), 9},
		{"null", nil, 0},
		{"true", true, 1},
		{"false", false, 0},
		{"empty string", "", 0},
		{"padded string", "  12 ", 12},
		{"exponent", "1e3", 1000},
		{"hex", "0x1F", 31},
		{"infinity", "-Infinity", math.Inf(-1)},
		{"empty array", []any{}, 0},
		{"single element array", []any{"5"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToNumber(tt.v))
		})
	}
}

func TestToNumber_NaN(t *testing.T) {
	for _, v := range []any{Undefined, "abc", "inf", "1_000", map[string]any{}, []any{1, 2}} {
		assert.True(t, math.IsNaN(ToNumber(v)), "ToNumber(%v) should be NaN", v)
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"null", nil, "null"},
		{"undefined", Undefined, "undefined"},
		{"bool", true, "true"},
		{"integer float", 3.0, "3"},
		{"fraction", 0.5, "0.5"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"int", 42, "42"},
		{"large", 1e21, "1e+21"},
		{"small", 1e-7, "1e-7"},
		{"NaN", math.NaN(), "NaN"},
		{"array", []any{1, "a", nil, Undefined}, "1,a,,"},
		{"nested array", []any{[]any{1, 2}, 3}, "1,2,3"},
		{"object", map[string]any{"a": 1}, "[object Object]"},
		{"func", func() {}, "function"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.v))
		})
	}
}

func TestToInt32(t *testing.T) {
	tests := []struct {
		v    any
		want int32
	}{
		{1.9, 1},
		{-1.9, -1},
		{4294967295.0, -1},
		{2147483648.0, math.MinInt32},
		{"8", 8},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToInt32(tt.v), "ToInt32(%v)", tt.v)
	}
}

func TestToUint32(t *testing.T) {
	assert.Equal(t, uint32(4294967295), ToUint32(-1))
	assert.Equal(t, uint32(0), ToUint32(4294967296.0))
	assert.Equal(t, uint32(5), ToUint32(5.7))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "undefined", TypeOf(Undefined))
	assert.Equal(t, "object", TypeOf(nil))
	assert.Equal(t, "boolean", TypeOf(false))
	assert.Equal(t, "string", TypeOf(""))
	assert.Equal(t, "number", TypeOf(int64(1)))
	assert.Equal(t, "function", TypeOf(func() {}))
	assert.Equal(t, "object", TypeOf([]any{}))
}

func TestUndefined_JSON(t *testing.T) {
	out, err := json.Marshal(map[string]any{"list": []any{Undefined, 1}, "v": Undefined})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"list":[null,1],"v":null}`, string(out))
}
