package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrictEquals(t *testing.T) {
	obj := map[string]any{"a": 1}
	arr := []any{1, 2}
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same number across types", 3, 3.0, true},
		{"different numbers", 3, 4.0, false},
		{"NaN", math.NaN(), math.NaN(), false},
		{"strings", "a", "a", true},
		{"number vs string", 1, "1", false},
		{"null vs undefined", nil, Undefined, false},
		{"null", nil, nil, true},
		{"undefined", Undefined, Undefined, true},
		{"bools", true, true, true},
		{"same map", obj, obj, true},
		{"equal but distinct maps", obj, map[string]any{"a": 1}, false},
		{"same slice", arr, arr, true},
		{"distinct slices", arr, []any{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrictEquals(tt.a, tt.b))
		})
	}
}

func TestLooseEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"null and undefined", nil, Undefined, true},
		{"null and zero", nil, 0, false},
		{"number and string", 1, "1", true},
		{"string and number", "2.5", 2.5, true},
		{"bool and number", true, 1, true},
		{"bool and string", false, "0", true},
		{"array and string", []any{1, 2}, "1,2", true},
		{"array and number", []any{7}, 7, true},
		{"different strings", "a", "b", false},
		{"undefined and false", Undefined, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooseEquals(tt.a, tt.b))
		})
	}
}

func TestCompare(t *testing.T) {
	cmp, ok := Compare(1, 2.0)
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = Compare("b", "a")
	assert.True(t, ok)
	assert.Equal(t, 1, cmp)

	// Mixed string/number compares numerically.
	cmp, ok = Compare("10", 9)
	assert.True(t, ok)
	assert.Equal(t, 1, cmp)

	_, ok = Compare("x", 1)
	assert.False(t, ok)

	_, ok = Compare(Undefined, 1)
	assert.False(t, ok)
}

func TestAdd(t *testing.T) {
	assert.Equal(t, 5.0, Add(2, 3))
	assert.Equal(t, "23", Add("2", 3))
	assert.Equal(t, "a,b!", Add([]any{"a", "b"}, "!"))
	assert.Equal(t, 1.0, Add(true, nil))
	assert.True(t, math.IsNaN(Add(Undefined, 1).(float64)))
}
