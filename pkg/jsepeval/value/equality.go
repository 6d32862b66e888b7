package value

import (
	"math"
	"reflect"
	"strings"
)

type kind int

const (
	kindUndefined kind = iota
	kindNull
	kindBoolean
	kindNumber
	kindString
	kindObject
)

func kindOf(v any) kind {
	switch v.(type) {
	case nil:
		return kindNull
	case undefined:
		return kindUndefined
	case bool:
		return kindBoolean
	case string:
		return kindString
	}
	if IsNumber(v) {
		return kindNumber
	}
	return kindObject
}

// StrictEquals implements ===. Numbers compare by value across Go numeric
// types; slices, maps, funcs and pointers compare by identity.
func StrictEquals(a, b any) bool {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case kindUndefined, kindNull:
		return true
	case kindBoolean:
		return a.(bool) == b.(bool)
	case kindString:
		return a.(string) == b.(string)
	case kindNumber:
		return ToNumber(a) == ToNumber(b)
	}
	return sameObject(a, b)
}

func sameObject(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Func, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}
	return ra.Comparable() && ra.Equal(rb)
}

// LooseEquals implements == with the JS abstract equality coercions.
func LooseEquals(a, b any) bool {
	ka, kb := kindOf(a), kindOf(b)
	if ka == kb {
		return StrictEquals(a, b)
	}
	nullish := func(k kind) bool { return k == kindNull || k == kindUndefined }
	switch {
	case nullish(ka) || nullish(kb):
		return nullish(ka) && nullish(kb)
	case ka == kindNumber && kb == kindString:
		return ToNumber(a) == ToNumber(b)
	case ka == kindString && kb == kindNumber:
		return ToNumber(a) == ToNumber(b)
	case ka == kindBoolean:
		return LooseEquals(ToNumber(a), b)
	case kb == kindBoolean:
		return LooseEquals(a, ToNumber(b))
	case ka == kindObject:
		return LooseEquals(ToPrimitive(a), b)
	case kb == kindObject:
		return LooseEquals(a, ToPrimitive(b))
	}
	return false
}

// Compare orders a and b for the relational operators. ok is false when
// the comparison is undefined (a NaN operand), in which case every
// relational operator yields false.
func Compare(a, b any) (cmp int, ok bool) {
	pa, pb := ToPrimitive(a), ToPrimitive(b)
	sa, aStr := pa.(string)
	sb, bStr := pb.(string)
	if aStr && bStr {
		return strings.Compare(sa, sb), true
	}
	x, y := ToNumber(pa), ToNumber(pb)
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, false
	}
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	}
	return 0, true
}

// Add implements +: string concatenation when either primitive operand is a
// string, numeric addition otherwise.
func Add(a, b any) any {
	pa, pb := ToPrimitive(a), ToPrimitive(b)
	_, aStr := pa.(string)
	_, bStr := pb.(string)
	if aStr || bStr {
		return ToString(pa) + ToString(pb)
	}
	return ToNumber(pa) + ToNumber(pb)
}
