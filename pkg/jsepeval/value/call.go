package value

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for invocation.
var (
	// ErrNotCallable indicates the callee is not a function.
	ErrNotCallable = errors.New("value is not callable")

	// ErrArgumentType indicates an argument cannot be converted to the
	// parameter type of a Go function.
	ErrArgumentType = errors.New("argument type mismatch")
)

// Function is the native callable signature. Any other Go func value is
// also callable through reflection.
type Function func(args ...any) (any, error)

var errorType = reflect.TypeFor[error]()

// IsCallable reports whether v is a non-nil func.
func IsCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// Call invokes fn with args without any receiver.
//
// Arguments are converted to the parameter types of fn: numbers between
// numeric kinds, any value to string or bool parameters by JS coercion, and
// nil or Undefined to the zero value. Missing arguments become zero values
// and surplus arguments are dropped unless fn is variadic.
//
// Results map as follows: no result is Undefined; a trailing error result
// is returned as the error; a single remaining result is returned as is;
// several remaining results are returned as []any.
func Call(fn any, args []any) (any, error) {
	if !IsCallable(fn) {
		return nil, fmt.Errorf("%w: %s", ErrNotCallable, TypeOf(fn))
	}

	switch f := fn.(type) {
	case Function:
		return f(args...)
	case func(...any) (any, error):
		return f(args...)
	case func(...any) any:
		return f(args...), nil
	}

	rv := reflect.ValueOf(fn)
	in, err := callArgs(rv.Type(), args)
	if err != nil {
		return nil, err
	}
	return callResults(rv.Type(), rv.Call(in))
}

func callArgs(t reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
	}

	in := make([]reflect.Value, 0, max(fixed, len(args)))
	for i := 0; i < fixed; i++ {
		var arg any = Undefined
		if i < len(args) {
			arg = args[i]
		}
		v, err := convertArg(arg, t.In(i))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, v)
	}

	if t.IsVariadic() {
		elem := t.In(fixed).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := convertArg(args[i], elem)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in = append(in, v)
		}
	}
	return in, nil
}

func convertArg(arg any, t reflect.Type) (reflect.Value, error) {
	if t.Kind() == reflect.Interface {
		if arg == nil {
			return reflect.Zero(t), nil
		}
		if rv := reflect.ValueOf(arg); rv.Type().Implements(t) {
			return rv.Convert(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: %T does not implement %s", ErrArgumentType, arg, t)
	}
	if IsNullish(arg) {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(arg)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if IsNumber(arg) || kindOf(arg) != kindObject {
			return reflect.ValueOf(ToNumber(arg)).Convert(t), nil
		}
	case reflect.String:
		return reflect.ValueOf(ToString(arg)).Convert(t), nil
	case reflect.Bool:
		return reflect.ValueOf(Truthy(arg)).Convert(t), nil
	}

	if rv.Type().ConvertibleTo(t) && rv.Kind() == t.Kind() {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrArgumentType, arg, t)
}

func callResults(t reflect.Type, out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && t.Out(n-1) == errorType {
		if errVal := out[n-1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return Undefined, nil
	case 1:
		return out[0].Interface(), nil
	}
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}
