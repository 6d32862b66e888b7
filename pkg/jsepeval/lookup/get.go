package lookup

import (
	"reflect"
	"strconv"
	"strings"
	"unicode/utf16"

	"google.golang.org/protobuf/proto"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// Get resolves path against root. An empty path returns root itself.
func Get(root any, path Path) any {
	cur := root
	for _, seg := range path {
		if value.IsNullish(cur) {
			return value.Undefined
		}
		cur = Property(cur, seg.Key)
	}
	return cur
}

// GetPath parses s and resolves it against root. A malformed path resolves
// to Undefined; use Parse to see the error.
func GetPath(root any, s string) any {
	p, err := Parse(s)
	if err != nil {
		return value.Undefined
	}
	return Get(root, p)
}

// Property returns obj[key], or Undefined when obj has no such property.
//
// Supported containers: string-keyed maps, slices and arrays (integer index
// and "length"), strings (index and "length" in UTF-16 units), structs
// (exported field name or json tag), protobuf messages (JSON or proto field
// name) and pointers or interfaces to those.
// A map entry holding nil is present and yields nil, not Undefined.
func Property(obj any, key string) any {
	switch o := obj.(type) {
	case map[string]any:
		if v, ok := o[key]; ok {
			return v
		}
		return value.Undefined
	case []any:
		return index(len(o), key, func(i int) any { return o[i] })
	case string:
		return stringProperty(o, key)
	case proto.Message:
		return protoProperty(o, key)
	}
	return reflectProperty(reflect.ValueOf(obj), key)
}

func reflectProperty(rv reflect.Value, key string) any {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return value.Undefined
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value.Undefined
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return value.Undefined
		}
		return v.Interface()
	case reflect.Slice, reflect.Array:
		return index(rv.Len(), key, func(i int) any { return rv.Index(i).Interface() })
	case reflect.String:
		return stringProperty(rv.String(), key)
	case reflect.Struct:
		return structField(rv, key)
	}
	return value.Undefined
}

func index(n int, key string, at func(int) any) any {
	if key == "length" {
		return float64(n)
	}
	i, ok := arrayIndex(key)
	if !ok || i >= n {
		return value.Undefined
	}
	return at(i)
}

// arrayIndex accepts canonical non-negative integers only ("1", not "01").
func arrayIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

func stringProperty(s, key string) any {
	units := utf16.Encode([]rune(s))
	return index(len(units), key, func(i int) any {
		return string(utf16.Decode(units[i : i+1]))
	})
}

func structField(rv reflect.Value, key string) any {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		if name == key || (name != f.Name && f.Name == key) {
			return rv.Field(i).Interface()
		}
	}
	return value.Undefined
}
