package config

import (
	"maps"
	"strings"
)

// Config is a read-only view over decoded settings. Accessors take a key,
// which may be a dotted path into nested sections ("server.addr"), and
// fall back to the supplied default when the key is absent or holds a
// value of another type.
type Config struct {
	data map[string]any
}

// New wraps data. A nil map yields an empty Config.
func New(data map[string]any) Config {
	if data == nil {
		data = map[string]any{}
	}
	return Config{data: data}
}

// lookup resolves key, descending through nested maps on '.' when the
// full key is not present at the top level.
func (c Config) lookup(key string) (any, bool) {
	if v, ok := c.data[key]; ok {
		return v, true
	}
	head, rest, found := strings.Cut(key, ".")
	if !found {
		return nil, false
	}
	if _, ok := c.data[head]; !ok {
		return nil, false
	}
	return c.Section(head).lookup(rest)
}

func typed[T any](c Config, key string, def T) T {
	if v, ok := c.lookup(key); ok {
		if t, ok := v.(T); ok {
			return t
		}
	}
	return def
}

// String returns the string at key.
func (c Config) String(key, def string) string { return typed(c, key, def) }

// Bool returns the bool at key. Strings are not coerced.
func (c Config) Bool(key string, def bool) bool { return typed(c, key, def) }

// Int returns the integer at key. Whole floats, as produced by JSON
// decoding, are accepted.
func (c Config) Int(key string, def int) int {
	v, _ := c.lookup(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	}
	return def
}

// Float returns the number at key as float64.
func (c Config) Float(key string, def float64) float64 {
	v, _ := c.lookup(key)
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

// StringSlice returns the list at key. A list containing anything other
// than strings yields def.
func (c Config) StringSlice(key string, def []string) []string {
	v, _ := c.lookup(key)
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out[i] = s
		}
		return out
	}
	return def
}

// Any returns the raw value at key, which may be nil.
func (c Config) Any(key string, def any) any {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// Has reports whether key is present, even when it holds nil.
func (c Config) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// Section returns the nested map at key. Maps with non-string keys, as
// older YAML decoders produce, keep only their string keys.
func (c Config) Section(key string) Config {
	v, _ := c.lookup(key)
	return New(stringKeyed(v))
}

// Raw returns the underlying map. Callers must not modify it.
func (c Config) Raw() map[string]any {
	return c.data
}

// Merge returns a Config with override layered over c. Sections present
// in both are merged recursively; any other value in override replaces
// the one in c. Neither input is modified.
func (c Config) Merge(override Config) Config {
	return New(merge(c.data, override.data))
}

func merge(base, over map[string]any) map[string]any {
	out := maps.Clone(base)
	if out == nil {
		out = map[string]any{}
	}
	for k, v := range over {
		sub := stringKeyed(v)
		prev := stringKeyed(out[k])
		if sub != nil && prev != nil {
			out[k] = merge(prev, sub)
			continue
		}
		out[k] = v
	}
	return out
}

func stringKeyed(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out
	}
	return nil
}
