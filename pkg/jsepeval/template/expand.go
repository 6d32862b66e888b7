package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/lookup"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// placeholderPattern matches ${path} or $name. A brace path uses lookup
// syntax (a.b[0], a["key"]); a dollar name is a single identifier.
var placeholderPattern = regexp.MustCompile(`\$\{([^{}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// Expander expands placeholders in strings against a data value.
//
// Create with NewExpander() and configure with Option functions.
// Expander is safe for concurrent use after construction.
type Expander struct {
	missing   MissingPolicy
	braces    bool
	bareNames bool
	format    func(any) string
}

// NewExpander returns an Expander that keeps unresolved placeholders,
// accepts both placeholder forms and renders values with value.ToString.
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		missing:   KeepMissing,
		braces:    true,
		bareNames: true,
		format:    value.ToString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand replaces placeholders in s with values resolved from data.
//
// By default values are rendered the way string concatenation renders them:
// numbers without trailing zeros, arrays comma-joined, nil as "null". A
// placeholder is missing when its path is malformed or resolves to
// Undefined. Errors are only returned under FailMissing.
//
// Example:
//
//	exp := NewExpander()
//	result, err := exp.Expand("user ${user.name} has ${user.roles[0]}", data)
func (e *Expander) Expand(s string, data any) (string, error) {
	if s == "" {
		return "", nil
	}

	var missing []string
	result := placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		var raw string
		switch {
		case strings.HasPrefix(match, "${"):
			if !e.braces {
				return match
			}
			raw = strings.TrimSpace(match[2 : len(match)-1])
		default:
			if !e.bareNames {
				return match
			}
			raw = match[1:]
		}

		if v, ok := resolve(data, raw); ok {
			return e.format(v)
		}
		switch e.missing {
		case EmptyMissing:
			return ""
		case FailMissing:
			missing = append(missing, raw)
			return match
		default:
			return match
		}
	})

	if len(missing) > 0 {
		return result, &MissingError{Paths: missing}
	}
	return result, nil
}

func resolve(data any, raw string) (any, bool) {
	if raw == "" {
		return nil, false
	}
	path, err := lookup.Parse(raw)
	if err != nil {
		return nil, false
	}
	v := lookup.Get(data, path)
	return v, !value.IsUndefined(v)
}

// MustExpand expands placeholders in s and panics on error.
func (e *Expander) MustExpand(s string, data any) string {
	result, err := e.Expand(s, data)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return result
}

// ExpandAll expands placeholders in all strings.
// On error (with FailMissing), returns nil and the first error.
func (e *Expander) ExpandAll(ss []string, data any) ([]string, error) {
	if ss == nil {
		return nil, nil
	}

	results := make([]string, len(ss))
	for i, s := range ss {
		expanded, err := e.Expand(s, data)
		if err != nil {
			return nil, err
		}
		results[i] = expanded
	}
	return results, nil
}

// ExpandMap expands placeholders in all string values of m, recursing into
// nested maps and slices. Other values are copied as-is.
// On error (with FailMissing), returns nil and the first error.
func (e *Expander) ExpandMap(m map[string]any, data any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}

	result := make(map[string]any, len(m))
	for k, v := range m {
		expanded, err := e.expandValue(v, data)
		if err != nil {
			return nil, err
		}
		result[k] = expanded
	}
	return result, nil
}

func (e *Expander) expandValue(v any, data any) (any, error) {
	switch val := v.(type) {
	case string:
		return e.Expand(val, data)
	case map[string]any:
		return e.ExpandMap(val, data)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			expanded, err := e.expandValue(item, data)
			if err != nil {
				return nil, err
			}
			out[i] = expanded
		}
		return out, nil
	default:
		return v, nil
	}
}

// MissingError reports the placeholders that did not resolve under
// FailMissing, in order of appearance.
type MissingError struct {
	Paths []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("template: unresolved %s", strings.Join(quoteAll(e.Paths), ", "))
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strconv.Quote(s)
	}
	return out
}

var defaultExpander = NewExpander()

// Expand expands placeholders using the default expander, which keeps
// missing placeholders as-is.
//
// Example:
//
//	result := template.Expand("Hello ${user.name}", data)
func Expand(s string, data any) string {
	result, _ := defaultExpander.Expand(s, data)
	return result
}

// ExpandAll expands placeholders in all strings using the default expander.
func ExpandAll(ss []string, data any) []string {
	results, _ := defaultExpander.ExpandAll(ss, data)
	return results
}

// ExpandMap expands placeholders in all string values using the default expander.
func ExpandMap(m map[string]any, data any) map[string]any {
	result, _ := defaultExpander.ExpandMap(m, data)
	return result
}
