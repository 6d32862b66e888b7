// Package lookup resolves member paths such as a.b[c] against arbitrary data.
//
// Resolution is tolerant: when any intermediate segment is absent the result
// is value.Undefined rather than an error. Only nil and Undefined stop the
// traversal; falsy values such as 0 or "" are looked into like any other
// value (and simply have no properties).
package lookup

import (
	"fmt"
	"strings"
)

// Segment is one step of a Path.
type Segment struct {
	// Key is the property name or index, already converted to a string.
	Key string
	// Computed is true for bracket access (a[key]).
	Computed bool
}

// Path is a sequence of property accesses relative to the data root.
type Path []Segment

// Dot appends a dotted segment and returns the extended path.
func (p Path) Dot(key string) Path {
	return append(p[:len(p):len(p)], Segment{Key: key})
}

// Bracket appends a computed segment and returns the extended path.
func (p Path) Bracket(key string) Path {
	return append(p[:len(p):len(p)], Segment{Key: key, Computed: true})
}

// String renders the path in dotted/bracketed form: a.b[c].
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		switch {
		case seg.Computed:
			b.WriteString("[" + seg.Key + "]")
		case i > 0:
			b.WriteString("." + seg.Key)
		default:
			b.WriteString(seg.Key)
		}
	}
	return b.String()
}

// ParseError reports a malformed path string.
type ParseError struct {
	Path   string
	Offset int
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse path %q at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// Parse splits a path string into segments. It accepts dotted names,
// bracketed keys and quoted bracketed keys:
//
//	a.b[0]["x.y"]['z']
//
// An empty string parses to an empty Path.
func Parse(s string) (Path, error) {
	var p Path
	i := 0
	expectName := true
	for i < len(s) {
		switch c := s[i]; {
		case c == '.':
			if expectName {
				return nil, &ParseError{Path: s, Offset: i, Reason: "empty segment"}
			}
			expectName = true
			i++
		case c == '[':
			key, next, err := parseBracket(s, i)
			if err != nil {
				return nil, err
			}
			p = p.Bracket(key)
			expectName = false
			i = next
		default:
			if !expectName {
				return nil, &ParseError{Path: s, Offset: i, Reason: "expected '.' or '['"}
			}
			end := i
			for end < len(s) && s[end] != '.' && s[end] != '[' {
				end++
			}
			p = p.Dot(s[i:end])
			expectName = false
			i = end
		}
	}
	if expectName && len(s) > 0 {
		return nil, &ParseError{Path: s, Offset: len(s), Reason: "trailing '.'"}
	}
	return p, nil
}

// parseBracket parses [key], ["key"] or ['key'] starting at s[start] == '['.
func parseBracket(s string, start int) (string, int, error) {
	i := start + 1
	if i < len(s) && (s[i] == '"' || s[i] == '\'') {
		quote := s[i]
		var b strings.Builder
		for i++; i < len(s); i++ {
			switch s[i] {
			case '\\':
				if i+1 < len(s) {
					i++
					b.WriteByte(s[i])
				}
			case quote:
				if i+1 >= len(s) || s[i+1] != ']' {
					return "", 0, &ParseError{Path: s, Offset: i + 1, Reason: "expected ']'"}
				}
				return b.String(), i + 2, nil
			default:
				b.WriteByte(s[i])
			}
		}
		return "", 0, &ParseError{Path: s, Offset: start, Reason: "unterminated quote"}
	}

	end := strings.IndexByte(s[i:], ']')
	if end < 0 {
		return "", 0, &ParseError{Path: s, Offset: start, Reason: "unterminated '['"}
	}
	return s[i : i+end], i + end + 1, nil
}
