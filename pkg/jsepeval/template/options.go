package template

// MissingPolicy decides what happens to a placeholder that does not resolve.
type MissingPolicy int

const (
	// KeepMissing leaves the placeholder text in the output. Default.
	KeepMissing MissingPolicy = iota
	// EmptyMissing replaces the placeholder with "".
	EmptyMissing
	// FailMissing leaves the text and reports every unresolved path in an
	// *MissingError.
	FailMissing
)

// Option configures an Expander.
type Option func(*Expander)

// WithMissing sets the policy for unresolved placeholders.
//
//	exp := NewExpander(WithMissing(FailMissing))
//	_, err := exp.Expand("${user.email}", data)
//	// err: template: unresolved "user.email"
func WithMissing(p MissingPolicy) Option {
	return func(e *Expander) {
		e.missing = p
	}
}

// WithBraces toggles ${path} placeholders. Enabled by default.
func WithBraces(enabled bool) Option {
	return func(e *Expander) {
		e.braces = enabled
	}
}

// WithBareNames toggles $name placeholders. Enabled by default; turn it off
// for text with literal dollar signs:
//
//	exp := NewExpander(WithBareNames(false))
//	out, _ := exp.Expand("costs $5 for $name", data)
//	// out: "costs $5 for $name"
func WithBareNames(enabled bool) Option {
	return func(e *Expander) {
		e.bareNames = enabled
	}
}

// WithFormatter replaces value.ToString as the renderer of resolved values.
func WithFormatter(format func(any) string) Option {
	return func(e *Expander) {
		if format != nil {
			e.format = format
		}
	}
}
