/*
Package template expands ${path} and $name placeholders in strings.

Placeholders resolve against any data value the evaluator accepts, using
lookup path syntax:

	data := map[string]any{
	    "user": map[string]any{"name": "ada", "roles": []any{"admin"}},
	}
	s := template.Expand("${user.name} is ${user.roles[0]}", data)
	// s: "ada is admin"

$name resolves a single top-level property. Values are rendered the way
the + operator renders them when concatenating strings.

# Missing Placeholders

A placeholder is missing when its path is malformed or resolves to
nothing. By default it is kept as-is; WithMissing selects
EmptyMissing or FailMissing instead:

	exp := template.NewExpander(template.WithMissing(template.FailMissing))
	_, err := exp.Expand("${user.email}", data)
	// err: template: unresolved "user.email"

Expander is safe for concurrent use after construction.
*/
package template
