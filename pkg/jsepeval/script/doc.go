// Package script loads Starlark modules whose functions can be called from
// expressions.
//
// A module is executed once at load time and its globals are frozen. Every
// public top-level def becomes a value.Function and every other public
// global is converted to a plain Go value, so the result of Globals can be
// used directly as evaluation data or merged into it:
//
//	mod, err := script.Load("helpers.star", src)
//	data := mod.Globals()
//	data["price"] = 12.5
//	v, err := jsepeval.New().Evaluate(ctx, tree, data)
//
// Numbers cross the boundary as float64 on the Go side. Integral floats are
// passed to Starlark as int, so that range(n) and indexing work.
package script
