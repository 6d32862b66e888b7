package script

import "errors"

var (
	// ErrCompile indicates the module source failed to parse or resolve.
	ErrCompile = errors.New("compile starlark module")

	// ErrExec indicates the module failed while executing its top level.
	ErrExec = errors.New("execute starlark module")

	// ErrNoFunction indicates Call was given a name that is not a public function.
	ErrNoFunction = errors.New("no such function")

	// ErrConvert indicates a value that has no counterpart on the other side.
	ErrConvert = errors.New("unsupported value")
)
