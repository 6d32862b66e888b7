package script

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// Module is an executed, frozen Starlark module. It is safe for concurrent use.
type Module struct {
	name    string
	globals starlarkLib.StringDict
	cfg     loadConfig
}

// LoadFile reads and loads the module at path.
func LoadFile(path string, opts ...Option) (*Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}
	return Load(path, src, opts...)
}

// Load compiles src and executes its top level. filename is used in error
// positions only.
func Load(filename string, src []byte, opts ...Option) (*Module, error) {
	cfg := loadConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	fileOpts := &syntax.FileOptions{}
	f, err := fileOpts.Parse(filename, src, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	predeclared := starlarkLib.StringDict{}
	prog, err := starlarkLib.FileProgram(f, predeclared.Has)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	m := &Module{name: filename, cfg: cfg}
	globals, err := prog.Init(m.thread("init"), predeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExec, err)
	}
	globals.Freeze()
	m.globals = globals
	return m, nil
}

// Name returns the filename the module was loaded with.
func (m *Module) Name() string {
	return m.name
}

// Functions returns the names of the public functions, sorted.
func (m *Module) Functions() []string {
	var names []string
	for name, v := range m.globals {
		if _, ok := v.(starlarkLib.Callable); ok && public(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Globals returns the public globals as Go values, with functions as
// value.Function. Globals that cannot be converted are left out.
func (m *Module) Globals() map[string]any {
	out := make(map[string]any, len(m.globals))
	for name, v := range m.globals {
		if !public(name) {
			continue
		}
		if fn, ok := v.(starlarkLib.Callable); ok {
			out[name] = m.function(fn)
			continue
		}
		gv, err := fromStarlark(v)
		if err != nil {
			continue
		}
		out[name] = gv
	}
	return out
}

// Func returns the named public function as a value.Function.
func (m *Module) Func(name string) (value.Function, error) {
	fn, ok := m.globals[name].(starlarkLib.Callable)
	if !ok || !public(name) {
		return nil, fmt.Errorf("%w: %s", ErrNoFunction, name)
	}
	return m.function(fn), nil
}

// Call invokes the named public function with args.
func (m *Module) Call(name string, args ...any) (any, error) {
	fn, err := m.Func(name)
	if err != nil {
		return nil, err
	}
	return fn(args...)
}

func (m *Module) function(fn starlarkLib.Callable) value.Function {
	return func(args ...any) (any, error) {
		sargs := make(starlarkLib.Tuple, len(args))
		for i, a := range args {
			sv, err := toStarlark(a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", fn.Name(), i, err)
			}
			sargs[i] = sv
		}
		res, err := starlarkLib.Call(m.thread(fn.Name()), fn, sargs, nil)
		if err != nil {
			return nil, err
		}
		return fromStarlark(res)
	}
}

// thread returns a fresh thread; threads are not shared between calls.
func (m *Module) thread(name string) *starlarkLib.Thread {
	t := &starlarkLib.Thread{
		Name: name,
		Print: func(_ *starlarkLib.Thread, msg string) {
			m.cfg.logger.Info(msg, slog.String("module", m.name), slog.String("thread", name))
		},
	}
	if m.cfg.maxSteps > 0 {
		t.SetMaxExecutionSteps(m.cfg.maxSteps)
	}
	return t
}

func public(name string) bool {
	return !strings.HasPrefix(name, "_")
}
