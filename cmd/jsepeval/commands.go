package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"google.golang.org/grpc"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/config"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/rpc"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/rules"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/script"
	"github.com/randalmurphal/jsepeval/pkg/jsepeval/value"
)

// Config keys read by the commands, besides the evaluator and rules sections.
const (
	keyScript   = "script"
	keyAddr     = "server.addr"
	defaultAddr = ":7070"
)

func runEval(c *commonFlags, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := c.flagSet()
	exprArg := fs.String("expr", "", "expression tree as jsep JSON")
	dataArg := fs.String("data", "", "data as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *exprArg == "" {
		return fmt.Errorf("-expr is required")
	}

	env, err := c.load()
	if err != nil {
		return err
	}
	src, err := readArg(*exprArg, stdin)
	if err != nil {
		return fmt.Errorf("read expression: %w", err)
	}
	data, err := readData(*dataArg, stdin)
	if err != nil {
		return err
	}

	result, err := env.evaluator.EvaluateJSON(context.Background(), src, env.withGlobals(data))
	if err != nil {
		return err
	}
	return writeResult(stdout, result)
}

func runRules(c *commonFlags, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := c.flagSet()
	dataArg := fs.String("data", "", "data as JSON; an array filters its items")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.config == "" {
		return fmt.Errorf("-config is required")
	}

	env, err := c.load()
	if err != nil {
		return err
	}
	data, err := readData(*dataArg, stdin)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if items, ok := data.([]any); ok {
		kept := make([]any, 0, len(items))
		for _, item := range items {
			ok, err := env.rules.All(ctx, env.withGlobals(item))
			if err != nil {
				return err
			}
			if ok {
				kept = append(kept, item)
			}
		}
		return writeResult(stdout, kept)
	}

	matched, err := env.rules.Match(ctx, env.withGlobals(data))
	if err != nil {
		return err
	}
	if matched == nil {
		matched = []string{}
	}
	return writeResult(stdout, matched)
}

func runServe(c *commonFlags, args []string) error {
	fs := c.flagSet()
	addr := fs.String("addr", "", "listen address (default "+defaultAddr+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := c.load()
	if err != nil {
		return err
	}
	if *addr == "" {
		*addr = env.cfg.String(keyAddr, defaultAddr)
	}

	opts := []rpc.ServerOption{
		rpc.WithEvaluator(env.evaluator),
		rpc.WithGlobals(env.globals),
		rpc.WithLogger(env.logger),
	}
	if env.rules.Len() > 0 {
		opts = append(opts, rpc.WithRules(env.rules))
	}

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		return err
	}
	srv := grpc.NewServer()
	rpc.Register(srv, rpc.NewServer(opts...))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()

	env.logger.Info("serving", slog.String("addr", lis.Addr().String()), slog.Int("rules", env.rules.Len()))
	return srv.Serve(lis)
}

// environment is what every command builds from the common flags.
type environment struct {
	cfg       config.Config
	logger    *slog.Logger
	evaluator *jsepeval.Evaluator
	rules     *rules.Set
	globals   map[string]any
}

func (c *commonFlags) load() (*environment, error) {
	env := &environment{logger: c.logger()}
	var paths []string
	if c.config != "" {
		paths = strings.Split(c.config, ",")
	}
	cfg, err := config.FromFiles(paths...)
	if err != nil {
		return nil, err
	}
	env.cfg = cfg

	opts := append(jsepeval.FromSettings(config.Evaluator(env.cfg)), jsepeval.WithLogger(env.logger))
	env.evaluator = jsepeval.New(opts...)

	set, err := rules.FromConfig(env.cfg, rules.WithEvaluator(env.evaluator), rules.WithLogger(env.logger))
	if err != nil {
		return nil, err
	}
	env.rules = set

	path := c.script
	if path == "" {
		path = env.cfg.String(keyScript, "")
	}
	if path != "" {
		mod, err := script.LoadFile(path, script.WithLogger(env.logger))
		if err != nil {
			return nil, err
		}
		env.globals = mod.Globals()
	}
	return env, nil
}

// withGlobals overlays object data on the script globals.
func (e *environment) withGlobals(data any) any {
	if len(e.globals) == 0 {
		return data
	}
	switch d := data.(type) {
	case nil:
		return maps.Clone(e.globals)
	case map[string]any:
		merged := maps.Clone(e.globals)
		maps.Copy(merged, d)
		return merged
	}
	return data
}

// readArg returns s itself, the contents of stdin for "-", or of the file
// named after "@".
func readArg(s string, stdin io.Reader) ([]byte, error) {
	switch {
	case s == "-":
		return io.ReadAll(stdin)
	case strings.HasPrefix(s, "@"):
		return os.ReadFile(s[1:])
	}
	return []byte(s), nil
}

func readData(arg string, stdin io.Reader) (any, error) {
	if arg == "" {
		return nil, nil
	}
	raw, err := readArg(arg, stdin)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	return data, nil
}

// writeResult prints v as JSON. Values JSON cannot represent are printed
// with JS string conversion.
func writeResult(w io.Writer, v any) error {
	if value.IsUndefined(v) {
		_, err := fmt.Fprintln(w, "undefined")
		return err
	}
	out, err := json.Marshal(v)
	if err != nil {
		_, err = fmt.Fprintln(w, value.ToString(v))
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
