// Command jsepeval evaluates jsep expression trees from the command line and
// serves them over gRPC.
//
// Usage:
//
//	jsepeval eval  -expr <tree> [-data <json>] [-config <file>] [-script <file>]
//	jsepeval rules -config <file> [-data <json>] [-script <file>]
//	jsepeval serve [-addr <host:port>] [-config <file>] [-script <file>]
//
// Trees and data are JSON. A value of "-" reads stdin and "@path" reads a
// file. Logs go to stderr: text on a terminal, JSON otherwise.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

const usageText = `usage: jsepeval <command> [flags]

commands:
  eval   evaluate one expression tree against data
  rules  match data against the rules of a config file
  serve  serve the Evaluator gRPC service

run "jsepeval <command> -h" for command flags.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return 2
	}

	var cmd func(*commonFlags, []string) error
	switch args[0] {
	case "eval":
		cmd = func(c *commonFlags, rest []string) error { return runEval(c, rest, stdin, stdout) }
	case "rules":
		cmd = func(c *commonFlags, rest []string) error { return runRules(c, rest, stdin, stdout) }
	case "serve":
		cmd = runServe
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usageText)
		return 0
	default:
		fmt.Fprintf(stderr, "jsepeval: unknown command %q\n%s", args[0], usageText)
		return 2
	}

	common := &commonFlags{name: args[0], stderr: stderr}
	if err := cmd(common, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "jsepeval %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

// commonFlags are shared by every command.
type commonFlags struct {
	name    string
	stderr  io.Writer
	config  string
	script  string
	verbose bool
}

func (c *commonFlags) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("jsepeval "+c.name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.StringVar(&c.config, "config", "", "YAML or JSON config files, comma separated; later files override earlier ones")
	fs.StringVar(&c.script, "script", "", "Starlark module whose globals are visible to expressions")
	fs.BoolVar(&c.verbose, "v", false, "log at debug level")
	return fs
}

func (c *commonFlags) logger() *slog.Logger {
	return newLogger(c.stderr, c.verbose)
}

// newLogger picks a text handler for terminals and JSON for everything else.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
