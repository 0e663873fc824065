// Command minexp evaluates expression trees stored as YAML or JSON.
//
// Usage:
//
//	minexp run [flags] <file>...   Evaluate tree files
//	minexp fmt <file>              Print a tree file in canonical form
//	minexp lib                     List the bundled library functions
//	minexp demo                    Run the built-in fib demo
//	minexp repl                    Start interactive REPL
//
// With no command, minexp starts the REPL when stdin is a terminal and
// otherwise evaluates the program read from stdin.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/minexp"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  minexp run [-lib] [-max-steps N] [-j N] [-v] <file>...")
	fmt.Fprintln(w, "  minexp fmt  <file>")
	fmt.Fprintln(w, "  minexp lib")
	fmt.Fprintln(w, "  minexp demo")
	fmt.Fprintln(w, "  minexp repl [-lib] [-v]")
}

type evalFlags struct {
	lib      bool
	maxSteps int64
	verbose  bool
}

func (f *evalFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&f.lib, "lib", false, "preload the bundled library functions")
	fs.Int64Var(&f.maxSteps, "max-steps", 0, "abort after evaluating this many nodes (0 means no limit)")
	fs.BoolVar(&f.verbose, "v", false, "log function calls")
}

func (f *evalFlags) options(ctx context.Context, logger *slog.Logger) []minexp.Option {
	return []minexp.Option{
		minexp.WithContext(ctx),
		minexp.WithLogger(logger),
		minexp.WithMaxSteps(f.maxSteps),
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	args := os.Args[1:]
	if len(args) == 0 && (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) {
		args = []string{"repl"}
	}
	code := run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return cmdStdin(ctx, stdin, stdout, stderr)
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "run":
		return cmdRun(ctx, args, stdout, stderr)
	case "fmt":
		return cmdFmt(args, stdout, stderr)
	case "lib":
		return cmdLib(stdout, stderr)
	case "demo":
		return cmdDemo(stdout, stderr)
	case "repl":
		return cmdRepl(ctx, args)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	}
	fmt.Fprintf(stderr, "error: unknown command '%s'\n", cmd)
	usage(stderr)
	return 2
}

func parseFile(name string) ([]*minexp.Node, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	nodes, err := minexp.NewParser(f).ParseAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return nodes, nil
}

func newRootEnv(lib bool, out io.Writer) (*minexp.Env, error) {
	env := minexp.NewEnv(nil)
	env.SetOutput(out)
	if lib {
		if err := minexp.LoadLib(env); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// parseFlags returns the exit code to use when parsing stops the command.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

// ---- run command ----

func cmdRun(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var ef evalFlags
	ef.register(fs)
	jobs := fs.Int("j", 4, "evaluate at most this many files at once")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "error: missing file argument")
		return 2
	}
	logger := newLogger(stderr, ef.verbose)

	programs := make([]minexp.Program, 0, fs.NArg())
	for _, name := range fs.Args() {
		nodes, err := parseFile(name)
		if err != nil {
			logger.Error("parse failed", "error", err)
			return 1
		}
		programs = append(programs, minexp.Program{Name: name, Nodes: nodes, Lib: ef.lib})
	}

	if len(programs) == 1 {
		return evalProgram(ctx, programs[0], ef, stdout, logger)
	}

	results, err := minexp.RunAll(ctx, programs, *jobs, ef.options(ctx, logger)...)
	if err != nil {
		logger.Error("batch aborted", "error", err)
		return 1
	}
	code := 0
	for _, r := range results {
		fmt.Fprintf(stdout, "==> %s <==\n", r.Name)
		fmt.Fprint(stdout, r.Output)
		if r.Err != nil {
			logger.Error("evaluation failed", "file", r.Name, "error", r.Err)
			code = 1
			continue
		}
		fmt.Fprintln(stdout, r.Value)
	}
	return code
}

func evalProgram(ctx context.Context, prog minexp.Program, ef evalFlags, stdout io.Writer, logger *slog.Logger) int {
	env, err := newRootEnv(prog.Lib, stdout)
	if err != nil {
		logger.Error("cannot load library", "error", err)
		return 1
	}
	v, err := env.EvalAll(prog.Nodes, ef.options(ctx, logger)...)
	if err != nil {
		logger.Error("evaluation failed", "file", prog.Name, "error", err)
		return 1
	}
	fmt.Fprintln(stdout, v)
	return 0
}

func cmdStdin(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := newLogger(stderr, false)
	nodes, err := minexp.NewParser(stdin).ParseAll()
	if err != nil {
		logger.Error("parse failed", "error", err)
		return 1
	}
	return evalProgram(ctx, minexp.Program{Name: "<stdin>", Nodes: nodes}, evalFlags{}, stdout, logger)
}

// ---- fmt command ----

func cmdFmt(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "error: fmt takes exactly one file")
		return 2
	}
	nodes, err := parseFile(args[0])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := minexp.Format(stdout, nodes...); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// ---- lib command ----

func cmdLib(stdout, stderr io.Writer) int {
	env, err := newRootEnv(true, io.Discard)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	for _, name := range env.Funcs() {
		fn, err := env.LookupFunc(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(stdout, "%s(%s)\n", name, strings.Join(fn.Params, ", "))
	}
	return 0
}

// ---- demo command ----

func cmdDemo(stdout, stderr io.Writer) int {
	env := minexp.NewEnv(nil)
	env.SetOutput(stdout)
	v, err := env.Eval(demoProgram())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, v)
	return 0
}

// demoProgram prints fib(i) for i from 10 down to 1.
func demoProgram() *minexp.Node {
	i := func() *minexp.Node { return minexp.Var("i") }
	fib := minexp.FuncDef("fib", []string{"i"}, minexp.Seq(
		minexp.If(
			minexp.Lt(i(), minexp.Num(3)),
			minexp.Num(1),
			minexp.Add(
				minexp.Call("fib", minexp.Add(i(), minexp.Num(-1))),
				minexp.Call("fib", minexp.Add(i(), minexp.Num(-2))),
			),
		),
	))
	return minexp.Seq(
		fib,
		minexp.Let("i", minexp.Num(10)),
		minexp.While(minexp.Gt(i(), minexp.Num(0)), minexp.Seq(
			minexp.Print(minexp.Call("fib", i())),
			minexp.Assign("i", minexp.Add(i(), minexp.Num(-1))),
		)),
	)
}
