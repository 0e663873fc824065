package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/minexp"
)

// ---- ANSI colors ----

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

const (
	promptMain = colorGreen + "minexp> " + colorReset
	promptMore = colorGray + "...     " + colorReset
)

// ---- repl command ----

func cmdRepl(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	var ef evalFlags
	ef.register(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".minexp_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            promptMain,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		return 1
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s%sminexp REPL%s %s(one tree per entry, :vars, :funcs, 'exit' or Ctrl+D to quit)%s\n\n",
		colorBold, colorCyan, colorReset, colorGray, colorReset)

	env, err := newRootEnv(ef.lib, rl.Stdout())
	if err != nil {
		fmt.Fprintf(rl.Stderr(), "%serror: %s%s\n", colorRed, err, colorReset)
		return 1
	}
	opts := ef.options(ctx, newLogger(rl.Stderr(), ef.verbose))

	var accumulated strings.Builder
	depth := 0

	for {
		if depth > 0 {
			rl.SetPrompt(promptMore)
		} else {
			rl.SetPrompt(promptMain)
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if depth > 0 {
					accumulated.Reset()
					depth = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s(use 'exit' or Ctrl+D to quit)%s\n", colorGray, colorReset)
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if depth == 0 {
			switch strings.TrimSpace(line) {
			case "exit":
				return 0
			case ":vars":
				printBindings(rl.Stdout(), env.Vars(), env)
				continue
			case ":funcs":
				for _, name := range env.Funcs() {
					if fn, err := env.LookupFunc(name); err == nil {
						fmt.Fprintf(rl.Stdout(), "%s(%s)\n", name, strings.Join(fn.Params, ", "))
					}
				}
				continue
			}
		}

		depth += bracketDepth(line)
		accumulated.WriteString(line)
		accumulated.WriteString("\n")
		if depth > 0 {
			continue
		}
		depth = 0

		source := accumulated.String()
		accumulated.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		v, err := evalSource(env, source, opts)
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "%serror: %s%s\n", colorRed, err, colorReset)
			continue
		}
		fmt.Fprintf(rl.Stdout(), "%s=> %d%s\n", colorGray, v, colorReset)
	}
	return 0
}

// evalSource evaluates every tree in source directly in env, so top-level
// let and def bindings survive to the next entry.
func evalSource(env *minexp.Env, source string, opts []minexp.Option) (int64, error) {
	nodes, err := minexp.NewParser(strings.NewReader(source)).ParseAll()
	if err != nil {
		return 0, err
	}
	return env.EvalAll(nodes, opts...)
}

// bracketDepth returns how many flow collections line opens but does not
// close.
func bracketDepth(line string) int {
	return strings.Count(line, "{") + strings.Count(line, "[") -
		strings.Count(line, "}") - strings.Count(line, "]")
}

func printBindings(w io.Writer, names []string, env *minexp.Env) {
	for _, name := range names {
		if v, err := env.Lookup(name); err == nil {
			fmt.Fprintf(w, "%s = %d\n", name, v)
		}
	}
}
