package minexp

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"
)

// Program is a named list of top-level trees evaluated in one root
// environment.
type Program struct {
	Name  string
	Nodes []*Node
	// Lib preloads the bundled library functions.
	Lib bool
}

// Result holds what one Program printed and returned.
type Result struct {
	Name   string
	Value  int64
	Output string
	Err    error
}

// RunAll evaluates programs concurrently, at most limit at a time (no limit
// when limit <= 0). Every program gets its own root environment, so a
// failing program does not affect the others; its error is stored in its
// Result. RunAll itself only fails when ctx is done.
func RunAll(ctx context.Context, programs []Program, limit int, opts ...Option) ([]Result, error) {
	results := make([]Result, len(programs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	opts = append([]Option{WithContext(gctx)}, opts...)

	for i, prog := range programs {
		i, prog := i, prog
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = run(prog, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func run(prog Program, opts []Option) Result {
	var buf bytes.Buffer
	env := NewEnv(nil)
	env.SetOutput(&buf)

	r := Result{Name: prog.Name}
	if prog.Lib {
		if err := LoadLib(env); err != nil {
			r.Err = err
			return r
		}
	}
	r.Value, r.Err = env.EvalAll(prog.Nodes, opts...)
	r.Output = buf.String()
	return r
}
