package minexp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

type opFn func(*machine, *Env, *Node) (int64, error)

var ops map[NodeType]opFn

func init() {
	ops = map[NodeType]opFn{
		NodeNone:     doNone,
		NodeLiteral:  doLiteral,
		NodeBinary:   doBinary,
		NodeSeq:      doSeq,
		NodeIf:       doIf,
		NodeWhile:    doWhile,
		NodeLet:      doLet,
		NodeAssign:   doSetq,
		NodeVar:      doVar,
		NodePrint:    doPrint,
		NodeFuncDef:  doDefun,
		NodeFuncCall: doFuncall,
	}
}

// Option configures a single evaluation.
type Option func(*machine)

// WithMaxSteps bounds the number of nodes one evaluation may visit.
// Zero or less means no bound.
func WithMaxSteps(n int64) Option {
	return func(m *machine) {
		m.maxSteps = n
	}
}

// WithContext lets loops and function calls stop once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(m *machine) {
		m.ctx = ctx
	}
}

// WithLogger logs function calls at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(m *machine) {
		m.logger = logger
	}
}

type machine struct {
	ctx      context.Context
	logger   *slog.Logger
	maxSteps int64
	steps    int64
	depth    int
}

func newMachine(opts []Option) *machine {
	m := &machine{
		ctx:    context.Background(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Eval evaluates node against e and returns its value.
func (e *Env) Eval(node *Node, opts ...Option) (int64, error) {
	return newMachine(opts).eval(e, node)
}

// EvalAll evaluates top-level nodes directly in e, without opening a new
// scope, and returns the value of the last one.
func (e *Env) EvalAll(nodes []*Node, opts ...Option) (int64, error) {
	m := newMachine(opts)
	var ret int64
	var err error
	for _, node := range nodes {
		ret, err = m.eval(e, node)
		if err != nil {
			return 0, err
		}
	}
	return ret, nil
}

func (m *machine) eval(env *Env, node *Node) (int64, error) {
	if node == nil {
		return 0, errors.New("nil node")
	}
	if m.maxSteps > 0 {
		m.steps++
		if m.steps > m.maxSteps {
			return 0, fmt.Errorf("%w: %d", ErrStepLimit, m.maxSteps)
		}
	}
	fn, ok := ops[node.t]
	if !ok {
		return 0, fmt.Errorf("invalid node type: %v", node.t)
	}
	return fn(m, env, node)
}

func (m *machine) check() error {
	if err := m.ctx.Err(); err != nil {
		return fmt.Errorf("evaluation aborted: %w", err)
	}
	return nil
}

func truth(v int64) bool {
	return v == 1
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func doNone(m *machine, env *Env, node *Node) (int64, error) {
	return 0, nil
}

func doLiteral(m *machine, env *Env, node *Node) (int64, error) {
	return node.v, nil
}

func doBinary(m *machine, env *Env, node *Node) (int64, error) {
	lhs, err := m.eval(env, node.kids[0])
	if err != nil {
		return 0, err
	}
	rhs, err := m.eval(env, node.kids[1])
	if err != nil {
		return 0, err
	}
	switch node.op {
	case OpAdd:
		return lhs + rhs, nil
	case OpMul:
		return lhs * rhs, nil
	case OpEq:
		return boolInt(lhs == rhs), nil
	case OpLt:
		return boolInt(lhs < rhs), nil
	case OpGt:
		return boolInt(lhs > rhs), nil
	}
	return 0, fmt.Errorf("invalid operator: %v", node.op)
}

func doSeq(m *machine, env *Env, node *Node) (int64, error) {
	scope := NewEnv(env)

	var ret int64
	var err error
	for _, kid := range node.kids {
		ret, err = m.eval(scope, kid)
		if err != nil {
			return 0, err
		}
	}
	return ret, nil
}

func doIf(m *machine, env *Env, node *Node) (int64, error) {
	v, err := m.eval(env, node.kids[0])
	if err != nil {
		return 0, err
	}
	if truth(v) {
		return m.eval(env, node.kids[1])
	}
	return m.eval(env, node.kids[2])
}

func doWhile(m *machine, env *Env, node *Node) (int64, error) {
	var ret int64
	for {
		if err := m.check(); err != nil {
			return 0, err
		}
		v, err := m.eval(env, node.kids[0])
		if err != nil {
			return 0, err
		}
		if !truth(v) {
			break
		}
		ret, err = m.eval(env, node.kids[1])
		if err != nil {
			return 0, err
		}
	}
	return ret, nil
}

func doLet(m *machine, env *Env, node *Node) (int64, error) {
	v, err := m.eval(env, node.kids[0])
	if err != nil {
		return 0, err
	}
	if err := env.Declare(node.name, v); err != nil {
		return 0, err
	}
	return v, nil
}

func doSetq(m *machine, env *Env, node *Node) (int64, error) {
	v, err := m.eval(env, node.kids[0])
	if err != nil {
		return 0, err
	}
	if err := env.Assign(node.name, v); err != nil {
		return 0, err
	}
	return v, nil
}

func doVar(m *machine, env *Env, node *Node) (int64, error) {
	return env.Lookup(node.name)
}

func doPrint(m *machine, env *Env, node *Node) (int64, error) {
	v, err := m.eval(env, node.kids[0])
	if err != nil {
		return 0, err
	}
	if _, err := fmt.Fprintln(env.out, v); err != nil {
		return 0, err
	}
	return v, nil
}

func doDefun(m *machine, env *Env, node *Node) (int64, error) {
	env.DeclareFunc(node.name, node.fn)
	return 0, nil
}

// doFuncall binds arguments, evaluated in the caller's scope, to the
// parameters in a fresh frame. When the counts differ only the common
// prefix is bound.
func doFuncall(m *machine, env *Env, node *Node) (int64, error) {
	fn, err := env.lookupFunc(node.name)
	if err != nil {
		return 0, err
	}
	if err := m.check(); err != nil {
		return 0, err
	}

	scope := NewEnv(env)
	n := min(len(fn.Params), len(node.kids))
	for i := 0; i < n; i++ {
		v, err := m.eval(env, node.kids[i])
		if err != nil {
			return 0, err
		}
		if err := scope.Declare(fn.Params[i], v); err != nil {
			return 0, err
		}
	}

	m.depth++
	defer func() { m.depth-- }()
	m.logger.Debug("call", "func", fn.Name, "args", n, "depth", m.depth)
	return m.eval(scope, fn.Body)
}
