package minexp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func eval(t *testing.T, node *Node) int64 {
	t.Helper()
	env := NewEnv(nil)
	env.SetOutput(&bytes.Buffer{})
	v, err := env.Eval(node)
	if err != nil {
		t.Fatalf("eval %v: %v", node, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	pairs := [][2]int64{{0, 0}, {1, 2}, {-7, 3}, {123456, -654321}, {math.MaxInt64, 1}, {math.MinInt64, -1}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if got, want := eval(t, Add(Num(a), Num(b))), a+b; got != want {
			t.Errorf("add(%d, %d) = %d, want %d", a, b, got, want)
		}
		if got, want := eval(t, Mul(Num(a), Num(b))), a*b; got != want {
			t.Errorf("mul(%d, %d) = %d, want %d", a, b, got, want)
		}
	}
}

func TestOverflowWraps(t *testing.T) {
	if got := eval(t, Add(Num(math.MaxInt64), Num(1))); got != math.MinInt64 {
		t.Errorf("got %d, want %d", got, int64(math.MinInt64))
	}
}

func TestComparisons(t *testing.T) {
	b := func(v bool) int64 {
		if v {
			return 1
		}
		return 0
	}
	pairs := [][2]int64{{1, 1}, {1, 2}, {2, 1}, {-5, 5}, {0, 0}}
	for _, p := range pairs {
		x, y := p[0], p[1]
		if got := eval(t, Eq(Num(x), Num(y))); got != b(x == y) {
			t.Errorf("eq(%d, %d) = %d", x, y, got)
		}
		if got := eval(t, Lt(Num(x), Num(y))); got != b(x < y) {
			t.Errorf("lt(%d, %d) = %d", x, y, got)
		}
		if got := eval(t, Gt(Num(x), Num(y))); got != b(x > y) {
			t.Errorf("gt(%d, %d) = %d", x, y, got)
		}
	}
}

func TestOnlyOneIsTrue(t *testing.T) {
	tests := []struct {
		cond int64
		want int64
	}{
		{1, 10},
		{0, 20},
		{2, 20},
		{-1, 20},
	}
	for _, tt := range tests {
		if got := eval(t, If(Num(tt.cond), Num(10), Num(20))); got != tt.want {
			t.Errorf("if %d: got %d, want %d", tt.cond, got, tt.want)
		}
	}
}

func TestLetThenVar(t *testing.T) {
	if got := eval(t, Seq(Let("x", Num(5)), Var("x"))); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestDuplicateLet(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.Eval(Seq(Let("x", Num(5)), Let("x", Num(6))))
	if !errors.Is(err, ErrDuplicateDeclaration) {
		t.Fatalf("got %v, want ErrDuplicateDeclaration", err)
	}
	var ne *NameError
	if !errors.As(err, &ne) || ne.Name != "x" {
		t.Errorf("got %#v, want name x", err)
	}
}

func TestShadowing(t *testing.T) {
	var buf bytes.Buffer
	env := NewEnv(nil)
	env.SetOutput(&buf)
	v, err := env.Eval(Seq(
		Let("x", Num(1)),
		Seq(
			Let("x", Num(2)),
			Print(Var("x")),
		),
		Var("x"),
	))
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("outer x = %d, want 1", v)
	}
	if got := buf.String(); got != "2\n" {
		t.Errorf("inner x printed %q, want %q", got, "2\n")
	}
}

func TestAssignReachesAncestor(t *testing.T) {
	env := NewEnv(nil)
	if err := env.Declare("x", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Eval(Seq(Assign("x", Num(9)))); err != nil {
		t.Fatal(err)
	}
	if v, _ := env.Lookup("x"); v != 9 {
		t.Errorf("x = %d, want 9", v)
	}
	if got := env.Vars(); !cmp.Equal(got, []string{"x"}) {
		t.Errorf("root vars = %v", got)
	}
}

func TestWhileCounter(t *testing.T) {
	env := NewEnv(nil)
	if err := env.Declare("i", 0); err != nil {
		t.Fatal(err)
	}
	v, err := env.Eval(While(
		Lt(Var("i"), Num(3)),
		Seq(Assign("i", Add(Var("i"), Num(1)))),
	))
	if err != nil {
		t.Fatal(err)
	}
	if v != 3 {
		t.Errorf("loop value = %d, want 3", v)
	}
	if i, _ := env.Lookup("i"); i != 3 {
		t.Errorf("i = %d, want 3", i)
	}
}

func TestWhileNeverRuns(t *testing.T) {
	if got := eval(t, While(Num(0), Num(42))); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestWhileDoesNotScopeBody(t *testing.T) {
	env := NewEnv(nil)
	if err := env.Declare("i", 0); err != nil {
		t.Fatal(err)
	}
	// The body is not a sequence, so its let lands in env and the second
	// iteration collides with the first.
	_, err := env.Eval(While(
		Lt(Var("i"), Num(2)),
		Let("x", Assign("i", Add(Var("i"), Num(1)))),
	))
	if !errors.Is(err, ErrDuplicateDeclaration) {
		t.Fatalf("got %v, want ErrDuplicateDeclaration", err)
	}
	if v, _ := env.Lookup("x"); v != 1 {
		t.Errorf("x = %d, want 1", v)
	}
}

func fibProgram(n int64) *Node {
	i := func() *Node { return Var("i") }
	return Seq(
		FuncDef("fib", []string{"i"}, If(
			Lt(i(), Num(3)),
			Num(1),
			Add(
				Call("fib", Add(i(), Num(-1))),
				Call("fib", Add(i(), Num(-2))),
			),
		)),
		Call("fib", Num(n)),
	)
}

func TestFib(t *testing.T) {
	if got := eval(t, fibProgram(10)); got != 55 {
		t.Errorf("fib(10) = %d, want 55", got)
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := NewEnv(nil).Eval(Var("y"))
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("got %v, want ErrUndefinedVariable", err)
	}
	if err.Error() != "undefined variable: y" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestUndefinedFunction(t *testing.T) {
	// The function is resolved before any argument is evaluated.
	_, err := NewEnv(nil).Eval(Call("g", Var("nope")))
	if !errors.Is(err, ErrUndefinedFunction) {
		t.Fatalf("got %v, want ErrUndefinedFunction", err)
	}
	if err.Error() != "undefined function: g" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestArgumentsUseCallerScope(t *testing.T) {
	// If b's argument were evaluated in the call frame it would see a = 100.
	got := eval(t, Seq(
		Let("a", Num(1)),
		FuncDef("f", []string{"a", "b"}, Add(Var("a"), Var("b"))),
		Call("f", Num(100), Var("a")),
	))
	if got != 101 {
		t.Errorf("got %d, want 101", got)
	}
}

func TestCallFrameIsDiscarded(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.Eval(Seq(
		FuncDef("f", []string{"p"}, Let("local", Var("p"))),
		Call("f", Num(1)),
		Call("f", Num(2)),
		Var("local"),
	))
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("got %v, want ErrUndefinedVariable", err)
	}
}

func TestDuplicateParameter(t *testing.T) {
	_, err := NewEnv(nil).Eval(Seq(
		FuncDef("f", []string{"a", "a"}, Var("a")),
		Call("f", Num(1), Num(2)),
	))
	if !errors.Is(err, ErrDuplicateDeclaration) {
		t.Fatalf("got %v, want ErrDuplicateDeclaration", err)
	}
}

func TestLeftBeforeRight(t *testing.T) {
	got := eval(t, Seq(
		Let("x", Num(1)),
		Add(Assign("x", Num(10)), Mul(Var("x"), Num(2))),
	))
	if got != 30 {
		t.Errorf("got %d, want 30", got)
	}
}

func TestPureSubtreeIsRepeatable(t *testing.T) {
	env := NewEnv(nil)
	env.Declare("a", 6)
	env.Declare("b", 7)
	pure := If(Gt(Var("a"), Var("b")), Var("a"), Mul(Var("a"), Var("b")))
	first, err := env.Eval(pure)
	if err != nil {
		t.Fatal(err)
	}
	second, err := env.Eval(pure)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || first != 42 {
		t.Errorf("got %d then %d, want 42 twice", first, second)
	}
}

func TestEmptySeq(t *testing.T) {
	if got := eval(t, Seq()); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := eval(t, &Node{}); got != 0 {
		t.Errorf("zero node = %d, want 0", got)
	}
}

func TestPrintReturnsValue(t *testing.T) {
	var buf bytes.Buffer
	env := NewEnv(nil)
	env.SetOutput(&buf)
	v, err := env.Eval(Seq(Print(Num(3)), Print(Add(Num(3), Num(4)))))
	if err != nil {
		t.Fatal(err)
	}
	if v != 7 {
		t.Errorf("got %d, want 7", v)
	}
	if diff := cmp.Diff("3\n7\n", buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestMaxSteps(t *testing.T) {
	forever := While(Num(1), None())
	_, err := NewEnv(nil).Eval(forever, WithMaxSteps(1000))
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("got %v, want ErrStepLimit", err)
	}

	// Limits are per evaluation.
	env := NewEnv(nil)
	for i := 0; i < 3; i++ {
		if _, err := env.Eval(fibProgram(5), WithMaxSteps(200)); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
}

func TestContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEnv(nil).Eval(While(Num(1), None()), WithContext(ctx))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestLoggerSeesCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if _, err := NewEnv(nil).Eval(fibProgram(3), WithLogger(logger)); err != nil {
		t.Fatal(err)
	}
	// fib(3) calls fib(2) and fib(1).
	if n := strings.Count(buf.String(), "func=fib"); n != 3 {
		t.Errorf("logged %d calls, want 3:\n%s", n, buf.String())
	}
}

func TestEvalAllSharesEnv(t *testing.T) {
	env := NewEnv(nil)
	v, err := env.EvalAll([]*Node{
		Let("x", Num(2)),
		FuncDef("double", []string{"n"}, Mul(Var("n"), Num(2))),
		Call("double", Var("x")),
	})
	if err != nil {
		t.Fatal(err)
	}
	if v != 4 {
		t.Errorf("got %d, want 4", v)
	}
	if diff := cmp.Diff([]string{"double"}, env.Funcs()); diff != "" {
		t.Errorf("funcs mismatch (-want +got):\n%s", diff)
	}
}
