package minexp

import (
	"bytes"
	"fmt"
)

type NodeType int

const (
	NodeNone NodeType = iota
	NodeLiteral
	NodeBinary
	NodeSeq
	NodeIf
	NodeWhile
	NodeLet
	NodeAssign
	NodeVar
	NodePrint
	NodeFuncDef
	NodeFuncCall
)

var nodeTypeNames = [...]string{
	NodeNone:     "none",
	NodeLiteral:  "literal",
	NodeBinary:   "binary",
	NodeSeq:      "seq",
	NodeIf:       "if",
	NodeWhile:    "while",
	NodeLet:      "let",
	NodeAssign:   "assign",
	NodeVar:      "var",
	NodePrint:    "print",
	NodeFuncDef:  "def",
	NodeFuncCall: "call",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
	return nodeTypeNames[t]
}

// Op is the operator of a binary node.
type Op int

const (
	OpAdd Op = iota
	OpMul
	OpEq
	OpLt
	OpGt
)

var opNames = [...]string{
	OpAdd: "add",
	OpMul: "mul",
	OpEq:  "eq",
	OpLt:  "lt",
	OpGt:  "gt",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// Func is a callable function definition stored in an environment's
// function namespace. A Func owned by a FuncDef node is shared by every
// environment that evaluates it; Env.LookupFunc hands out copies.
type Func struct {
	Name   string
	Params []string
	Body   *Node
}

// Node is one immutable expression tree node. The zero value is a no-op.
type Node struct {
	t    NodeType
	v    int64
	op   Op
	name string
	kids []*Node
	fn   *Func
}

func Num(n int64) *Node {
	return &Node{t: NodeLiteral, v: n}
}

// Binary builds a binary operator node. Add and Mul wrap around on int64
// overflow.
func Binary(op Op, lhs, rhs *Node) *Node {
	if op < OpAdd || op > OpGt {
		panic(fmt.Sprintf("minexp: invalid operator %v", op))
	}
	mustNode(op.String(), lhs, rhs)
	return &Node{t: NodeBinary, op: op, kids: []*Node{lhs, rhs}}
}

func Add(lhs, rhs *Node) *Node { return Binary(OpAdd, lhs, rhs) }
func Mul(lhs, rhs *Node) *Node { return Binary(OpMul, lhs, rhs) }
func Eq(lhs, rhs *Node) *Node  { return Binary(OpEq, lhs, rhs) }
func Lt(lhs, rhs *Node) *Node  { return Binary(OpLt, lhs, rhs) }
func Gt(lhs, rhs *Node) *Node  { return Binary(OpGt, lhs, rhs) }

// Seq evaluates nodes in order inside one new scope.
func Seq(nodes ...*Node) *Node {
	mustNode("seq", nodes...)
	return &Node{t: NodeSeq, kids: copyNodes(nodes)}
}

func If(cond, then, els *Node) *Node {
	mustNode("if", cond, then, els)
	return &Node{t: NodeIf, kids: []*Node{cond, then, els}}
}

func While(cond, body *Node) *Node {
	mustNode("while", cond, body)
	return &Node{t: NodeWhile, kids: []*Node{cond, body}}
}

func Let(name string, value *Node) *Node {
	mustNode("let", value)
	return &Node{t: NodeLet, name: name, kids: []*Node{value}}
}

func Assign(name string, value *Node) *Node {
	mustNode("assign", value)
	return &Node{t: NodeAssign, name: name, kids: []*Node{value}}
}

func Var(name string) *Node {
	return &Node{t: NodeVar, name: name}
}

func Print(value *Node) *Node {
	mustNode("print", value)
	return &Node{t: NodePrint, kids: []*Node{value}}
}

func None() *Node {
	return &Node{t: NodeNone}
}

// FuncDef builds a node which registers a function when evaluated.
func FuncDef(name string, params []string, body *Node) *Node {
	mustNode("def", body)
	ps := append([]string(nil), params...)
	return &Node{
		t:    NodeFuncDef,
		name: name,
		kids: []*Node{body},
		fn:   &Func{Name: name, Params: ps, Body: body},
	}
}

// Call builds a function call. The number of args is not checked against
// the callee's parameters.
func Call(name string, args ...*Node) *Node {
	mustNode("call", args...)
	return &Node{t: NodeFuncCall, name: name, kids: copyNodes(args)}
}

func mustNode(form string, nodes ...*Node) {
	for i, n := range nodes {
		if n == nil {
			panic(fmt.Sprintf("minexp: nil operand %d for %s", i, form))
		}
	}
}

func copyNodes(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	return append([]*Node(nil), nodes...)
}

func (n *Node) Type() NodeType { return n.t }

// Op returns the operator of a binary node.
func (n *Node) Op() Op { return n.op }

// Value returns the literal value of a literal node.
func (n *Node) Value() int64 { return n.v }

// Name returns the variable or function name the node refers to.
func (n *Node) Name() string { return n.name }

// Params returns a copy of a function definition's parameter names.
func (n *Node) Params() []string {
	if n.fn == nil {
		return nil
	}
	return append([]string(nil), n.fn.Params...)
}

// Children returns a copy of the node's operands in evaluation order.
func (n *Node) Children() []*Node {
	return copyNodes(n.kids)
}

func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	var buf bytes.Buffer
	switch n.t {
	case NodeLiteral:
		fmt.Fprint(&buf, n.v)
	case NodeNone:
		fmt.Fprint(&buf, "(none)")
	case NodeVar:
		fmt.Fprintf(&buf, "(var %s)", n.name)
	case NodeBinary:
		fmt.Fprintf(&buf, "(%v %v %v)", n.op, n.kids[0], n.kids[1])
	case NodeLet, NodeAssign:
		fmt.Fprintf(&buf, "(%v %s %v)", n.t, n.name, n.kids[0])
	case NodeFuncDef:
		fmt.Fprintf(&buf, "(def %s %v %v)", n.name, n.fn.Params, n.kids[0])
	case NodeFuncCall:
		fmt.Fprintf(&buf, "(call %s", n.name)
		for _, k := range n.kids {
			fmt.Fprintf(&buf, " %v", k)
		}
		fmt.Fprint(&buf, ")")
	default:
		fmt.Fprintf(&buf, "(%v", n.t)
		for _, k := range n.kids {
			fmt.Fprintf(&buf, " %v", k)
		}
		fmt.Fprint(&buf, ")")
	}
	return buf.String()
}
