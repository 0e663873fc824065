package minexp

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseError reports a malformed tree document.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

func errorf(y *yaml.Node, format string, args ...interface{}) error {
	return &ParseError{
		Line:   y.Line,
		Column: y.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// maxAliasNodes bounds how many tree nodes alias expansion may produce for
// one document.
const maxAliasNodes = 10000

// Parser reads expression trees from a YAML or JSON stream, one tree per
// document. Aliases are expanded into separate subtrees.
type Parser struct {
	dec *yaml.Decoder

	expanding map[*yaml.Node]bool
	aliased   int
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		dec: yaml.NewDecoder(r),
	}
}

// Parse returns the next tree in the stream, or io.EOF when there is none.
func (p *Parser) Parse() (*Node, error) {
	var doc yaml.Node
	if err := p.dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errorf(&doc, "empty document")
	}
	p.aliased = 0
	return p.ParseNode(doc.Content[0])
}

// ParseAll returns every tree in the stream.
func (p *Parser) ParseAll() ([]*Node, error) {
	var nodes []*Node
	for {
		node, err := p.Parse()
		if errors.Is(err, io.EOF) {
			return nodes, nil
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// ParseNode converts one decoded YAML value into a tree.
func (p *Parser) ParseNode(y *yaml.Node) (*Node, error) {
	if len(p.expanding) > 0 {
		p.aliased++
		if p.aliased > maxAliasNodes {
			return nil, errorf(y, "alias expansion exceeds %d nodes", maxAliasNodes)
		}
	}

	switch y.Kind {
	case yaml.AliasNode:
		if p.expanding[y.Alias] {
			return nil, errorf(y, "recursive alias")
		}
		if p.expanding == nil {
			p.expanding = make(map[*yaml.Node]bool)
		}
		p.expanding[y.Alias] = true
		defer delete(p.expanding, y.Alias)
		return p.ParseNode(y.Alias)
	case yaml.ScalarNode:
		return p.parseLiteral(y)
	case yaml.MappingNode:
		if len(y.Content) != 2 {
			return nil, errorf(y, "node must have exactly one kind, got %d", len(y.Content)/2)
		}
		key, val := y.Content[0], y.Content[1]
		if key.Kind != yaml.ScalarNode {
			return nil, errorf(key, "node kind must be a string")
		}
		return p.parseForm(key.Value, key, val)
	}
	return nil, errorf(y, "expected integer or node, got %s", y.ShortTag())
}

func (p *Parser) parseLiteral(y *yaml.Node) (*Node, error) {
	if y.ShortTag() != "!!int" {
		return nil, errorf(y, "expected integer, got %q", y.Value)
	}
	var n int64
	if err := y.Decode(&n); err != nil {
		return nil, errorf(y, "invalid integer %q: %v", y.Value, err)
	}
	return Num(n), nil
}

var binaryForms = map[string]Op{
	"add": OpAdd,
	"mul": OpMul,
	"eq":  OpEq,
	"lt":  OpLt,
	"gt":  OpGt,
}

func (p *Parser) parseForm(kind string, key, val *yaml.Node) (*Node, error) {
	if op, ok := binaryForms[kind]; ok {
		kids, err := p.parseArgs(kind, val, 2)
		if err != nil {
			return nil, err
		}
		return Binary(op, kids[0], kids[1]), nil
	}

	switch kind {
	case "none":
		if val.ShortTag() != "!!null" {
			return nil, errorf(val, "none takes no operand")
		}
		return None(), nil
	case "seq":
		kids, err := p.parseArgs(kind, val, -1)
		if err != nil {
			return nil, err
		}
		return Seq(kids...), nil
	case "if":
		kids, err := p.parseArgs(kind, val, 3)
		if err != nil {
			return nil, err
		}
		return If(kids[0], kids[1], kids[2]), nil
	case "while":
		kids, err := p.parseArgs(kind, val, 2)
		if err != nil {
			return nil, err
		}
		return While(kids[0], kids[1]), nil
	case "let", "assign":
		items, err := p.items(kind, val, 2)
		if err != nil {
			return nil, err
		}
		name, err := p.parseName(items[0])
		if err != nil {
			return nil, err
		}
		v, err := p.ParseNode(items[1])
		if err != nil {
			return nil, err
		}
		if kind == "let" {
			return Let(name, v), nil
		}
		return Assign(name, v), nil
	case "var":
		name, err := p.parseName(val)
		if err != nil {
			return nil, err
		}
		return Var(name), nil
	case "print":
		v, err := p.ParseNode(val)
		if err != nil {
			return nil, err
		}
		return Print(v), nil
	case "def":
		items, err := p.items(kind, val, 3)
		if err != nil {
			return nil, err
		}
		name, err := p.parseName(items[0])
		if err != nil {
			return nil, err
		}
		if items[1].Kind != yaml.SequenceNode {
			return nil, errorf(items[1], "def parameters must be a list")
		}
		params := make([]string, 0, len(items[1].Content))
		for _, item := range items[1].Content {
			param, err := p.parseName(item)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
		body, err := p.ParseNode(items[2])
		if err != nil {
			return nil, err
		}
		return FuncDef(name, params, body), nil
	case "call":
		if val.Kind != yaml.SequenceNode || len(val.Content) == 0 {
			return nil, errorf(val, "call needs a function name")
		}
		name, err := p.parseName(val.Content[0])
		if err != nil {
			return nil, err
		}
		args := make([]*Node, 0, len(val.Content)-1)
		for _, item := range val.Content[1:] {
			arg, err := p.ParseNode(item)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return Call(name, args...), nil
	}
	return nil, errorf(key, "unknown node kind %q", kind)
}

// items returns the elements of a list operand, checking its length when
// want is not negative.
func (p *Parser) items(kind string, val *yaml.Node, want int) ([]*yaml.Node, error) {
	if val.Kind != yaml.SequenceNode {
		return nil, errorf(val, "%s expects a list", kind)
	}
	if want >= 0 && len(val.Content) != want {
		return nil, errorf(val, "%s expects %d operands, got %d", kind, want, len(val.Content))
	}
	return val.Content, nil
}

func (p *Parser) parseArgs(kind string, val *yaml.Node, want int) ([]*Node, error) {
	items, err := p.items(kind, val, want)
	if err != nil {
		return nil, err
	}
	kids := make([]*Node, 0, len(items))
	for _, item := range items {
		kid, err := p.ParseNode(item)
		if err != nil {
			return nil, err
		}
		kids = append(kids, kid)
	}
	return kids, nil
}

func (p *Parser) parseName(y *yaml.Node) (string, error) {
	if y.Kind != yaml.ScalarNode || y.ShortTag() != "!!str" || y.Value == "" {
		return "", errorf(y, "expected a name, got %q", y.Value)
	}
	return y.Value, nil
}
