package minexp

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// flowLimit is the largest subtree, in nodes, written on a single line.
const flowLimit = 6

// Format writes nodes to w as a YAML stream which NewParser reads back.
func Format(w io.Writer, nodes ...*Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, node := range nodes {
		if err := enc.Encode(toYAML(node)); err != nil {
			return err
		}
	}
	return enc.Close()
}

func toYAML(n *Node) *yaml.Node {
	if n.t == NodeLiteral {
		return intScalar(n.v)
	}

	var val *yaml.Node
	switch n.t {
	case NodeNone:
		val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case NodeVar:
		val = strScalar(n.name)
	case NodePrint:
		val = toYAML(n.kids[0])
	case NodeLet, NodeAssign:
		val = list(strScalar(n.name), toYAML(n.kids[0]))
	case NodeFuncDef:
		params := list()
		params.Style = yaml.FlowStyle
		for _, p := range n.fn.Params {
			params.Content = append(params.Content, strScalar(p))
		}
		val = list(strScalar(n.name), params, toYAML(n.kids[0]))
	case NodeFuncCall:
		val = list(strScalar(n.name))
		for _, k := range n.kids {
			val.Content = append(val.Content, toYAML(k))
		}
	default:
		val = list()
		for _, k := range n.kids {
			val.Content = append(val.Content, toYAML(k))
		}
	}

	kind := n.t.String()
	if n.t == NodeBinary {
		kind = n.op.String()
	}
	m := &yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: []*yaml.Node{strScalar(kind), val},
	}
	if size(n) <= flowLimit {
		m.Style = yaml.FlowStyle
	}
	return m
}

func size(n *Node) int {
	c := 1
	for _, k := range n.kids {
		c += size(k)
		if c > flowLimit {
			break
		}
	}
	return c
}

func intScalar(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

func strScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func list(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}
