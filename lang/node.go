package lang

import (
	"strings"
)

// Node is an element of a parsed document: either [*Text] or [*Directive].
type Node interface {
	// Position returns the location of the first character of the node.
	Position() Position

	// Source returns the exact source text spanned by the node.
	Source() string

	node()
}

// Text is a run of plain text. It is never modified once created.
type Text struct {
	Content string
	Pos     Position
}

// Directive is a matched block start and block end with the nodes between
// them.
//
// RawHeader and RawFooter are the exact source text of the two markers, so a
// directive whose content is not replaced reproduces its source byte for byte.
type Directive struct {
	Namespace string
	Action    string
	Params    []Param
	RawHeader string
	RawFooter string
	Children  []Node
	File      string
	Pos       Position
	EndPos    Position
}

func (*Text) node()      {}
func (*Directive) node() {}

func (t *Text) Position() Position { return t.Pos }
func (t *Text) Source() string     { return t.Content }

func (d *Directive) Position() Position { return d.Pos }

// Source returns the original text of d: its header, the source of each child
// and its footer.
func (d *Directive) Source() string {
	var sb strings.Builder

	sb.WriteString(d.RawHeader)
	sb.WriteString(Source(d.Children))
	sb.WriteString(d.RawFooter)

	return sb.String()
}

// Name returns the "namespace:action" spelling of d.
func (d *Directive) Name() string { return d.Namespace + ":" + d.Action }

// Param returns the value of the last parameter named key.
func (d *Directive) Param(key string) (Value, bool) {
	for i := len(d.Params) - 1; i >= 0; i-- {
		if d.Params[i].Key == key {
			return d.Params[i].Value, true
		}
	}

	return Value{}, false
}

// Source concatenates the source text of nodes in order.
func Source(nodes []Node) string {
	var sb strings.Builder

	for _, n := range nodes {
		sb.WriteString(n.Source())
	}

	return sb.String()
}

// Walk calls fn for each node in depth-first document order, descending into
// the children of a directive only if fn returns true.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if !fn(n, depth) {
			continue
		}

		if d, ok := n.(*Directive); ok {
			walk(d.Children, depth+1, fn)
		}
	}
}
