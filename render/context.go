package render

import (
	"context"
	"log/slog"
	"maps"

	"github.com/ardnew/rdmx/lang"
	"github.com/ardnew/rdmx/log"
)

// Rendered is a node after rendering. The Content of a text node is its text;
// a directive also keeps its original markers and the call that produced its
// Content.
type Rendered struct {
	Node    lang.Node
	Call    *Call
	Header  string
	Content string
	Footer  string
}

// Text returns the final text of the node.
func (r *Rendered) Text() string { return r.Header + r.Content + r.Footer }

// Section returns the declared name of r if it is a named container.
func (r *Rendered) Section() (string, bool) {
	if r.Call == nil || r.Call.Spec == nil || r.Call.Spec.Container == "" {
		return "", false
	}

	v, ok := r.Call.Params.Get(r.Call.Spec.Container)
	if !ok {
		return "", false
	}

	return v.String(), true
}

// Context is what a generator sees of the document while rendering a
// directive.
//
// Before holds the rendered siblings preceding the directive in document
// order, and After the raw siblings following it. Children are the raw nodes
// enclosed by the directive, rendered only if the generator asks for it.
type Context struct {
	Node     *lang.Directive
	Before   []*Rendered
	After    []lang.Node
	Children []lang.Node

	pipeline *Pipeline
	depth    int
}

// RenderChildren renders the children of the directive and returns their
// concatenated text. It may be called any number of times.
func (c *Context) RenderChildren(ctx context.Context) (string, error) {
	return c.Render(ctx, c.Children)
}

// Render renders nodes one level below the directive.
func (c *Context) Render(ctx context.Context, nodes []lang.Node) (string, error) {
	out, _, err := c.pipeline.renderNodes(ctx, nodes, c.depth+1)

	return out, err
}

// Section returns the closest preceding rendered sibling that is a named
// container declared with the given name.
//
// A failed lookup is a failure of the calling generator: the error matches
// both [ErrGenerator] and [ErrSectionNotFound].
func (c *Context) Section(name string) (*Rendered, error) {
	for i := len(c.Before) - 1; i >= 0; i-- {
		if s, ok := c.Before[i].Section(); ok && s == name {
			return c.Before[i], nil
		}
	}

	notFound := ErrSectionNotFound.Wrapf("%q", name)

	return nil, locate(ErrGenerator.Wrap(notFound), c.Node).
		With(slog.String("name", name))
}

// Var returns the value of a variable.
func (c *Context) Var(name string) (lang.Value, bool) {
	v, ok := c.pipeline.vars[name]

	return v, ok
}

// Vars returns a copy of the variable table.
func (c *Context) Vars() map[string]lang.Value {
	return maps.Clone(c.pipeline.vars)
}

// Logger returns the logger of the pipeline.
func (c *Context) Logger() log.Logger { return c.pipeline.logger }

// Depth returns the nesting depth of the directive; top-level nodes are at
// depth 0.
func (c *Context) Depth() int { return c.depth }
