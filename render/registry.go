package render

import (
	"context"
	"maps"
	"slices"

	"github.com/ardnew/rdmx/lang"
)

// Generator produces the content of the directives of one namespace.
//
// Generate receives a validated call and a render context, and returns either
// content or an error, never both. It must not modify the nodes reachable
// from the context.
type Generator interface {
	Catalog() Catalog
	Generate(ctx context.Context, call *Call, rc *Context) ([]byte, error)
}

// Action describes an action of a [Generator].
//
// Container names the parameter that declares the name of a section. A
// directive whose action has a Container can be retrieved by later siblings
// with [Context.Section].
type Action struct {
	Doc       string
	Params    Schema
	Container string
}

// Catalog maps the actions of a generator to their descriptions.
type Catalog map[string]*Action

// Names returns the action names of c in sorted order.
func (c Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c))
}

// Call is a directive resolved to an action and its validated parameters.
type Call struct {
	Namespace string
	Action    string
	Spec      *Action
	Params    Params
	Node      *lang.Directive
}

// Registry maps namespaces to generators.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Register adds the generator of a namespace.
func (r *Registry) Register(namespace string, g Generator) error {
	if _, ok := r.generators[namespace]; ok {
		return ErrDuplicateNamespace.Wrapf("%q", namespace)
	}

	r.generators[namespace] = g

	return nil
}

// Lookup returns the generator of a namespace.
func (r *Registry) Lookup(namespace string) (Generator, bool) {
	if r == nil {
		return nil, false
	}

	g, ok := r.generators[namespace]

	return g, ok
}

// Namespaces returns the registered namespaces in sorted order.
func (r *Registry) Namespaces() []string {
	if r == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(r.generators))
}

func (r *Registry) clone() *Registry {
	c := NewRegistry()
	if r != nil {
		maps.Copy(c.generators, r.generators)
	}

	return c
}
