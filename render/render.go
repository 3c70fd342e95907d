package render

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/rdmx/lang"
	"github.com/ardnew/rdmx/log"
)

// Config holds everything a [Pipeline] needs. It is copied at construction,
// so later changes to the registry or the variables do not affect the
// pipeline.
type Config struct {
	Registry *Registry
	Vars     map[string]lang.Value
	Logger   log.Logger
}

// Pipeline renders documents. It is immutable and may be used by concurrent
// goroutines, each transforming its own document.
type Pipeline struct {
	registry *Registry
	vars     map[string]lang.Value
	logger   log.Logger
}

// New returns a Pipeline for cfg.
func New(cfg Config) *Pipeline {
	vars := maps.Clone(cfg.Vars)
	if vars == nil {
		vars = make(map[string]lang.Value)
	}

	return &Pipeline{
		registry: cfg.Registry.clone(),
		vars:     vars,
		logger:   cfg.Logger,
	}
}

// Registry returns the namespaces and generators known to p.
func (p *Pipeline) Registry() *Registry { return p.registry.clone() }

// Transform parses and renders the document input named file.
// Nothing is returned but the error if any stage fails.
func (p *Pipeline) Transform(ctx context.Context, file, input string) (string, error) {
	doc, err := lang.Parse(file, input)
	if err != nil {
		return "", err
	}

	p.logger.TraceContext(ctx, "parsed",
		slog.String("file", file),
		slog.Int("nodes", len(doc.Nodes)))

	return p.Render(ctx, doc)
}

// Render renders the nodes of doc in document order and returns the
// concatenation of their final text.
func (p *Pipeline) Render(ctx context.Context, doc *lang.Document) (string, error) {
	out, _, err := p.renderNodes(ctx, doc.Nodes, 0)
	if err != nil {
		return "", err
	}

	return out, nil
}

// renderNodes renders a list of siblings. Each directive sees the siblings
// rendered before it.
func (p *Pipeline) renderNodes(
	ctx context.Context,
	nodes []lang.Node,
	depth int,
) (string, []*Rendered, error) {
	var sb strings.Builder

	done := make([]*Rendered, 0, len(nodes))

	for i, n := range nodes {
		var r *Rendered

		switch n := n.(type) {
		case *lang.Text:
			r = &Rendered{Node: n, Content: n.Content}

		case *lang.Directive:
			var err error

			r, err = p.renderDirective(ctx, n, done, nodes[i+1:], depth)
			if err != nil {
				return "", nil, err
			}
		}

		done = append(done, r)
		sb.WriteString(r.Text())
	}

	return sb.String(), done, nil
}

func (p *Pipeline) renderDirective(
	ctx context.Context,
	d *lang.Directive,
	before []*Rendered,
	after []lang.Node,
	depth int,
) (*Rendered, error) {
	g, call, err := p.Resolve(d)
	if err != nil {
		return nil, err
	}

	rc := &Context{
		Node:     d,
		Before:   slices.Clip(before),
		After:    after,
		Children: d.Children,
		pipeline: p,
		depth:    depth,
	}

	p.logger.TraceContext(ctx, "generate",
		slog.String("directive", d.Name()),
		slog.String("pos", d.Pos.String()),
		slog.Int("depth", depth))

	out, err := p.invoke(ctx, g, call, rc)
	if err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "generated",
		slog.String("directive", d.Name()),
		slog.String("pos", d.Pos.String()),
		slog.Int("bytes", len(out)))

	return &Rendered{
		Node:    d,
		Call:    call,
		Header:  d.RawHeader,
		Content: string(out),
		Footer:  d.RawFooter,
	}, nil
}

// Resolve binds a directive to its generator and validates its parameters,
// substituting variables.
func (p *Pipeline) Resolve(d *lang.Directive) (Generator, *Call, error) {
	g, ok := p.registry.Lookup(d.Namespace)
	if !ok {
		return nil, nil, locate(unknown(ErrUnresolvedGenerator,
			d.Namespace, p.registry.Namespaces()), d)
	}

	catalog := g.Catalog()

	spec, ok := catalog[d.Action]
	if !ok || spec == nil {
		return nil, nil, locate(unknown(ErrUnknownAction,
			d.Action, catalog.Names()), d)
	}

	params, err := p.substitute(d)
	if err != nil {
		return nil, nil, err
	}

	valid, err := spec.Params.Validate(params)
	if err != nil {
		e := locate(ErrParamsValidation.Wrap(err), d)

		var se *SchemaError
		if errors.As(err, &se) && se.Pos.IsValid() {
			e = e.At(d.File, se.Pos)
		}

		return nil, nil, e
	}

	return g, &Call{
		Namespace: d.Namespace,
		Action:    d.Action,
		Spec:      spec,
		Params:    valid,
		Node:      d,
	}, nil
}

// substitute returns the parameters of d with every variable reference
// replaced by its value.
func (p *Pipeline) substitute(d *lang.Directive) ([]lang.Param, error) {
	params := slices.Clone(d.Params)

	for i, param := range params {
		if param.Value.Kind() != lang.KindVariable {
			continue
		}

		name := param.Value.Str()

		v, ok := p.vars[name]
		if !ok || v.IsZero() || v.Kind() == lang.KindVariable {
			return nil, locate(ErrUndefVar.Wrapf("%s", name), d).
				At(d.File, param.Pos).
				With(slog.String("var", name))
		}

		params[i].Value = v
	}

	return params, nil
}

// invoke calls the generator, enforcing its contract.
func (p *Pipeline) invoke(
	ctx context.Context,
	g Generator,
	call *Call,
	rc *Context,
) (out []byte, err error) {
	d := call.Node

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, locate(ErrInvalidGeneratorReturn.Wrapf("panic: %v", r), d)
		}
	}()

	out, err = g.Generate(ctx, call, rc)

	switch {
	case err != nil && out != nil:
		return nil, locate(ErrInvalidGeneratorReturn.Wrapf(
			"returned %d bytes of content and error: %w", len(out), err), d)

	case err != nil:
		// Failures of nested directives and of Context methods are already
		// located at their own origin.
		var le *lang.Error
		if errors.As(err, &le) && le.Kind() != "" && le.Position().IsValid() {
			return nil, err
		}

		return nil, locate(ErrGenerator.Wrap(err), d)
	}

	return out, nil
}
