package render

import (
	"context"
	"log/slog"
	"maps"
)

// ActionFunc implements one action of a [Table].
type ActionFunc func(ctx context.Context, call *Call, rc *Context) ([]byte, error)

// Table is a [Generator] assembled from individually defined actions.
//
//	gen := render.NewTable().
//		Define("badge", render.Action{Params: schema}, badge).
//		Define("toc", render.Action{}, toc)
type Table struct {
	catalog Catalog
	funcs   map[string]ActionFunc
}

// NewTable returns a Table without actions.
func NewTable() *Table {
	return &Table{
		catalog: make(Catalog),
		funcs:   make(map[string]ActionFunc),
	}
}

// Define adds or replaces the action name.
func (t *Table) Define(name string, action Action, fn ActionFunc) *Table {
	t.catalog[name] = &action
	t.funcs[name] = fn

	return t
}

// Catalog implements [Generator].
func (t *Table) Catalog() Catalog { return maps.Clone(t.catalog) }

// Generate implements [Generator] by dispatching on the action of the call.
func (t *Table) Generate(ctx context.Context, call *Call, rc *Context) ([]byte, error) {
	fn, ok := t.funcs[call.Action]
	if !ok {
		return nil, ErrUnknownAction.Wrapf("%q", call.Action).
			With(slog.String("name", call.Action))
	}

	return fn(ctx, call, rc)
}
