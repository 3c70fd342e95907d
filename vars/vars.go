package vars

import (
	"context"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/ardnew/rdmx/lang"
)

// Errors returned while collecting variables.
var (
	ErrSource     = lang.NewError("vars_source", "read variables")
	ErrAssignment = lang.NewError("vars_assignment", "invalid variable assignment")
	ErrName       = lang.NewError("vars_name", "invalid variable name")
	ErrConflict   = lang.NewError("vars_conflict", "variable defined more than once")
)

// Table maps variable names to values.
type Table map[string]lang.Value

// Names returns the names defined in t in sorted order.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

// Source produces variables.
type Source interface {
	Variables(ctx context.Context) (Table, error)
}

// SourceFunc adapts a function to a [Source].
type SourceFunc func(ctx context.Context) (Table, error)

// Variables implements [Source].
func (f SourceFunc) Variables(ctx context.Context) (Table, error) { return f(ctx) }

var namePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsName reports whether s can be referenced as $s in a directive.
func IsName(s string) bool { return namePattern.MatchString(s) }

// Merge combines the tables of sources. A name keeps the value of the first
// source that defines it, and every name in override replaces the value from
// any source.
func Merge(ctx context.Context, override Table, sources ...Source) (Table, error) {
	merged := make(Table)

	for _, src := range sources {
		if src == nil {
			continue
		}

		t, err := src.Variables(ctx)
		if err != nil {
			return nil, err
		}

		for name, v := range t {
			if _, ok := merged[name]; !ok {
				merged[name] = v
			}
		}
	}

	maps.Copy(merged, override)

	return merged, nil
}

// ParseAssignments parses a list of name=value assignments. Values are
// interpreted with [lang.ParseLiteral]; a later assignment of the same name
// replaces an earlier one.
func ParseAssignments(list []string) (Table, error) {
	t := make(Table, len(list))

	for _, a := range list {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, ErrAssignment.Wrapf("%q: expected name=value", a).
				With(slog.String("assignment", a))
		}

		name = strings.TrimSpace(name)
		if !IsName(name) {
			return nil, ErrName.Wrapf("%q", name).
				With(slog.String("assignment", a))
		}

		t[name] = lang.ParseLiteral(value)
	}

	return t, nil
}

// flatten adds the scalar leaves of v to t, joining nested keys with '_'.
// Keys are visited in sorted order; a leaf whose name is already defined
// is not added. Every leaf that is not added is passed to skip with the
// reason.
func flatten(t Table, prefix string, v any, skip func(name string, err *lang.Error)) {
	switch v := v.(type) {
	case nil:
		return

	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			flatten(t, join(prefix, k), v[k], skip)
		}

	case map[any]any:
		keys := make([]string, 0, len(v))

		for k := range v {
			if s, ok := k.(string); ok {
				keys = append(keys, s)
			} else {
				skip(prefix, ErrSource.Wrapf("non-string key %v", k))
			}
		}

		slices.Sort(keys)

		for _, k := range keys {
			flatten(t, join(prefix, k), v[k], skip)
		}

	default:
		val, err := lang.ValueOf(v)

		switch {
		case err != nil:
			skip(prefix, ErrSource.Wrapf("%s: %w", prefix, err))
		case !IsName(prefix):
			skip(prefix, ErrName.Wrapf("%q", prefix))
		default:
			define(t, prefix, val, skip)
		}
	}
}

// define adds name to t unless it is already defined.
func define(t Table, name string, v lang.Value, skip func(name string, err *lang.Error)) {
	if _, ok := t[name]; ok {
		skip(name, ErrConflict.Wrapf("%q", name))

		return
	}

	t[name] = v
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "_" + key
}
