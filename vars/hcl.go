package vars

import (
	"context"
	"log/slog"
	"maps"
	"math/big"
	"slices"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/ardnew/rdmx/lang"
	"github.com/ardnew/rdmx/log"
)

// HCLFile is a [Source] that reads top-level attributes from the HCL file at
// Path:
//
//	name    = "rdmx"
//	release = { major = 1, minor = 2 }
//
// Object attributes are flattened like nested YAML mappings ($release_major).
// Attribute expressions are evaluated without variables or functions. Lists
// and null values are skipped with a warning.
type HCLFile struct {
	Path   string
	Logger log.Logger
}

// Variables implements [Source].
func (f HCLFile) Variables(ctx context.Context) (Table, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(f.Path)
	if diags.HasErrors() {
		return nil, ErrSource.Wrap(diags).With(slog.String("path", f.Path))
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, ErrSource.Wrap(diags).With(slog.String("path", f.Path))
	}

	t := make(Table, len(attrs))

	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		attr := attrs[name]

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, ErrSource.Wrap(diags).With(
				slog.String("path", f.Path),
				slog.String("name", name))
		}

		f.collect(ctx, t, name, val)
	}

	return t, nil
}

func (f HCLFile) collect(ctx context.Context, t Table, name string, val cty.Value) {
	ty := val.Type()

	switch {
	case val.IsNull() || !val.IsKnown():
		f.skip(ctx, name, "null")

	case ty.IsObjectType() || ty.IsMapType():
		for it := val.ElementIterator(); it.Next(); {
			k, e := it.Element()
			f.collect(ctx, t, join(name, k.AsString()), e)
		}

	case !IsName(name):
		f.skip(ctx, name, ty.FriendlyName())

	case ty == cty.String:
		f.define(ctx, t, name, lang.StringValue(val.AsString()))

	case ty == cty.Bool:
		f.define(ctx, t, name, lang.BoolValue(val.True()))

	case ty == cty.Number:
		f.define(ctx, t, name, number(val.AsBigFloat()))

	default:
		f.skip(ctx, name, ty.FriendlyName())
	}
}

func (f HCLFile) define(ctx context.Context, t Table, name string, v lang.Value) {
	define(t, name, v, func(name string, err *lang.Error) {
		f.Logger.WarnContext(ctx, "skipping variable",
			slog.String("path", f.Path),
			slog.String("name", name),
			slog.Any("error", err))
	})
}

func (f HCLFile) skip(ctx context.Context, name, typ string) {
	f.Logger.WarnContext(ctx, "skipping variable",
		slog.String("path", f.Path),
		slog.String("name", name),
		slog.String("type", typ))
}

func number(bf *big.Float) lang.Value {
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return lang.IntValue(i)
		}
	}

	fl, _ := bf.Float64()

	return lang.FloatValue(fl)
}
