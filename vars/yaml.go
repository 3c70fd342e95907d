package vars

import (
	"context"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/rdmx/lang"
	"github.com/ardnew/rdmx/log"
)

// YAMLFile is a [Source] that reads a YAML mapping from Path.
//
// Nested mappings are flattened by joining keys with '_', so
//
//	project:
//	  name: rdmx
//
// defines $project_name. Sequences and keys that are not valid names are
// skipped with a warning, as is a name spelled by more than one key path;
// keys are visited in sorted order and the first definition is kept.
type YAMLFile struct {
	Path   string
	Logger log.Logger
}

// Variables implements [Source].
func (f YAMLFile) Variables(ctx context.Context) (Table, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, ErrSource.Wrap(err).With(slog.String("path", f.Path))
	}

	var doc map[string]any
	if err := yaml.UnmarshalContext(ctx, data, &doc); err != nil {
		return nil, ErrSource.Wrap(err).With(slog.String("path", f.Path))
	}

	t := make(Table, len(doc))

	flatten(t, "", doc, func(name string, err *lang.Error) {
		f.Logger.WarnContext(ctx, "skipping variable",
			slog.String("path", f.Path),
			slog.String("name", name),
			slog.Any("error", err))
	})

	return t, nil
}
