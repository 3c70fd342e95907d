package vars

import (
	"context"
	"log/slog"
	"os"
	"path"

	"golang.org/x/mod/modfile"

	"github.com/ardnew/rdmx/lang"
)

// GoModule is a [Source] describing the Go module whose go.mod is at Path.
//
// It defines:
//
//	$module       module path
//	$module_name  last element of the module path
//	$go_version   version of the go directive
//	$toolchain    version of the toolchain directive, if present
type GoModule struct {
	Path string
}

// Variables implements [Source].
func (m GoModule) Variables(context.Context) (Table, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, ErrSource.Wrap(err).With(slog.String("path", m.Path))
	}

	f, err := modfile.ParseLax(m.Path, data, nil)
	if err != nil {
		return nil, ErrSource.Wrap(err).With(slog.String("path", m.Path))
	}

	t := make(Table, 4)

	if f.Module != nil {
		t["module"] = lang.StringValue(f.Module.Mod.Path)
		t["module_name"] = lang.StringValue(path.Base(f.Module.Mod.Path))
	}

	if f.Go != nil {
		t["go_version"] = lang.StringValue(f.Go.Version)
	}

	if f.Toolchain != nil {
		t["toolchain"] = lang.StringValue(f.Toolchain.Name)
	}

	return t, nil
}
