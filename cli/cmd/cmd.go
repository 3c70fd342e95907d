package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/rdmx/generator/builtin"
	"github.com/ardnew/rdmx/render"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer for command output.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// Registry returns the generators available to documents.
func Registry() (*render.Registry, error) {
	reg := render.NewRegistry()

	if err := builtin.Register(reg); err != nil {
		return nil, err
	}

	return reg, nil
}

// stdinSource names standard input as a source file.
const stdinSource = "-"

// readSource returns the display name and content of path, or of standard
// input if path is "-".
func readSource(path string) (name, text string, err error) {
	if path == stdinSource {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", ErrReadSource.Wrap(err).With(slog.String("file", path))
		}

		return "<stdin>", string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", ErrReadSource.Wrap(err).With(slog.String("file", path))
	}

	return path, string(data), nil
}
