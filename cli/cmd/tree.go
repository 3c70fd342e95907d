package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/rdmx/lang"
)

// Tree parses a document and prints its directive tree.
type Tree struct {
	Format string `default:"ast" enum:"ast,json,yaml" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                        help:"Indent width."             short:"i"`

	Source string `arg:"" default:"-" help:"Markdown file or '-' for stdin." name:"file"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if t.Indent < 0 {
		return ErrIndent.With(slog.Int("indent", t.Indent))
	}

	name, text, err := readSource(t.Source)
	if err != nil {
		return err
	}

	doc, err := lang.Parse(name, text)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	switch t.Format {
	case "ast":
		err = doc.Format(ctx, w, t.Indent)
	case "json":
		err = doc.FormatJSON(ctx, w, t.Indent)
	case "yaml":
		err = doc.FormatYAML(ctx, w, t.Indent)
	default:
		return ErrUnknownFormat.With(slog.String("format", t.Format))
	}

	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", t.Format))
	}

	return nil
}
