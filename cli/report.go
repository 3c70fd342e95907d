package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/rdmx/lang"
)

// Report writes a human-readable description of err to w: a headline with
// the error kind, location and message, followed by the offending source
// with a caret under the error position when the error carries it.
//
// Colors are used only if w is a terminal that supports them.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}

	r := lipgloss.NewRenderer(w)
	label := r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	kind := r.NewStyle().Foreground(lipgloss.Color("3"))
	source := r.NewStyle().Faint(true)

	var sb strings.Builder

	sb.WriteString(label.Render("error"))

	var le *lang.Error
	if errors.As(err, &le) && le.Kind() != "" {
		sb.WriteString(kind.Render("[" + le.Kind() + "]"))
	}

	sb.WriteString(": ")
	sb.WriteString(err.Error())
	sb.WriteByte('\n')

	if le != nil {
		if snippet := le.Snippet(); snippet != "" {
			for line := range strings.Lines(snippet) {
				sb.WriteString(source.Render(strings.TrimSuffix(line, "\n")))
				sb.WriteByte('\n')
			}
		}
	}

	_, _ = io.WriteString(w, sb.String())
}
