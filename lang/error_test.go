package lang

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestError_Is(t *testing.T) {
	base := errors.New("boom")

	err := ErrSyntax.Wrap(base).At("doc.md", Start).With(slog.Int("n", 1))

	if !errors.Is(err, ErrSyntax) {
		t.Error("derived error does not match its kind")
	}

	if errors.Is(err, ErrIllegalCharacter) {
		t.Error("derived error matches another kind")
	}

	if !errors.Is(err, base) {
		t.Error("derived error does not unwrap to its cause")
	}

	wrapped := fmt.Errorf("context: %w", err)
	if !errors.Is(wrapped, ErrSyntax) {
		t.Error("wrapped error does not match its kind")
	}

	if ErrSyntax.err != nil || ErrSyntax.file != "" || len(ErrSyntax.attrs) != 0 {
		t.Error("deriving modified the sentinel")
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind only",
			err:  ErrNoBlockEnd,
			want: "block start has no matching block end",
		},
		{
			name: "located",
			err:  ErrNoBlockEnd.At("doc.md", Position{Line: 3, Column: 7}),
			want: "doc.md:3:7: block start has no matching block end",
		},
		{
			name: "located with cause",
			err:  ErrIllegalCharacter.Wrapf("%q", "@").At("doc.md", Start),
			want: `doc.md:1:1: illegal character: "@"`,
		},
		{
			name: "file only",
			err:  ErrSyntax.In("doc.md"),
			want: "doc.md: syntax error",
		},
		{
			name: "foreign error",
			err:  AsError(io.EOF),
			want: "EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Snippet(t *testing.T) {
	_, err := Scan("doc.md", "text\n<!-- rdmx :x k:@ -->\nrest")
	if err == nil {
		t.Fatal("Scan succeeded, want error")
	}

	want := strings.Join([]string{
		"  2 | <!-- rdmx :x k:@ -->",
		"      " + strings.Repeat(" ", 15) + "^",
		"",
	}, "\n")

	if got := AsError(err).Snippet(); got != want {
		t.Errorf("Snippet() =\n%s\nwant\n%s", got, want)
	}
}

func TestError_SnippetMultiline(t *testing.T) {
	_, err := Scan("doc.md", "<!-- rdmx :x\n  k:@\n  j:1 -->")
	if err == nil {
		t.Fatal("Scan succeeded, want error")
	}

	want := strings.Join([]string{
		"  1 | <!-- rdmx :x",
		"  2 |   k:@",
		"          ^",
		"",
	}, "\n")

	if got := AsError(err).Snippet(); got != want {
		t.Errorf("Snippet() =\n%s\nwant\n%s", got, want)
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrSyntax.Wrap(io.EOF).At("doc.md", Position{Line: 2, Column: 4}).
		With(slog.String("found", "x"))

	attrs := map[string]string{}
	for _, a := range err.LogValue().Group() {
		attrs[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"kind":   "syntax_error",
		"error":  "syntax error",
		"cause":  "EOF",
		"file":   "doc.md",
		"line":   "2",
		"column": "4",
		"found":  "x",
	}

	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("attr %s = %q, want %q", k, attrs[k], v)
		}
	}
}
