package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/rdmx/lang"
)

func TestReport(t *testing.T) {
	_, err := lang.Parse("doc.md", "intro\n<!-- rdmx :x k:1\nmore\n")
	if !errors.Is(err, lang.ErrUnterminatedTag) {
		t.Fatalf("Parse() error = %v", err)
	}

	var buf bytes.Buffer

	Report(&buf, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("report has %d lines:\n%s", len(lines), buf.String())
	}

	if want := "error[unterminated_comment_tag]: doc.md:2:1: "; !strings.HasPrefix(lines[0], want) {
		t.Errorf("headline = %q, want prefix %q", lines[0], want)
	}

	if !strings.Contains(lines[1], "2 | <!-- rdmx :x k:1") {
		t.Errorf("source line = %q", lines[1])
	}

	if !strings.HasSuffix(lines[2], "^") {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestReport_PlainError(t *testing.T) {
	var buf bytes.Buffer

	Report(&buf, errors.New("boom"))

	if got := buf.String(); got != "error: boom\n" {
		t.Errorf("Report() = %q", got)
	}

	buf.Reset()
	Report(&buf, nil)

	if buf.Len() != 0 {
		t.Errorf("Report(nil) wrote %q", buf.String())
	}
}
