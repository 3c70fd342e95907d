package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/rdmx/cli/cmd"
	"github.com/ardnew/rdmx/render"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "rdmx-cli-test-*")
	if err != nil {
		panic(err)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

// execute runs the command line and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	exit := func(code int) { t.Fatalf("exit(%d): %s", code, stderr.String()) }

	err := run(context.Background(), exit, args, kong.Writers(&stdout, &stderr))

	return stdout.String(), err
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "README.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(data)
}

const printDoc = "Version <!-- rdmx :print value:$version -->?<!-- rdmx /:print -->\n"

func TestRun_Update(t *testing.T) {
	path := writeDoc(t, printDoc)

	out, err := execute(t, "update", "--no-backup", "--var", "version=2.0.1", path)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "Version <!-- rdmx :print value:$version -->2.0.1<!-- rdmx /:print -->\n"
	if got := readDoc(t, path); got != want {
		t.Errorf("document = %q, want %q", got, want)
	}

	if !strings.Contains(out, "updated") || !strings.Contains(out, path) {
		t.Errorf("output %q does not report the update", out)
	}

	// Rendering again changes nothing.
	out, err = execute(t, "update", "--no-backup", "-D", "version=2.0.1", path)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !strings.Contains(out, "unchanged") {
		t.Errorf("output %q does not report an unchanged file", out)
	}
}

func TestRun_UpdateIsDefault(t *testing.T) {
	t.Setenv("RDMX_version", "3.0.0")

	path := writeDoc(t, printDoc)

	out, err := execute(t, path)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if got := readDoc(t, path); !strings.Contains(got, "-->3.0.0<!--") {
		t.Errorf("document = %q, want the environment value", got)
	}

	if !strings.Contains(out, "backup") {
		t.Errorf("output %q does not name the backup", out)
	}
}

func TestRun_VarsFile(t *testing.T) {
	dir := t.TempDir()
	varsFile := filepath.Join(dir, "vars.yaml")

	if err := os.WriteFile(varsFile, []byte("version: 4.5.6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path := writeDoc(t, printDoc)

	if _, err := execute(t, "update", "--no-backup", "--vars-file", varsFile, path); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if got := readDoc(t, path); !strings.Contains(got, "-->4.5.6<!--") {
		t.Errorf("document = %q, want the file value", got)
	}
}

func TestRun_UpdateError(t *testing.T) {
	path := writeDoc(t, printDoc)

	_, err := execute(t, "update", "--no-backup", "--env-prefix=", path)
	if !errors.Is(err, render.ErrUndefVar) {
		t.Fatalf("run() error = %v, want %s", err, render.ErrUndefVar.Kind())
	}

	if got := readDoc(t, path); got != printDoc {
		t.Errorf("failed update modified the document: %q", got)
	}

	var report bytes.Buffer

	Report(&report, err)

	for _, want := range []string{"error[undef_var]", path + ":1:", "version", "^"} {
		if !strings.Contains(report.String(), want) {
			t.Errorf("report does not contain %q:\n%s", want, report.String())
		}
	}
}

func TestRun_Tree(t *testing.T) {
	path := writeDoc(t, "# T\n<!-- rdmx :section name:a -->\nx\n<!-- rdmx /:section -->\n")

	tests := []struct {
		format string
		want   string
	}{
		{"ast", `rdmx:section name:"a"`},
		{"json", `"action": "section"`},
		{"yaml", "action: section"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "tree", "--format", tt.format, path)
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}

			if !strings.Contains(out, tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRun_Actions(t *testing.T) {
	out, err := execute(t, "actions")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	for _, want := range []string{"rdmx:eval", "rdmx:print", "rdmx:section", "required", `"text"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "actions", "--format", "yaml", "rdmx")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !strings.Contains(out, "name:") || !strings.Contains(out, "rdmx:eval") {
		t.Errorf("yaml output does not list rdmx:eval:\n%s", out)
	}

	if _, err := execute(t, "actions", "nope"); !errors.Is(err, render.ErrUnresolvedGenerator) {
		t.Errorf("unknown namespace: error = %v, want %s", err, render.ErrUnresolvedGenerator.Kind())
	}
}

func TestRun_Init(t *testing.T) {
	path := configPath(baseConfig) + ".yaml"
	t.Cleanup(func() { os.Remove(path) })

	if _, err := execute(t, "--log-format=json", "init"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "log-format: json") {
		t.Errorf("configuration does not record the flag:\n%s", data)
	}

	if _, err := execute(t, "init"); !errors.Is(err, cmd.ErrFileExists) {
		t.Errorf("second init: error = %v, want %v", err, cmd.ErrFileExists)
	}

	if _, err := execute(t, "init", "--force"); err != nil {
		t.Errorf("init --force: error = %v", err)
	}
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer

	code := -1
	exit := func(c int) { code = c }

	_ = run(context.Background(), exit, []string{"--version"}, kong.Writers(&stdout, &stdout))

	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	if !strings.HasPrefix(stdout.String(), "rdmx ") {
		t.Errorf("version output = %q", stdout.String())
	}
}
