package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create new config"},
		{name: "overwrite existing with force", force: true, exists: true},
		{name: "fail without force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "rdmx", "config.yaml")

			if tt.exists {
				if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
					t.Fatal(err)
				}

				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var cli struct {
				Level string `default:"warn" name:"log-level"`
				Dry   bool   `name:"dry"`
				Empty string `name:"empty"`
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse([]string{"--dry"})
			if err != nil {
				t.Fatal(err)
			}

			err = (&Init{Force: tt.force}).Run(WithContext(context.Background(), ktx))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("configuration is not YAML: %v\n%s", err, data)
			}

			if got["log-level"] != "warn" || got["dry"] != true {
				t.Errorf("configuration = %v", got)
			}

			if _, ok := got["empty"]; ok {
				t.Error("empty flag written to configuration")
			}

			if _, ok := got["existing"]; ok {
				t.Error("configuration was not overwritten")
			}
		})
	}
}

func TestConfigValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
		ok   bool
	}{
		{nil, nil, false},
		{"", "", false},
		{"x", "x", true},
		{[]string{}, []string{}, false},
		{true, true, true},
		{3, 3, true},
		{bytes.NewBufferString("buf"), "buf", true},
	}

	for _, tt := range tests {
		got, ok := configValue(tt.in)
		if ok != tt.ok {
			t.Errorf("configValue(%v) ok = %v, want %v", tt.in, ok, tt.ok)
		}

		if ok && !strings.EqualFold(toString(got), toString(tt.want)) {
			t.Errorf("configValue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func toString(v any) string {
	data, _ := yaml.Marshal(v)

	return string(data)
}
