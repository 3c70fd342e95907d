package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/rdmx/lang"
)

// testGenerator returns a Table with the actions used across these tests.
func testGenerator() *Table {
	return NewTable().
		Define("x", Action{
			Params: Schema{"k": {Type: TypeInteger}},
		}, func(context.Context, *Call, *Context) ([]byte, error) {
			return []byte("Z"), nil
		}).
		Define("pass", Action{}, func(ctx context.Context, _ *Call, rc *Context) ([]byte, error) {
			out, err := rc.RenderChildren(ctx)
			if err != nil {
				return nil, err
			}

			return []byte(out), nil
		}).
		Define("upper", Action{}, func(ctx context.Context, _ *Call, rc *Context) ([]byte, error) {
			out, err := rc.RenderChildren(ctx)
			if err != nil {
				return nil, err
			}

			return []byte(strings.ToUpper(out)), nil
		}).
		Define("section", Action{
			Params:    Schema{"name": {Type: TypeString, Required: true}},
			Container: "name",
		}, func(ctx context.Context, _ *Call, rc *Context) ([]byte, error) {
			out, err := rc.RenderChildren(ctx)
			if err != nil {
				return nil, err
			}

			return []byte(out), nil
		}).
		Define("get", Action{
			Params: Schema{"name": {Type: TypeString, Required: true}},
		}, func(_ context.Context, call *Call, rc *Context) ([]byte, error) {
			s, err := rc.Section(call.Params.String("name"))
			if err != nil {
				return nil, err
			}

			return []byte("[" + s.Content + "]"), nil
		})
}

func testPipeline(t *testing.T, vars map[string]lang.Value) *Pipeline {
	t.Helper()

	reg := NewRegistry()
	if err := reg.Register(lang.BuiltinNamespace, testGenerator()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	return New(Config{Registry: reg, Vars: vars})
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "replaces content between markers",
			input: "A<!-- rdmx :x k:1 -->B<!-- rdmx /:x -->C",
			want:  "A<!-- rdmx :x k:1 -->Z<!-- rdmx /:x -->C",
		},
		{
			name:  "text only",
			input: "# Title\r\n\r\nno directives <!-- here -->\n",
			want:  "# Title\r\n\r\nno directives <!-- here -->\n",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "passthrough",
			input: "a\n<!--- rdmx :pass -->\nbody\n\n<!-- rdmx /:pass --->\nz",
			want:  "a\n<!--- rdmx :pass -->\nbody\n\n<!-- rdmx /:pass --->\nz",
		},
		{
			name:  "nested passthrough",
			input: "<!-- rdmx :pass -->1<!-- rdmx :pass -->2<!-- rdmx /:pass -->3<!-- rdmx /:pass -->",
			want:  "<!-- rdmx :pass -->1<!-- rdmx :pass -->2<!-- rdmx /:pass -->3<!-- rdmx /:pass -->",
		},
		{
			name:  "children rendered before use",
			input: "<!-- rdmx :upper -->a<!-- rdmx :x -->b<!-- rdmx /:x -->c<!-- rdmx /:upper -->",
			want:  "<!-- rdmx :upper -->A<!-- RDMX :X -->Z<!-- RDMX /:X -->C<!-- rdmx /:upper -->",
		},
		{
			name:  "empty content",
			input: "<!-- rdmx :x --><!-- rdmx /:x -->",
			want:  "<!-- rdmx :x -->Z<!-- rdmx /:x -->",
		},
	}

	p := testPipeline(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Transform(context.Background(), "doc.md", tt.input)
			if err != nil {
				t.Fatalf("Transform error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Transform() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransform_Variables(t *testing.T) {
	var got int64

	gen := NewTable().Define("x", Action{
		Params: Schema{"k": {Type: TypeInteger}},
	}, func(_ context.Context, call *Call, _ *Context) ([]byte, error) {
		got = call.Params.Int("k")

		return nil, nil
	})

	reg := NewRegistry()
	if err := reg.Register("ns", gen); err != nil {
		t.Fatal(err)
	}

	vars := map[string]lang.Value{"n": lang.IntValue(3)}
	p := New(Config{Registry: reg, Vars: vars})

	vars["n"] = lang.IntValue(4) // must not affect p

	out, err := p.Transform(context.Background(), "doc.md",
		"<!-- rdmx ns:x k:$n -->old<!-- rdmx /ns:x -->")
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	if got != 3 {
		t.Errorf("generator received k=%d, want 3", got)
	}

	if out != "<!-- rdmx ns:x k:$n --><!-- rdmx /ns:x -->" {
		t.Errorf("Transform() = %q", out)
	}
}

func TestTransform_UndefVar(t *testing.T) {
	p := testPipeline(t, map[string]lang.Value{"other": lang.IntValue(1)})

	_, err := p.Transform(context.Background(), "doc.md",
		"<!-- rdmx :x k:$missing -->B<!-- rdmx /:x -->")
	if !errors.Is(err, ErrUndefVar) {
		t.Fatalf("error = %v, want undef_var", err)
	}

	e := lang.AsError(err)

	if v, ok := e.Attr("var"); !ok || v.String() != "missing" {
		t.Errorf("var attribute = %v, want missing", v)
	}

	if !strings.Contains(e.Error(), "missing") {
		t.Errorf("message %q does not name the variable", e.Error())
	}

	if want := (lang.Position{Offset: 13, Line: 1, Column: 14}); e.Position() != want {
		t.Errorf("error at %+v, want %+v", e.Position(), want)
	}
}

func TestTransform_ResolutionErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    *lang.Error
		suggest string
	}{
		{
			name:    "unresolved namespace",
			input:   "<!-- rdmx rdmz:x --><!-- rdmx /rdmz:x -->",
			kind:    ErrUnresolvedGenerator,
			suggest: lang.BuiltinNamespace,
		},
		{
			name:    "unknown action",
			input:   "<!-- rdmx :secton name:a --><!-- rdmx /:secton -->",
			kind:    ErrUnknownAction,
			suggest: "section",
		},
		{
			name:    "abbreviated action",
			input:   "<!-- rdmx :sect --><!-- rdmx /:sect -->",
			kind:    ErrUnknownAction,
			suggest: "section",
		},
		{
			name:  "unknown action without suggestion",
			input: "<!-- rdmx :qqqqqqq --><!-- rdmx /:qqqqqqq -->",
			kind:  ErrUnknownAction,
		},
	}

	p := testPipeline(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Transform(context.Background(), "doc.md", tt.input)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want %s", err, tt.kind.Kind())
			}

			e := lang.AsError(err)
			if e.File() != "doc.md" || e.Position() != lang.Start {
				t.Errorf("error at %s:%v", e.File(), e.Position())
			}

			if tt.suggest == "" {
				if _, ok := e.Attr("suggestions"); ok {
					t.Errorf("unexpected suggestions in %v", e)
				}

				return
			}

			v, ok := e.Attr("suggestions")
			if !ok {
				t.Fatalf("no suggestions in %v", e)
			}

			if s, _ := v.Any().([]string); len(s) == 0 || s[0] != tt.suggest {
				t.Errorf("suggestions = %v, want %q first", v.Any(), tt.suggest)
			}
		})
	}
}

func TestTransform_Validation(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason Reason
		col    int
	}{
		{
			name:   "wrong type",
			input:  `<!-- rdmx :x k:"one" --><!-- rdmx /:x -->`,
			reason: ReasonType,
			col:    14,
		},
		{
			name:   "unknown key",
			input:  `<!-- rdmx :x j:1 --><!-- rdmx /:x -->`,
			reason: ReasonUnknown,
			col:    14,
		},
		{
			name:   "duplicate key",
			input:  `<!-- rdmx :x k:1 k:2 --><!-- rdmx /:x -->`,
			reason: ReasonDuplicate,
			col:    18,
		},
		{
			name:   "missing required",
			input:  `<!-- rdmx :section --><!-- rdmx /:section -->`,
			reason: ReasonMissing,
			col:    1,
		},
	}

	p := testPipeline(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Transform(context.Background(), "doc.md", tt.input)
			if !errors.Is(err, ErrParamsValidation) {
				t.Fatalf("error = %v, want params_validation_error", err)
			}

			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("error %v does not wrap a SchemaError", err)
			}

			if se.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", se.Reason, tt.reason)
			}

			if col := lang.AsError(err).Position().Column; col != tt.col {
				t.Errorf("error at column %d, want %d", col, tt.col)
			}
		})
	}
}

func TestTransform_GeneratorErrors(t *testing.T) {
	boom := errors.New("boom")

	gen := NewTable().
		Define("fail", Action{}, func(context.Context, *Call, *Context) ([]byte, error) {
			return nil, boom
		}).
		Define("both", Action{}, func(context.Context, *Call, *Context) ([]byte, error) {
			return []byte("partial"), boom
		}).
		Define("panic", Action{}, func(context.Context, *Call, *Context) ([]byte, error) {
			panic("unreachable state")
		}).
		Define("wrap", Action{}, func(ctx context.Context, _ *Call, rc *Context) ([]byte, error) {
			_, err := rc.RenderChildren(ctx)

			return nil, err
		})

	reg := NewRegistry()
	if err := reg.Register("g", gen); err != nil {
		t.Fatal(err)
	}

	p := New(Config{Registry: reg})

	tests := []struct {
		name  string
		input string
		kind  *lang.Error
		line  int
	}{
		{"failure", "<!-- rdmx g:fail --><!-- rdmx /g:fail -->", ErrGenerator, 1},
		{"content and error", "<!-- rdmx g:both --><!-- rdmx /g:both -->", ErrInvalidGeneratorReturn, 1},
		{"panic", "<!-- rdmx g:panic --><!-- rdmx /g:panic -->", ErrInvalidGeneratorReturn, 1},
		{
			"nested failure keeps its origin",
			"<!-- rdmx g:wrap -->\n<!-- rdmx g:fail --><!-- rdmx /g:fail -->\n<!-- rdmx /g:wrap -->",
			ErrGenerator,
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := p.Transform(context.Background(), "doc.md", tt.input)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want %s", err, tt.kind.Kind())
			}

			if out != "" {
				t.Errorf("partial output %q", out)
			}

			if line := lang.AsError(err).Position().Line; line != tt.line {
				t.Errorf("error on line %d, want %d", line, tt.line)
			}
		})
	}

	_, err := p.Transform(context.Background(), "doc.md", tests[0].input)
	if !errors.Is(err, boom) {
		t.Errorf("generator error %v does not wrap its cause", err)
	}
}

func TestTransform_SiblingVisibility(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   *lang.Error
	}{
		{
			name: "closest preceding section",
			input: "<!-- rdmx :section name:one -->1<!-- rdmx /:section -->" +
				"<!-- rdmx :section name:two -->2<!-- rdmx /:section -->" +
				"<!-- rdmx :section name:one -->3<!-- rdmx /:section -->" +
				"<!-- rdmx :get name:one -->?<!-- rdmx /:get -->",
			want: "<!-- rdmx :section name:one -->1<!-- rdmx /:section -->" +
				"<!-- rdmx :section name:two -->2<!-- rdmx /:section -->" +
				"<!-- rdmx :section name:one -->3<!-- rdmx /:section -->" +
				"<!-- rdmx :get name:one -->[3]<!-- rdmx /:get -->",
		},
		{
			name: "rendered content is visible",
			input: "<!-- rdmx :section name:s --><!-- rdmx :x -->old<!-- rdmx /:x --><!-- rdmx /:section -->" +
				"<!-- rdmx :get name:s --><!-- rdmx /:get -->",
			want: "<!-- rdmx :section name:s --><!-- rdmx :x -->Z<!-- rdmx /:x --><!-- rdmx /:section -->" +
				"<!-- rdmx :get name:s -->[<!-- rdmx :x -->Z<!-- rdmx /:x -->]<!-- rdmx /:get -->",
		},
		{
			name: "same depth inside a container",
			input: "<!-- rdmx :section name:outer -->" +
				"<!-- rdmx :section name:inner -->x<!-- rdmx /:section -->" +
				"<!-- rdmx :get name:inner --><!-- rdmx /:get -->" +
				"<!-- rdmx /:section -->",
			want: "<!-- rdmx :section name:outer -->" +
				"<!-- rdmx :section name:inner -->x<!-- rdmx /:section -->" +
				"<!-- rdmx :get name:inner -->[x]<!-- rdmx /:get -->" +
				"<!-- rdmx /:section -->",
		},
		{
			name: "following sibling is not visible",
			input: "<!-- rdmx :get name:one --><!-- rdmx /:get -->" +
				"<!-- rdmx :section name:one -->1<!-- rdmx /:section -->",
			err: ErrSectionNotFound,
		},
		{
			name: "other depth is not visible",
			input: "<!-- rdmx :section name:outer -->" +
				"<!-- rdmx :section name:inner -->x<!-- rdmx /:section -->" +
				"<!-- rdmx /:section -->" +
				"<!-- rdmx :get name:inner --><!-- rdmx /:get -->",
			err: ErrSectionNotFound,
		},
		{
			name: "non-container is not visible",
			input: "<!-- rdmx :pass -->1<!-- rdmx /:pass -->" +
				"<!-- rdmx :get name:pass --><!-- rdmx /:get -->",
			err: ErrSectionNotFound,
		},
	}

	p := testPipeline(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Transform(context.Background(), "doc.md", tt.input)

			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("error = %v, want %s", err, tt.err.Kind())
				}

				if !errors.Is(err, ErrGenerator) {
					t.Errorf("error = %v, want %s", err, ErrGenerator.Kind())
				}

				if line := lang.AsError(err).Position().Line; line != 1 {
					t.Errorf("error on line %d, want 1", line)
				}

				return
			}

			if err != nil {
				t.Fatalf("Transform error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Transform() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestContext_Siblings(t *testing.T) {
	var seen []string

	gen := NewTable().Define("spy", Action{}, func(_ context.Context, call *Call, rc *Context) ([]byte, error) {
		seen = append(seen, fmt.Sprintf("%s before=%d after=%d children=%d depth=%d",
			call.Node.Pos, len(rc.Before), len(rc.After), len(rc.Children), rc.Depth()))

		return nil, nil
	})

	reg := NewRegistry()
	if err := reg.Register(lang.BuiltinNamespace, gen); err != nil {
		t.Fatal(err)
	}

	input := "a\n<!-- rdmx :spy -->b<!-- rdmx /:spy -->\nc\n<!-- rdmx :spy --><!-- rdmx /:spy -->"

	if _, err := New(Config{Registry: reg}).Transform(context.Background(), "doc.md", input); err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	want := []string{
		"2:1 before=1 after=2 children=1 depth=0",
		"4:1 before=3 after=0 children=0 depth=0",
	}

	if strings.Join(seen, "\n") != strings.Join(want, "\n") {
		t.Errorf("calls:\n%s\nwant:\n%s", strings.Join(seen, "\n"), strings.Join(want, "\n"))
	}
}

func TestPipeline_Concurrent(t *testing.T) {
	p := testPipeline(t, nil)

	var wg sync.WaitGroup

	errs := make(chan error, 16)

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			input := fmt.Sprintf("%d<!-- rdmx :section name:s -->%d<!-- rdmx /:section -->"+
				"<!-- rdmx :get name:s --><!-- rdmx /:get -->", i, i)

			out, err := p.Transform(context.Background(), "doc.md", input)
			if err != nil {
				errs <- err

				return
			}

			if !strings.Contains(out, fmt.Sprintf("[%d]", i)) {
				errs <- fmt.Errorf("document %d rendered as %q", i, out)
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("a", NewTable()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if err := reg.Register("a", NewTable()); !errors.Is(err, ErrDuplicateNamespace) {
		t.Errorf("duplicate Register error = %v", err)
	}

	p := New(Config{Registry: reg})

	if err := reg.Register("b", NewTable()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if got := p.Registry().Namespaces(); len(got) != 1 || got[0] != "a" {
		t.Errorf("pipeline namespaces = %v, want [a]", got)
	}
}
