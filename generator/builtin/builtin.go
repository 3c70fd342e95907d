package builtin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/rdmx/lang"
	"github.com/ardnew/rdmx/render"
)

// Errors returned by the eval action. The pipeline reports them as
// generator failures located at the directive.
var (
	ErrExprCompile = lang.NewError("expr_compile", "compile expression")
	ErrExprRun     = lang.NewError("expr_run", "evaluate expression")
	ErrEmptyExpr   = lang.NewError("expr_empty", "section has no expression")
)

// New returns the builtin generator.
func New() *render.Table {
	return render.NewTable().
		Define("section", render.Action{
			Doc:       "named container whose rendered body other directives can refer to",
			Container: "name",
			Params: render.Schema{
				"name": {Type: render.TypeString, Required: true, Doc: "section name"},
			},
		}, section).
		Define("eval", render.Action{
			Doc: "evaluate the closest preceding section as an expression",
			Params: render.Schema{
				"section": {Type: render.TypeString, Required: true, Doc: "section to evaluate"},
				"lang": {
					Type:    render.TypeString,
					Default: lang.StringValue("text"),
					Doc:     "info string of the result code block",
				},
			},
		}, eval).
		Define("print", render.Action{
			Doc: "emit the text of a value",
			Params: render.Schema{
				"value": {Type: render.TypeAny, Required: true, Doc: "value to print"},
			},
		}, printValue)
}

// Register adds the builtin generator to reg under [lang.BuiltinNamespace].
func Register(reg *render.Registry) error {
	return reg.Register(lang.BuiltinNamespace, New())
}

func section(ctx context.Context, _ *render.Call, rc *render.Context) ([]byte, error) {
	out, err := rc.RenderChildren(ctx)
	if err != nil {
		return nil, err
	}

	return []byte(out), nil
}

func printValue(_ context.Context, call *render.Call, _ *render.Context) ([]byte, error) {
	return []byte(call.Params.String("value")), nil
}

func eval(ctx context.Context, call *render.Call, rc *render.Context) ([]byte, error) {
	name := call.Params.String("section")

	s, err := rc.Section(name)
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(Unfence(s.Content))
	if source == "" {
		return nil, ErrEmptyExpr.Wrapf("%q", name).
			With(slog.String("section", name))
	}

	result, err := Evaluate(source, rc.Vars())
	if err != nil {
		return nil, err
	}

	rc.Logger().TraceContext(ctx, "evaluated",
		slog.String("section", name),
		slog.String("result", result))

	var sb strings.Builder

	sb.WriteString("```")
	sb.WriteString(call.Params.String("lang"))
	sb.WriteByte('\n')
	sb.WriteString(result)
	sb.WriteString("\n```\n")

	return []byte(sb.String()), nil
}

// Evaluate compiles source as an expr-lang expression and runs it with the
// given variables as its environment.
func Evaluate(source string, vars map[string]lang.Value) (string, error) {
	env := make(map[string]any, len(vars))
	for k, v := range vars {
		env[k] = v.Any()
	}

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return "", ErrExprCompile.Wrap(err).
			With(slog.String("source", source))
	}

	out, err := vm.Run(program, env)
	if err != nil {
		return "", ErrExprRun.Wrap(err).
			With(slog.String("source", source))
	}

	if s, ok := out.(string); ok {
		return s, nil
	}

	return fmt.Sprint(out), nil
}

// Unfence returns the body of the first fenced code block in s, or s itself
// if it contains no fence. An unclosed fence extends to the end of s.
func Unfence(s string) string {
	lines := strings.Split(s, "\n")

	var fence string

	start := -1

	for i, line := range lines {
		t := strings.TrimSpace(line)

		switch {
		case start < 0:
			for _, f := range []string{"```", "~~~"} {
				if strings.HasPrefix(t, f) {
					start, fence = i, f
				}
			}

		case strings.HasPrefix(t, fence) && strings.Trim(t, fence[:1]) == "":
			return strings.Join(lines[start+1:i], "\n")
		}
	}

	if start < 0 {
		return s
	}

	return strings.Join(lines[start+1:], "\n")
}
