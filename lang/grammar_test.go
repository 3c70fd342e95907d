package lang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseHeader(t *testing.T) {
	col := func(c int) Position {
		return Position{Offset: c - 1, Line: 1, Column: c}
	}

	tests := []struct {
		name  string
		input string
		want  *Header
	}{
		{
			name:  "builtin namespace",
			input: ":section",
			want: &Header{
				Namespace: BuiltinNamespace,
				Action:    "section",
				Pos:       col(1),
			},
		},
		{
			name:  "explicit namespace",
			input: "deps:list",
			want:  &Header{Namespace: "deps", Action: "list", Pos: col(1)},
		},
		{
			name:  "block end",
			input: "/deps:list",
			want: &Header{
				Namespace: "deps",
				Action:    "list",
				End:       true,
				Pos:       col(1),
			},
		},
		{
			name:  "builtin block end",
			input: " / :x ",
			want: &Header{
				Namespace: BuiltinNamespace,
				Action:    "x",
				End:       true,
				Pos:       col(2),
			},
		},
		{
			name:  "every value kind",
			input: `:x s:"str" w:word i:-3 f:2.5 b:true v:$var`,
			want: &Header{
				Namespace: BuiltinNamespace,
				Action:    "x",
				Pos:       col(1),
				Params: []Param{
					{Key: "s", Value: StringValue("str"), Pos: col(4)},
					{Key: "w", Value: StringValue("word"), Pos: col(12)},
					{Key: "i", Value: IntValue(-3), Pos: col(19)},
					{Key: "f", Value: FloatValue(2.5), Pos: col(24)},
					{Key: "b", Value: BoolValue(true), Pos: col(30)},
					{Key: "v", Value: VarRef("var"), Pos: col(37)},
				},
			},
		},
		{
			name:  "repeated keys are kept in order",
			input: ":x a:1, a:2",
			want: &Header{
				Namespace: BuiltinNamespace,
				Action:    "x",
				Pos:       col(1),
				Params: []Param{
					{Key: "a", Value: IntValue(1), Pos: col(4)},
					{Key: "a", Value: IntValue(2), Pos: col(9)},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeader(tt.input, Start)
			if err != nil {
				t.Fatalf("ParseHeader(%q) error: %v", tt.input, err)
			}

			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(Value{})); diff != "" {
				t.Errorf("ParseHeader(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseHeader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  *Error
		col   int
	}{
		{name: "empty", input: "", kind: ErrSyntax, col: 1},
		{name: "missing namespace separator", input: "x", kind: ErrSyntax, col: 1},
		{name: "missing action", input: ":", kind: ErrSyntax, col: 1},
		{name: "numeric action", input: ":1", kind: ErrSyntax, col: 2},
		{name: "key without value", input: ":x k", kind: ErrSyntax, col: 4},
		{name: "colon without value", input: ":x k:", kind: ErrSyntax, col: 5},
		{name: "double colon", input: ":x k::", kind: ErrSyntax, col: 6},
		{name: "value without key", input: ":x 1", kind: ErrSyntax, col: 4},
		{name: "end with params", input: "/:x k:1", kind: ErrIllegalBlockEndParams, col: 5},
		{name: "end with second param", input: "/ns:x a:1 b:2", kind: ErrIllegalBlockEndParams, col: 7},
		{name: "end with trailing literal", input: "/:x 1", kind: ErrSyntax, col: 5},
		{name: "double slash", input: "//:x", kind: ErrSyntax, col: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.input, Start)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("ParseHeader(%q) error = %v, want kind %s",
					tt.input, err, tt.kind.Kind())
			}

			if got := AsError(err).Position().Column; got != tt.col {
				t.Errorf("error at column %d, want %d", got, tt.col)
			}
		})
	}
}
