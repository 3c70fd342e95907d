package lang

import (
	"strconv"
)

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	TokenInvalid TokenKind = iota
	TokenIdentifier
	TokenString
	TokenInteger
	TokenFloat
	TokenBool
	TokenVariable
	TokenColon
	TokenSlash
)

// String returns the name of the token kind as used in diagnostics.
func (k TokenKind) String() string {
	switch k {
	case TokenIdentifier:
		return "identifier"

	case TokenString:
		return "string"

	case TokenInteger:
		return "integer"

	case TokenFloat:
		return "float"

	case TokenBool:
		return "bool"

	case TokenVariable:
		return "variable"

	case TokenColon:
		return "':'"

	case TokenSlash:
		return "'/'"

	default:
		return "invalid"
	}
}

// Token is a lexical element of a directive tag.
//
// Text holds the identifier spelling, the unescaped string contents, or the
// variable name without its leading '$'. Int, Float and Bool hold the decoded
// literal of the corresponding kinds.
type Token struct {
	Kind  TokenKind
	Text  string
	Int   int64
	Float float64
	Bool  bool
	Pos   Position
}

// Value returns the parameter value spelled by t.
// Identifiers used as values are strings equal to their literal text.
func (t Token) Value() (Value, bool) {
	switch t.Kind {
	case TokenIdentifier, TokenString:
		return StringValue(t.Text), true
	case TokenInteger:
		return IntValue(t.Int), true
	case TokenFloat:
		return FloatValue(t.Float), true
	case TokenBool:
		return BoolValue(t.Bool), true
	case TokenVariable:
		return VarRef(t.Text), true
	default:
		return Value{}, false
	}
}

// String describes t for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier:
		return "identifier " + t.Text
	case TokenString:
		return "string " + strconv.Quote(t.Text)
	case TokenInteger:
		return "integer " + strconv.FormatInt(t.Int, 10)
	case TokenFloat:
		return "float " + strconv.FormatFloat(t.Float, 'g', -1, 64)
	case TokenBool:
		return "bool " + strconv.FormatBool(t.Bool)
	case TokenVariable:
		return "variable $" + t.Text
	default:
		return t.Kind.String()
	}
}
