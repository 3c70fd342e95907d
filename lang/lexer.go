package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// tagLexer tokenizes the text enclosed by a directive comment.
// Rules are tried in order and the first match wins, so floats are recognized
// before integers and the boolean words before identifiers.
var tagLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s,]+`},
	{Name: "Float", Pattern: `-?[0-9]+\.[0-9]+(?:[eE][+-]?[0-9]+)?`},
	{Name: "Integer", Pattern: `-?[0-9]+`},
	{Name: "String", Pattern: `"(?:\\[\s\S]|[^"\\])*"|'(?:\\[\s\S]|[^'\\])*'`},
	{Name: "Bool", Pattern: `(?:true|false)\b`},
	{Name: "Variable", Pattern: `\$[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Identifier", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Slash", Pattern: `/`},
})

// tokenKinds maps the lexer's symbol table onto token kinds.
var tokenKinds = func() map[lexer.TokenType]TokenKind {
	kinds := map[string]TokenKind{
		"Float":      TokenFloat,
		"Integer":    TokenInteger,
		"String":     TokenString,
		"Bool":       TokenBool,
		"Variable":   TokenVariable,
		"Identifier": TokenIdentifier,
		"Colon":      TokenColon,
		"Slash":      TokenSlash,
	}

	m := make(map[lexer.TokenType]TokenKind, len(kinds))

	for name, typ := range tagLexer.Symbols() {
		if kind, ok := kinds[name]; ok {
			m[typ] = kind
		}
	}

	return m
}()

// Lex tokenizes the text of a directive tag that begins at position at.
// Whitespace and commas are discarded wherever they occur.
//
// The returned error is an *Error of kind [ErrIllegalCharacter] or [ErrSyntax]
// positioned at the offending character.
func Lex(text string, at Position) ([]Token, error) {
	lex, err := tagLexer.LexString("", text)
	if err != nil {
		return nil, ErrSyntax.Wrap(err).At("", at)
	}

	var tokens []Token

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, lexError(text, at, err)
		}

		if tok.EOF() {
			return tokens, nil
		}

		kind, ok := tokenKinds[tok.Type]
		if !ok {
			continue // whitespace and commas
		}

		t, err := makeToken(kind, tok.Value, at.shift(tok.Pos))
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, t)
	}
}

func makeToken(kind TokenKind, text string, pos Position) (Token, error) {
	t := Token{Kind: kind, Text: text, Pos: pos}

	switch kind {
	case TokenInteger:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Token{}, ErrSyntax.Wrap(err).At("", pos).
				With(slog.String("literal", text))
		}

		t.Int = i

	case TokenFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, ErrSyntax.Wrap(err).At("", pos).
				With(slog.String("literal", text))
		}

		t.Float = f

	case TokenBool:
		t.Bool = text == "true"

	case TokenString:
		t.Text = unquote(text)

	case TokenVariable:
		t.Text = strings.TrimPrefix(text, "$")

	case TokenInvalid, TokenIdentifier, TokenColon, TokenSlash:
	}

	return t, nil
}

// lexError converts a failure reported by the tag lexer into an
// [ErrIllegalCharacter] naming the character that matched no rule.
func lexError(text string, at Position, err error) error {
	var lerr *lexer.Error
	if !errors.As(err, &lerr) {
		return ErrSyntax.Wrap(err).At("", at)
	}

	pos := at.shift(lerr.Pos)

	ch := ""
	if off := lerr.Pos.Offset; off >= 0 && off < len(text) {
		r, _ := utf8.DecodeRuneInString(text[off:])
		ch = string(r)
	}

	return ErrIllegalCharacter.Wrapf("%q", ch).At("", pos).
		With(slog.String("character", ch))
}

// unquote strips the quotes of a string literal and resolves its escapes.
// An escaped character without a special meaning stands for itself.
func unquote(lit string) string {
	if len(lit) < 2 {
		return ""
	}

	body := lit[1 : len(lit)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder

	sb.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			sb.WriteByte(c)

			continue
		}

		i++

		switch c = body[i]; c {
		case 's':
			sb.WriteByte(' ')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'n':
			sb.WriteByte('\n')
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
