package lang

import (
	"log/slog"
)

// BuiltinNamespace is the namespace of a directive written as ":action".
const BuiltinNamespace = "rdmx"

// Param is a key/value parameter of a directive, in source order.
// Pos is the position of the key.
type Param struct {
	Key   string
	Value Value
	Pos   Position
}

// Header is a parsed directive tag.
//
// A block end (End is true) never carries parameters.
// Raw is the exact source text of the marker, including its delimiters and
// the newline it owns, and Pos is the position of its first character.
type Header struct {
	Namespace string
	Action    string
	Params    []Param
	End       bool
	Raw       string
	Pos       Position
}

// Name returns the "namespace:action" spelling of h.
func (h *Header) Name() string { return h.Namespace + ":" + h.Action }

// Closes reports whether h is a block end matching the block start open.
func (h *Header) Closes(open *Header) bool {
	return open != nil && h.End &&
		h.Namespace == open.Namespace && h.Action == open.Action
}

// ParseHeader parses the text enclosed by a directive comment.
// The text begins at position at in its document.
//
//	directive        := '/'? namespacedAction paramEntry*
//	namespacedAction := ':' identifier | identifier ':' identifier
//	paramEntry       := identifier ':' value
//	value            := string | integer | float | bool | identifier | variable
func ParseHeader(text string, at Position) (*Header, error) {
	tokens, err := Lex(text, at)
	if err != nil {
		return nil, err
	}

	g := &grammar{tokens: tokens, end: at}
	if n := len(tokens); n > 0 {
		g.end = tokens[n-1].Pos
	}

	return g.parseDirective()
}

// grammar holds the state of a recursive descent over a token list.
type grammar struct {
	tokens []Token
	next   int
	end    Position // reported once the tokens run out
}

func (g *grammar) eof() bool { return g.next >= len(g.tokens) }

func (g *grammar) peek() Token {
	if g.eof() {
		return Token{Pos: g.end}
	}

	return g.tokens[g.next]
}

func (g *grammar) advance() Token {
	t := g.peek()
	if !g.eof() {
		g.next++
	}

	return t
}

// accept consumes the next token if it is of the given kind.
func (g *grammar) accept(kind TokenKind) bool {
	if g.peek().Kind != kind {
		return false
	}

	g.next++

	return true
}

// expect consumes and returns the next token, which must be of kind.
func (g *grammar) expect(kind TokenKind) (Token, error) {
	t := g.peek()
	if t.Kind != kind {
		return t, g.unexpected(kind.String())
	}

	g.next++

	return t, nil
}

func (g *grammar) unexpected(want string) *Error {
	t := g.peek()

	found := "end of tag"
	if !g.eof() {
		found = t.String()
	}

	return ErrSyntax.Wrapf("expected %s, found %s", want, found).
		At("", t.Pos).
		With(slog.String("expected", want), slog.String("found", found))
}

func (g *grammar) parseDirective() (*Header, error) {
	h := &Header{Pos: g.peek().Pos}

	h.End = g.accept(TokenSlash)

	if err := g.parseNamespacedAction(h); err != nil {
		return nil, err
	}

	for !g.eof() {
		if h.End {
			return nil, g.illegalParams()
		}

		p, err := g.parseParam()
		if err != nil {
			return nil, err
		}

		h.Params = append(h.Params, p)
	}

	return h, nil
}

func (g *grammar) parseNamespacedAction(h *Header) error {
	if g.accept(TokenColon) {
		action, err := g.expect(TokenIdentifier)
		if err != nil {
			return err
		}

		h.Namespace, h.Action = BuiltinNamespace, action.Text

		return nil
	}

	if g.peek().Kind != TokenIdentifier {
		return g.unexpected("':' or namespace")
	}

	ns := g.advance()

	if _, err := g.expect(TokenColon); err != nil {
		return err
	}

	action, err := g.expect(TokenIdentifier)
	if err != nil {
		return err
	}

	h.Namespace, h.Action = ns.Text, action.Text

	return nil
}

// illegalParams reports trailing tokens of a block end. A trailing parameter
// key is reported as such, anything else as a syntax error.
func (g *grammar) illegalParams() error {
	t := g.peek()
	if t.Kind != TokenIdentifier {
		return g.unexpected("end of tag")
	}

	return ErrIllegalBlockEndParams.At("", t.Pos).
		With(slog.String("key", t.Text))
}

func (g *grammar) parseParam() (Param, error) {
	key, err := g.expect(TokenIdentifier)
	if err != nil {
		return Param{}, err
	}

	if _, err := g.expect(TokenColon); err != nil {
		return Param{}, err
	}

	val, ok := g.peek().Value()
	if !ok {
		return Param{}, g.unexpected("value")
	}

	g.advance()

	return Param{Key: key.Text, Value: val, Pos: key.Pos}, nil
}
