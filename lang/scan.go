package lang

import (
	"strings"
	"unicode/utf8"
)

// Directive comment delimiters. The opening and closing spellings of a marker
// are chosen independently of each other and of the marker it pairs with.
const (
	openShort  = "<!-- " + BuiltinNamespace + " "
	openLong   = "<!--- " + BuiltinNamespace + " "
	closeShort = "-->"
	closeLong  = "--->"
)

// Scan splits a document into text and directive chunks in document order.
// The name of the document is used only to attribute errors.
//
// Concatenating the Text of every returned chunk reproduces input exactly.
// Empty text runs are never emitted.
func Scan(file, input string) ([]Chunk, error) {
	s := &scanner{
		file:    file,
		input:   input,
		pos:     Start,
		textPos: Start,
	}

	return s.scan()
}

// scanner walks a document one character at a time.
type scanner struct {
	file  string
	input string
	off   int
	pos   Position

	textOff int // start of the pending text run
	textPos Position

	chunks []Chunk
}

func (s *scanner) scan() ([]Chunk, error) {
	for s.off < len(s.input) {
		n := s.opener()
		if n == 0 {
			s.advance()

			continue
		}

		s.flush()

		if err := s.directive(n); err != nil {
			return nil, err
		}
	}

	s.flush()

	return s.chunks, nil
}

// opener returns the length of the opening delimiter at the current offset,
// or 0 if there is none.
func (s *scanner) opener() int {
	rest := s.input[s.off:]

	switch {
	case strings.HasPrefix(rest, openLong):
		return len(openLong)
	case strings.HasPrefix(rest, openShort):
		return len(openShort)
	default:
		return 0
	}
}

// closer returns the offset and length of the first closing delimiter at or
// after the current offset.
func (s *scanner) closer() (off, n int, ok bool) {
	for i := s.off; i < len(s.input); i++ {
		rest := s.input[i:]

		switch {
		case strings.HasPrefix(rest, closeLong):
			return i, len(closeLong), true
		case strings.HasPrefix(rest, closeShort):
			return i, len(closeShort), true
		}
	}

	return 0, 0, false
}

// advance moves past one character. A "\r\n" pair counts as one line break.
func (s *scanner) advance() {
	r, size := utf8.DecodeRuneInString(s.input[s.off:])

	switch {
	case r == '\n':
		s.pos.Line++
		s.pos.Column = 1

	case r == '\r' && strings.HasPrefix(s.input[s.off+size:], "\n"):

	default:
		s.pos.Column++
	}

	s.off += size
	s.pos.Offset = s.off
}

// skipTo advances to the given byte offset.
func (s *scanner) skipTo(off int) {
	for s.off < off {
		s.advance()
	}
}

// flush emits the pending text run, if any.
func (s *scanner) flush() {
	if s.off > s.textOff {
		s.chunks = append(s.chunks, Chunk{
			Kind: ChunkText,
			Text: s.input[s.textOff:s.off],
			Pos:  s.textPos,
		})
	}

	s.textOff, s.textPos = s.off, s.pos
}

// directive scans the marker whose opening delimiter of length n begins at
// the current offset.
func (s *scanner) directive(n int) error {
	start, startOff := s.pos, s.off

	s.skipTo(s.off + n)

	inner, innerOff := s.pos, s.off

	closeOff, closeLen, ok := s.closer()
	if !ok {
		return ErrUnterminatedTag.At(s.file, start).
			WithSource(s.input[startOff:], start)
	}

	s.skipTo(closeOff + closeLen)

	switch rest := s.input[s.off:]; {
	case strings.HasPrefix(rest, "\r\n"):
		s.skipTo(s.off + 2)
	case strings.HasPrefix(rest, "\n"):
		s.skipTo(s.off + 1)
	}

	raw := s.input[startOff:s.off]

	h, err := ParseHeader(s.input[innerOff:closeOff], inner)
	if err != nil {
		return AsError(err).In(s.file).WithSource(raw, start)
	}

	h.Raw, h.Pos = raw, start

	kind := ChunkStart
	if h.End {
		kind = ChunkEnd
	}

	s.chunks = append(s.chunks, Chunk{
		Kind:   kind,
		Text:   raw,
		Header: h,
		Pos:    start,
	})

	s.textOff, s.textPos = s.off, s.pos

	return nil
}
