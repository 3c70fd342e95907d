package lang

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Sentinel errors produced while scanning and parsing a document.
//
// Every error returned by this module is derived from a sentinel via
// [Error.Wrap], [Error.With], [Error.At] or [Error.WithSource], and matches
// that sentinel with [errors.Is].
var (
	ErrIllegalCharacter = NewError(
		"illegal_character", "illegal character")
	ErrUnterminatedTag = NewError(
		"unterminated_comment_tag", "unterminated comment tag")
	ErrSyntax = NewError(
		"syntax_error", "syntax error")
	ErrIllegalBlockEndParams = NewError(
		"illegal_block_end_params", "block end does not accept parameters")
	ErrNoBlockEnd = NewError(
		"no_block_end", "block start has no matching block end")
	ErrNoBlockStart = NewError(
		"no_block_start", "block end has no matching block start")
)

// Error represents a failure with a kind, an optional location in a source
// document, and optional attributes for structured logging.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind   *Error
	name   string
	msg    string
	err    error // Wrapped error (for errors.Unwrap)
	file   string
	pos    Position
	source string   // Raw source text surrounding pos
	origin Position // Position of the first character of source
	attrs  []slog.Attr
}

// NewError creates a sentinel Error of the given kind.
// The kind is a short snake_case identifier; msg is a human-readable summary.
func NewError(kind, msg string) *Error {
	return &Error{name: kind, msg: msg}
}

// AsError returns err as an *Error, wrapping it in a kindless Error if it is
// not one already.
func AsError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}

	return &Error{err: err}
}

// root returns the sentinel from which e was derived.
func (e *Error) root() *Error {
	if e.kind != nil {
		return e.kind
	}

	return e
}

// derive returns a copy of e that shares its kind.
func (e *Error) derive() *Error {
	d := *e
	d.kind = e.root()
	d.attrs = slices.Clip(e.attrs)

	return &d
}

// Kind returns the snake_case identifier of the error kind.
func (e *Error) Kind() string { return e.name }

// File returns the logical name of the document the error refers to.
func (e *Error) File() string { return e.file }

// Position returns the location the error refers to.
func (e *Error) Position() Position { return e.pos }

// Source returns the raw source text attached with [Error.WithSource].
func (e *Error) Source() string { return e.source }

// Attr returns the value of the last attribute named key added with
// [Error.With].
func (e *Error) Attr(key string) (slog.Value, bool) {
	for i := len(e.attrs) - 1; i >= 0; i-- {
		if e.attrs[i].Key == key {
			return e.attrs[i].Value, true
		}
	}

	return slog.Value{}, false
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<loc>: <msg>: <err>"
	//   2. "<loc>: <msg>"        // wrapped error is nil
	//   3. "<msg>: <err>"        // no location
	//   4. "<err>"               // base error message is empty
	part := make([]string, 0, 3)

	if loc := e.location(); loc != "" {
		part = append(part, loc)
	}

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *Error) location() string {
	switch {
	case e.file != "" && e.pos.IsValid():
		return e.file + ":" + e.pos.String()
	case e.file != "":
		return e.file
	case e.pos.IsValid():
		return e.pos.String()
	default:
		return ""
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind as e.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.root() == t.root()
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+6)

	if e.name != "" {
		attrs = append(attrs, slog.String("kind", e.name))
	}

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.file != "" {
		attrs = append(attrs, slog.String("file", e.file))
	}

	if e.pos.IsValid() {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	d := e.derive()
	d.err = err

	return d
}

// Wrapf creates a new Error wrapping a formatted error.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	d := e.derive()
	d.attrs = append(d.attrs, attrs...)

	return d
}

// At returns a copy of e located at pos in file.
func (e *Error) At(file string, pos Position) *Error {
	d := e.derive()
	d.file = file
	d.pos = pos

	return d
}

// In returns a copy of e attributed to file, keeping its position.
func (e *Error) In(file string) *Error {
	d := e.derive()
	d.file = file

	return d
}

// WithSource returns a copy of e carrying the raw source text that begins at
// origin, used by [Error.Snippet] to display the failure in context.
func (e *Error) WithSource(source string, origin Position) *Error {
	d := e.derive()
	d.source = source
	d.origin = origin

	return d
}

// Snippet renders the attached source text with line numbers and a caret
// under the error position. Lines following the error position are omitted.
// It returns "" if no source is attached.
func (e *Error) Snippet() string {
	if e.source == "" || !e.origin.IsValid() {
		return ""
	}

	lines := strings.Split(strings.TrimRight(e.source, "\r\n"), "\n")
	if n := e.pos.Line - e.origin.Line + 1; n > 0 && n < len(lines) {
		lines = lines[:n]
	}

	last := e.origin.Line + len(lines) - 1
	width := len(strconv.Itoa(last))

	var buf strings.Builder

	for i, line := range lines {
		num := e.origin.Line + i
		line = strings.TrimSuffix(line, "\r")

		buf.WriteString("  ")
		buf.WriteString(fmt.Sprintf("%*d", width, num))
		buf.WriteString(" | ")
		buf.WriteString(line)
		buf.WriteByte('\n')

		if num != e.pos.Line {
			continue
		}

		col := e.pos.Column
		if i == 0 {
			col -= e.origin.Column - 1
		}

		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := strings.Repeat(" ", width+5)
		if col > 0 {
			padding += strings.Repeat(" ", col-1)
		}

		buf.WriteString(padding + "^\n")
	}

	return buf.String()
}
