package lang

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Position identifies a character in a document.
//
// Line and Column are 1-based and count characters (runes), not bytes.
// Offset is the 0-based byte offset of the character.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Start is the position of the first character of any document.
var Start = Position{Offset: 0, Line: 1, Column: 1}

// IsValid reports whether p refers to a location in a document.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns "line:column", or "-" for an invalid position.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}

	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Before reports whether p precedes q in (line, column) order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}

	return p.Column < q.Column
}

// shift translates a position reported by the tag lexer, which is relative to
// the start of the lexed text, into an absolute document position given that
// the lexed text begins at p.
func (p Position) shift(rel lexer.Position) Position {
	abs := Position{
		Offset: p.Offset + rel.Offset,
		Line:   p.Line + rel.Line - 1,
		Column: rel.Column,
	}

	if rel.Line == 1 {
		abs.Column = p.Column + rel.Column - 1
	}

	return abs
}
