// Package lang parses the directive markers embedded in a text document.
//
// A directive is a pair of HTML comments enclosing a region of the document:
//
//	<!-- rdmx [namespace:]action [key:value ...] -->
//	...content...
//	<!-- rdmx /[namespace:]action -->
//
// Either marker may use the three-dash spelling <!--- rdmx ... --->. A marker
// owns at most one newline following its closing delimiter.
//
// # Grammar
//
// The text inside a marker is tokenized by [Lex] and parsed by [ParseHeader]:
//
//	Directive   → '/'? Action Param*
//	Action      → ':' Identifier | Identifier ':' Identifier
//	Param       → Identifier ':' Value
//	Value       → String | Integer | Float | Bool | Identifier | Variable
//
// An action written without a namespace belongs to [BuiltinNamespace].
// Whitespace and commas separate tokens and are otherwise ignored. Strings are
// double or single quoted, and bare identifiers used as values are strings.
// Variables are written $name and are resolved by the renderer.
//
// # Stages
//
// [Scan] splits a document into a flat sequence of [Chunk] values, tracking
// the line and column of each. [Build] matches block starts with block ends
// into a tree of [Node] values. [Parse] does both.
//
// Every error is an [*Error] derived from one of the sentinel kinds declared
// in this package, located in its document and carrying the raw source of the
// offending marker.
package lang
