package lang

import (
	"log/slog"
)

// Document is the block tree of one source document.
type Document struct {
	File  string
	Nodes []Node
}

// Source returns the original text of the document.
func (doc *Document) Source() string { return Source(doc.Nodes) }

// Parse scans and builds the block tree of a document.
func Parse(file, input string) (*Document, error) {
	chunks, err := Scan(file, input)
	if err != nil {
		return nil, err
	}

	nodes, err := Build(file, chunks)
	if err != nil {
		return nil, err
	}

	return &Document{File: file, Nodes: nodes}, nil
}

// Build matches each block start in chunks with its block end and returns the
// resulting tree.
//
// A block end closes the nearest open block start with the same namespace and
// action at the same depth. Any other block end is reported as
// [ErrNoBlockStart], and a block start left open at the end of input as
// [ErrNoBlockEnd].
func Build(file string, chunks []Chunk) ([]Node, error) {
	// The top level expects no closer, so it only ends with the input.
	nodes, _, _, err := build(file, chunks, nil)

	return nodes, err
}

// build consumes chunks until it finds the block end matching open. It
// returns the nodes consumed, the chunks following that block end, and the
// block end itself, or a nil closer if the input ran out first.
func build(
	file string,
	chunks []Chunk,
	open *Header,
) (nodes []Node, rest []Chunk, closer *Chunk, err error) {
	for len(chunks) > 0 {
		c := chunks[0]
		chunks = chunks[1:]

		switch c.Kind {
		case ChunkText:
			nodes = append(nodes, &Text{Content: c.Text, Pos: c.Pos})

		case ChunkStart:
			children, remain, end, err := build(file, chunks, c.Header)
			if err != nil {
				return nil, nil, nil, err
			}

			if end == nil {
				return nil, nil, nil, ErrNoBlockEnd.At(file, c.Pos).
					WithSource(c.Text, c.Pos).
					With(slog.String("directive", c.Header.Name()))
			}

			nodes = append(nodes, &Directive{
				Namespace: c.Header.Namespace,
				Action:    c.Header.Action,
				Params:    c.Header.Params,
				RawHeader: c.Text,
				RawFooter: end.Text,
				Children:  children,
				File:      file,
				Pos:       c.Pos,
				EndPos:    end.Pos,
			})

			chunks = remain

		case ChunkEnd:
			if c.Header.Closes(open) {
				return nodes, chunks, &c, nil
			}

			return nil, nil, nil, ErrNoBlockStart.At(file, c.Pos).
				WithSource(c.Text, c.Pos).
				With(slog.String("directive", c.Header.Name()))
		}
	}

	return nodes, nil, nil, nil
}
