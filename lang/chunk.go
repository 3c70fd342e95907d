package lang

// ChunkKind distinguishes the elements of a scanned document.
type ChunkKind int

const (
	// ChunkText is a run of plain text between directives.
	ChunkText ChunkKind = iota

	// ChunkStart is a block start directive.
	ChunkStart

	// ChunkEnd is a block end directive.
	ChunkEnd
)

// String returns a string representation of the chunk kind.
func (k ChunkKind) String() string {
	switch k {
	case ChunkText:
		return "text"
	case ChunkStart:
		return "start"
	case ChunkEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Chunk is an element of the flat sequence produced by [Scan].
//
// Text is the exact source text of the chunk. For directive chunks it equals
// Header.Raw.
type Chunk struct {
	Kind   ChunkKind
	Text   string
	Header *Header
	Pos    Position
}
