package document

import "github.com/odvcencio/modelicals/pkg/syntax"

// Tree is the parser-owned handle a Document holds between edits. It is
// opaque beyond exposing its root node; pkg/langtree's tree-sitter tree and
// pkg/synfixture's fixture trees both satisfy it.
type Tree interface {
	RootNode() syntax.Node
}

// Edit describes a single text replacement in byte-offset and row/column
// terms, the shape the parser's incremental-edit API consumes.
type Edit struct {
	StartByte      int
	OldEndByte     int
	NewEndByte     int
	StartPosition  syntax.Position
	OldEndPosition syntax.Position
	NewEndPosition syntax.Position
}

// Parser is the narrow interface Document depends on: it wraps the
// concrete parser's incremental-edit and reparse APIs behind an interface
// so the core can be tested with a stub. pkg/langtree implements this
// against github.com/smacker/go-tree-sitter; tests implement it against
// pkg/synfixture trees.
type Parser interface {
	// Parse performs a full parse of src.
	Parse(src []byte) (Tree, error)
	// ParseIncremental rebases old against edit and reparses using it as a
	// hint. oldSrc is the buffer old was parsed from; src is the buffer
	// after the edit has already been applied.
	ParseIncremental(src, oldSrc []byte, old Tree, edit Edit) (Tree, error)
}
