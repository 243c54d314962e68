// Package document implements the parsed-text-buffer model: a Document
// owns a text buffer, a syntax tree kept in sync with it, its
// filesystem/URI identity, and the package path implied by its location
// under a library root.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/modelicals/pkg/reference"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

// Document owns a text buffer, a syntax tree synchronized with that buffer,
// an identity, a library back-reference, and a derived package path.
//
// Document stores its owning library only as a name and root path (plain
// strings) rather than a pointer to project.Library, breaking what would
// otherwise be an import cycle between pkg/document and pkg/project.
type Document struct {
	path        string
	uri         string
	libraryName string
	libraryRoot string

	parser Parser
	text   []byte
	tree   Tree
	starts []int
	version int
}

// Load reads path from disk and parses it with parser, binding the
// resulting Document to the named library.
func Load(parser Parser, path, uri, libraryName, libraryRoot string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: load %s: %w", path, err)
	}
	return New(parser, path, uri, libraryName, libraryRoot, data)
}

// New constructs a Document from already-known text (e.g. from an editor's
// didOpen notification) and performs the initial parse.
func New(parser Parser, path, uri, libraryName, libraryRoot string, text []byte) (*Document, error) {
	tree, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("document: parse %s: %w", path, err)
	}
	return &Document{
		path:        path,
		uri:         uri,
		libraryName: libraryName,
		libraryRoot: libraryRoot,
		parser:      parser,
		text:        text,
		tree:        tree,
		starts:      lineStarts(text),
		version:     1,
	}, nil
}

func (d *Document) Path() string        { return d.path }
func (d *Document) URI() string         { return d.uri }
func (d *Document) LibraryName() string { return d.libraryName }
func (d *Document) LibraryRoot() string { return d.libraryRoot }
func (d *Document) Version() int        { return d.version }
func (d *Document) Text() string        { return string(d.text) }
func (d *Document) LineCount() int      { return len(d.starts) }

// Tree returns the current syntax tree. Every node reachable from it is
// invalidated the moment a subsequent update returns.
func (d *Document) Tree() Tree { return d.tree }

// RootNode returns the root of the current syntax tree, or nil if the tree
// is empty.
func (d *Document) RootNode() syntax.Node {
	if d.tree == nil {
		return nil
	}
	return d.tree.RootNode()
}

// PositionToOffset converts a zero-based (row, column) position in the
// current buffer to a byte offset.
func (d *Document) PositionToOffset(pos syntax.Position) int {
	return offsetAt(d.text, d.starts, pos)
}

// OffsetToPosition converts a byte offset in the current buffer to a
// zero-based (row, column) position.
func (d *Document) OffsetToPosition(offset int) syntax.Position {
	return positionAt(d.starts, offset)
}

// SetText replaces the buffer wholesale and reparses from scratch.
func (d *Document) SetText(text []byte) error {
	tree, err := d.parser.Parse(text)
	if err != nil {
		return fmt.Errorf("document: reparse %s: %w", d.path, err)
	}
	d.text = text
	d.tree = tree
	d.starts = lineStarts(text)
	d.version++
	return nil
}

// ApplyEdit performs an incremental update: it computes byte offsets for the
// half-open [start,end) range from the current buffer, splices in
// replacement, rebases the old tree via the parser's incremental-edit API,
// and reparses. The tree and buffer are guaranteed in sync once this
// returns (whether it succeeds or the parser falls back internally); on
// parse failure the Document is left unchanged and an error is returned.
func (d *Document) ApplyEdit(start, end syntax.Position, replacement string) error {
	oldText := d.text
	oldTree := d.tree

	startByte := offsetAt(oldText, d.starts, start)
	oldEndByte := offsetAt(oldText, d.starts, end)
	if oldEndByte < startByte {
		oldEndByte = startByte
	}

	newText := make([]byte, 0, len(oldText)-(oldEndByte-startByte)+len(replacement))
	newText = append(newText, oldText[:startByte]...)
	newText = append(newText, replacement...)
	newText = append(newText, oldText[oldEndByte:]...)

	newEndByte := startByte + len(replacement)
	newStarts := lineStarts(newText)

	edit := Edit{
		StartByte:      startByte,
		OldEndByte:     oldEndByte,
		NewEndByte:     newEndByte,
		StartPosition:  start,
		OldEndPosition: end,
		NewEndPosition: positionAt(newStarts, newEndByte),
	}

	tree, err := d.parser.ParseIncremental(newText, oldText, oldTree, edit)
	if err != nil {
		return fmt.Errorf("document: incremental reparse %s: %w", d.path, err)
	}

	d.text = newText
	d.tree = tree
	d.starts = newStarts
	d.version++
	return nil
}

// PackagePath returns the fully-qualified package path this document's
// filesystem location implies: a file <libRoot>/A/B/C.mo yields
// [libName, A, B, C]; a file named package.mo drops its own filename, so
// <libRoot>/A/B/package.mo yields [libName, A, B].
func (d *Document) PackagePath() reference.Path {
	return packagePathFor(d.path, d.libraryName, d.libraryRoot)
}

// WithinPath returns the package path with its last component dropped: the
// enclosing package of the top-level class this file defines.
func (d *Document) WithinPath() reference.Path {
	pkg := d.PackagePath()
	if len(pkg) == 0 {
		return nil
	}
	return pkg[:len(pkg)-1]
}

func packagePathFor(path, libraryName, libraryRoot string) reference.Path {
	rel, err := filepath.Rel(libraryRoot, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, ".mo")

	var parts []string
	for _, p := range strings.Split(rel, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 && parts[len(parts)-1] == "package" {
		parts = parts[:len(parts)-1]
	}

	out := make(reference.Path, 0, len(parts)+1)
	out = append(out, libraryName)
	out = append(out, parts...)
	return out
}
