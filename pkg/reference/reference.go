// Package reference defines the value types the resolver operates on:
// unresolved relative and absolute symbol references, and resolved
// references that pin a symbol path to a declaring syntax node.
package reference

import (
	"fmt"
	"strings"

	"github.com/odvcencio/modelicals/pkg/syntax"
)

// Reference is satisfied by both unresolved reference shapes; the resolver
// dispatches on which one it was handed.
type Reference interface {
	IsAbsolute() bool
}

// Kind classifies what a reference names, used to prune lookup (superclasses
// are only followed when searching for a variable, never a class).
type Kind int

const (
	KindUnknown Kind = iota
	KindClass
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Path is a non-empty ordered sequence of identifiers, compared structurally.
type Path []string

// Equal reports whether p and other name the same sequence of identifiers.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string { return strings.Join(p, ".") }

// Append returns a new path with suffix appended, without mutating p.
func (p Path) Append(suffix ...string) Path {
	out := make(Path, 0, len(p)+len(suffix))
	out = append(out, p...)
	out = append(out, suffix...)
	return out
}

// checkPath panics with an invariant-violated-shaped message if path is
// empty. Construction of every reference variant below rejects empty
// paths.
func checkPath(path Path) {
	if len(path) == 0 {
		panic("reference: symbol path must be non-empty")
	}
}

// Absolute is an unresolved absolute reference: a symbol path interpreted
// starting from the set of known library roots.
type Absolute struct {
	Path Path
	Kind Kind
}

// NewAbsolute constructs an Absolute reference. It panics if path is empty
// (an invariant-violated condition).
func NewAbsolute(path Path, kind Kind) Absolute {
	checkPath(path)
	return Absolute{Path: path, Kind: kind}
}

func (a Absolute) IsAbsolute() bool { return true }

func (a Absolute) String() string {
	return fmt.Sprintf("absolute(%s, kind=%s)", a.Path, a.Kind)
}

// Equal reports structural equality.
func (a Absolute) Equal(other Absolute) bool {
	return a.Kind == other.Kind && a.Path.Equal(other.Path)
}

// Relative is an unresolved relative reference: a symbol path to be
// interpreted starting from the lexical scope enclosing an anchor node in a
// specific document.
type Relative struct {
	Path Path
	Kind Kind
	// DocumentPath identifies the owning document by filesystem path. The
	// resolver looks the live *document.Document up through the project
	// rather than this type holding a pointer to it, keeping Relative a
	// plain, comparable value and avoiding an import cycle with pkg/document.
	DocumentPath string
	// Anchor is the syntax node the reference is anchored at: it must
	// belong to DocumentPath's current tree.
	Anchor syntax.Node
}

// NewRelative constructs a Relative reference. It panics if path is empty or
// anchor is nil (invariant-violated conditions).
func NewRelative(path Path, kind Kind, documentPath string, anchor syntax.Node) Relative {
	checkPath(path)
	if anchor == nil {
		panic("reference: relative reference requires a non-nil anchor node")
	}
	return Relative{Path: path, Kind: kind, DocumentPath: documentPath, Anchor: anchor}
}

func (r Relative) IsAbsolute() bool { return false }

func (r Relative) String() string {
	return fmt.Sprintf("relative(%s, kind=%s, doc=%s)", r.Path, r.Kind, r.DocumentPath)
}

// Resolved is a reference that has been walked all the way to its
// declaration: a document, the syntax node that declares it, the absolute
// path that was resolved, and a kind that is never KindUnknown.
type Resolved struct {
	DocumentPath string
	Node         syntax.Node
	Path         Path
	Kind         Kind
}

// NewResolved constructs a Resolved reference, enforcing its invariants:
// non-empty path, non-nil node, and a concrete kind.
func NewResolved(documentPath string, node syntax.Node, path Path, kind Kind) Resolved {
	checkPath(path)
	if node == nil {
		panic("reference: resolved reference requires a non-nil declaring node")
	}
	if kind == KindUnknown {
		panic("reference: resolved reference requires a concrete kind")
	}
	return Resolved{DocumentPath: documentPath, Node: node, Path: path, Kind: kind}
}

func (r Resolved) String() string {
	return fmt.Sprintf("resolved(%s, kind=%s, doc=%s)", r.Path, r.Kind, r.DocumentPath)
}

// Equal reports structural equality: same document, same path, same kind,
// and the same declaring node identity.
func (r Resolved) Equal(other Resolved) bool {
	return r.DocumentPath == other.DocumentPath &&
		r.Kind == other.Kind &&
		r.Path.Equal(other.Path) &&
		r.Node == other.Node
}
