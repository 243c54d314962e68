package project

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/odvcencio/modelicals/pkg/document"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

// ErrWithinDeclaresLibrary is returned by AddDocument when a file outside
// every known library root carries a non-empty within clause: there is no
// way to root a standalone library for it, since its own claimed package
// path says it belongs to something else.
var ErrWithinDeclaresLibrary = errors.New("project: file outside any library declares a non-empty within clause")

// Project is the top-level container: a set of libraries, each owning the
// documents loaded from beneath its root, kept disjoint by path
// containment.
type Project struct {
	parser    document.Parser
	libraries []*Library
}

// New constructs an empty project that parses documents with parser.
func New(parser document.Parser) *Project {
	return &Project{parser: parser}
}

// Libraries returns every library currently loaded, in load order.
func (p *Project) Libraries() []*Library {
	out := make([]*Library, len(p.libraries))
	copy(out, p.libraries)
	return out
}

// AddLibrary walks root, loads every ".mo" file beneath it into a new
// Library, and registers it with the project.
func (p *Project) AddLibrary(root string, isWorkspace bool) (*Library, error) {
	root = filepath.Clean(root)
	name := filepath.Base(root)
	lib, err := loadTree(p.parser, name, root, isWorkspace)
	if err != nil {
		return nil, err
	}
	p.libraries = append(p.libraries, lib)
	return lib, nil
}

// libraryFor returns the most specific already-loaded library whose root
// contains path, or nil if none does. When library roots are nested (a
// workspace library containing a vendored sub-library, say) the deepest
// root wins, matching the filesystem-first tie-break the resolver itself
// uses elsewhere.
func (p *Project) libraryFor(path string) *Library {
	var best *Library
	for _, lib := range p.libraries {
		if !lib.contains(path) {
			continue
		}
		if best == nil || len(lib.root) > len(best.root) {
			best = lib
		}
	}
	return best
}

// lookupDocument is the pure cache lookup GetDocument and AddDocument both
// build on: it never touches disk, so AddDocument can use it for its own
// already-loaded check without recursing back into a load attempt.
func (p *Project) lookupDocument(path string) (*document.Document, bool) {
	path = filepath.Clean(path)
	for _, lib := range p.libraries {
		if doc := lib.Document(path); doc != nil {
			return doc, true
		}
	}
	return nil, false
}

// GetDocument returns the document loaded at path, searching every
// library. A cache miss falls back to AddDocument unless load is
// explicitly false — a sibling ".mo" file the editor never opened is still
// resolvable and still shows up in an outline request, not just the files
// a didOpen has touched.
func (p *Project) GetDocument(path string, load bool) (*document.Document, bool, error) {
	if doc, ok := p.lookupDocument(path); ok {
		return doc, true, nil
	}
	if !load {
		return nil, false, nil
	}
	doc, added, err := p.AddDocument(path)
	if err != nil || !added {
		return nil, false, err
	}
	return doc, true, nil
}

// AddDocument loads the file at path and inserts it into the project.
//
// If path already has a loaded document, that document is returned
// unchanged and added is false: a no-op with a negative acknowledgement.
//
// Otherwise, if path lies under an existing library's root, it is loaded
// into that library. If it lies under none, its within clause is
// consulted: an empty (or absent) within clause lets it become the sole
// document of a new standalone library rooted at its containing directory;
// a non-empty one is rejected with ErrWithinDeclaresLibrary, since the file
// claims membership in a library this project has no root for.
func (p *Project) AddDocument(path string) (doc *document.Document, added bool, err error) {
	path = filepath.Clean(path)
	if existing, ok := p.lookupDocument(path); ok {
		return existing, false, nil
	}

	if lib := p.libraryFor(path); lib != nil {
		doc, err := document.Load(p.parser, path, uriFromPath(path), lib.Name(), lib.Root())
		if err != nil {
			return nil, false, err
		}
		lib.put(doc)
		return doc, true, nil
	}

	root := filepath.Dir(path)
	name := filepath.Base(root)
	doc, err = document.Load(p.parser, path, uriFromPath(path), name, root)
	if err != nil {
		return nil, false, err
	}
	if withinPath, found := syntax.WithinClausePath(doc.RootNode()); found && len(withinPath) > 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrWithinDeclaresLibrary, path)
	}

	lib := NewLibrary(name, root, false)
	lib.put(doc)
	p.libraries = append(p.libraries, lib)
	return doc, true, nil
}

// UpdateDocument replaces the full text of an already-loaded document.
// It returns false if path has no loaded document.
func (p *Project) UpdateDocument(path string, text []byte) (bool, error) {
	doc, ok := p.lookupDocument(path)
	if !ok {
		return false, nil
	}
	if err := doc.SetText(text); err != nil {
		return true, err
	}
	return true, nil
}

// ApplyDocumentEdit incrementally edits an already-loaded document.
// It returns false if path has no loaded document.
func (p *Project) ApplyDocumentEdit(path string, start, end syntax.Position, replacement string) (bool, error) {
	doc, ok := p.lookupDocument(path)
	if !ok {
		return false, nil
	}
	if err := doc.ApplyEdit(start, end, replacement); err != nil {
		return true, err
	}
	return true, nil
}

// RemoveDocument drops the document at path from whichever library holds
// it. It reports whether a document was actually removed.
func (p *Project) RemoveDocument(path string) bool {
	path = filepath.Clean(path)
	for _, lib := range p.libraries {
		if lib.remove(path) {
			slog.Debug("project: removed document", "path", path, "library", lib.Name())
			return true
		}
	}
	return false
}
