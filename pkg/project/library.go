// Package project implements the container holding loaded libraries and
// documents. A Library owns a root directory and every Document that lives
// under it; a Project owns an ordered list of libraries and enforces that
// a document belongs to at most one of them.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/modelicals/pkg/document"
)

// Library owns a root directory and the documents loaded from beneath it.
// Its name is the basename of its root directory, and that name is also the
// first component of every contained document's package path.
type Library struct {
	name        string
	root        string
	isWorkspace bool
	documents   map[string]*document.Document
}

// NewLibrary constructs an empty library rooted at root. name is normally
// filepath.Base(root); a separate parameter is accepted so a
// non-directory-shaped standalone library (see Project.AddDocument) can name
// itself after its containing directory explicitly.
func NewLibrary(name, root string, isWorkspace bool) *Library {
	return &Library{
		name:        name,
		root:        filepath.Clean(root),
		isWorkspace: isWorkspace,
		documents:   make(map[string]*document.Document),
	}
}

func (l *Library) Name() string      { return l.name }
func (l *Library) Root() string      { return l.root }
func (l *Library) IsWorkspace() bool { return l.isWorkspace }

// Document returns the document at path, or nil if none is loaded.
func (l *Library) Document(path string) *document.Document {
	return l.documents[filepath.Clean(path)]
}

// Documents returns every document loaded in this library; ordering is
// not observable.
func (l *Library) Documents() []*document.Document {
	out := make([]*document.Document, 0, len(l.documents))
	for _, d := range l.documents {
		out = append(out, d)
	}
	return out
}

// contains reports whether path lies on disk under l's root.
func (l *Library) contains(path string) bool {
	rel, err := filepath.Rel(l.root, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != ".."
}

func (l *Library) put(doc *document.Document) {
	l.documents[filepath.Clean(doc.Path())] = doc
}

func (l *Library) remove(path string) bool {
	key := filepath.Clean(path)
	if _, ok := l.documents[key]; !ok {
		return false
	}
	delete(l.documents, key)
	return true
}

// RootPackageFile returns the path of this library's root package file,
// whose top-level class-definition must declare an identifier equal to the
// library's name.
func (l *Library) RootPackageFile() string {
	return filepath.Join(l.root, "package.mo")
}

// loadTree walks root collecting every ".mo" file, loading each through
// parser and binding it to a freshly-constructed Library.
func loadTree(parser document.Parser, name, root string, isWorkspace bool) (*Library, error) {
	lib := NewLibrary(name, root, isWorkspace)

	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".mo") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("project: walk library %s: %w", root, err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		doc, err := document.Load(parser, path, uriFromPath(path), name, root)
		if err != nil {
			return nil, fmt.Errorf("project: load %s: %w", path, err)
		}
		lib.put(doc)
	}
	return lib, nil
}

func uriFromPath(path string) string {
	return "file://" + filepath.ToSlash(path)
}
