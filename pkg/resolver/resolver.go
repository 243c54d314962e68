// Package resolver implements the name resolver, the heart of the system.
// It walks absolute symbol paths against loaded libraries, promotes
// relative references to absolute candidates by climbing a syntax tree's
// ancestor chain, and performs the variable-to-class promotion Modelica's
// typed member access requires.
//
// The walk generalizes a familiar shape — walk outward through enclosing
// scopes, returning the first match — to symbol paths, filesystem descent,
// and superclass search all at once.
package resolver

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/odvcencio/modelicals/pkg/project"
	"github.com/odvcencio/modelicals/pkg/reference"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

// Resolution selects which kind of result resolveReference should produce.
// Only Declaration is implemented; Definition exists solely to fail with a
// distinct, explicit error.
type Resolution int

const (
	Declaration Resolution = iota
	Definition
)

// Resolver resolves references against a project's loaded libraries.
type Resolver struct {
	project *project.Project
}

// New returns a Resolver backed by proj.
func New(proj *project.Project) *Resolver {
	return &Resolver{project: proj}
}

// ResolveReference is the resolver's single public operation.
func (r *Resolver) ResolveReference(ref reference.Reference, resolution Resolution) (*reference.Resolved, error) {
	if resolution == Definition {
		return nil, unsupportedf("definition resolution is not implemented")
	}
	switch v := ref.(type) {
	case reference.Absolute:
		return r.resolveAbsolute(v)
	case reference.Relative:
		return r.resolveRelative(v)
	default:
		return nil, invariantf("unrecognized reference type %T", ref)
	}
}

// walkState is the absolute walk's per-step carrier. It is richer than
// reference.Resolved because a package directory sitting between a library
// root and a nested file need not have its own package.mo — such a step
// advances the walk's filesystem context (dir) without landing on a
// declared class, and is marked virtual so member and superclass search
// are skipped for it.
type walkState struct {
	documentPath string
	node         syntax.Node
	dir          string
	path         reference.Path
	kind         reference.Kind
	virtual      bool
}

func (s walkState) resolved() reference.Resolved {
	return reference.NewResolved(s.documentPath, s.node, s.path, s.kind)
}

// resolveAbsolute implements the absolute-reference walk: resolve the
// leading symbol against a loaded library's root class, then advance one
// symbol at a time from there.
func (r *Resolver) resolveAbsolute(abs reference.Absolute) (*reference.Resolved, error) {
	if len(abs.Path) == 0 {
		return nil, invariantf("absolute reference carries an empty symbol path")
	}

	libName := abs.Path[0]
	lib := r.findLibrary(libName)
	if lib == nil {
		return nil, notFoundf("no library named %q", libName)
	}

	rootDoc, ok, err := r.project.GetDocument(lib.RootPackageFile(), true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFoundf("library %q has no root package.mo", libName)
		}
		return nil, internalf(err, "loading root package.mo of %q", libName)
	}
	if !ok {
		return nil, notFoundf("library %q has no loaded root package.mo", libName)
	}
	classNode := topLevelClassDefinitionNamed(rootDoc.RootNode(), libName)
	if classNode == nil {
		return nil, notFoundf("root package.mo of %q does not declare a class named %q", libName, libName)
	}

	state := walkState{
		documentPath: rootDoc.Path(),
		node:         classNode,
		dir:          filepath.Dir(rootDoc.Path()),
		path:         reference.Path{libName},
		kind:         reference.KindClass,
	}

	for i := 1; i < len(abs.Path); i++ {
		next, err := r.step(state, abs.Path[i], abs.Kind)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, notFoundf("no member %q on %s", abs.Path[i], state.path)
		}
		state = *next
	}
	if state.virtual {
		return nil, notFoundf("%s names a package directory but no class declares it", state.path)
	}
	result := state.resolved()
	return &result, nil
}

// step advances the walk by one symbol: variable-to-class promotion, then
// the on-disk subfile forms, then a bare package directory, then a member
// of the current class, then its superclasses. A nil, nil return means "no
// match at any step" (not-found); a non-nil error means an internal or
// invariant failure occurred.
func (r *Resolver) step(state walkState, sym string, overallKind reference.Kind) (*walkState, error) {
	if !state.virtual && state.kind == reference.KindVariable {
		promoted, err := r.typeLookup(state.resolved())
		if err != nil {
			return nil, err
		}
		doc, ok, err := r.project.GetDocument(promoted.DocumentPath, true)
		if err != nil {
			return nil, internalf(err, "reloading document %s mid-walk", promoted.DocumentPath)
		}
		if !ok {
			return nil, internalf(nil, "document %s vanished mid-walk", promoted.DocumentPath)
		}
		state = walkState{
			documentPath: promoted.DocumentPath,
			node:         promoted.Node,
			dir:          filepath.Dir(doc.Path()),
			path:         state.path,
			kind:         reference.KindClass,
		}
	}

	if next, err := r.subfileStep(state, sym); err != nil {
		return nil, err
	} else if next != nil {
		return next, nil
	}

	if dirPath := filepath.Join(state.dir, sym); isDir(dirPath) {
		return &walkState{
			documentPath: state.documentPath,
			node:         state.node,
			dir:          dirPath,
			path:         state.path.Append(sym),
			kind:         reference.KindClass,
			virtual:      true,
		}, nil
	}

	if state.virtual {
		return nil, nil
	}

	if node, isClass, found := findMember(state.node, sym); found {
		kind := reference.KindVariable
		if isClass {
			kind = reference.KindClass
		}
		next := walkState{documentPath: state.documentPath, node: node, dir: state.dir, path: state.path.Append(sym), kind: kind}
		return &next, nil
	}

	// Superclasses are only searched for a non-class lookup, so a variable
	// declared solely in a superclass of a member's own type is never found
	// (member type resolution never reaches here) — a known blind spot,
	// preserved rather than fixed since it is load-bearing for the resolution
	// order documented above.
	if overallKind != reference.KindClass {
		resolved, err := r.searchSuperclasses(state.resolved(), sym, overallKind)
		if err != nil || resolved == nil {
			return nil, err
		}
		next := walkState{documentPath: resolved.DocumentPath, node: resolved.Node, dir: filepath.Dir(resolved.DocumentPath), path: resolved.Path, kind: resolved.Kind}
		return &next, nil
	}
	return nil, nil
}

// subfileStep tries the two on-disk forms a nested class may take:
// <dir>/sym.mo and <dir>/sym/package.mo, single-file form first. Either way
// the next step's filesystem context is <dir>/sym, so a class stored in
// sym.mo never picks up sym.mo's sibling files as its own members.
func (r *Resolver) subfileStep(state walkState, sym string) (*walkState, error) {
	for _, candidate := range []string{filepath.Join(state.dir, sym+".mo"), filepath.Join(state.dir, sym, "package.mo")} {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		subDoc, _, err := r.project.AddDocument(candidate)
		if err != nil {
			return nil, internalf(err, "loading %s", candidate)
		}
		classNode := topLevelClassDefinitionNamed(subDoc.RootNode(), sym)
		if classNode == nil {
			continue
		}
		next := walkState{
			documentPath: subDoc.Path(),
			node:         classNode,
			dir:          filepath.Join(state.dir, sym),
			path:         state.path.Append(sym),
			kind:         reference.KindClass,
		}
		return &next, nil
	}
	return nil, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// searchSuperclasses searches every extends_clause of current.Node,
// resolving each superclass through the full resolver and recursing into
// its members and its own superclasses in turn.
func (r *Resolver) searchSuperclasses(current reference.Resolved, sym string, overallKind reference.Kind) (*reference.Resolved, error) {
	for _, extendsNode := range extendsClauses(current.Node) {
		superRes, err := r.resolveExtendsTarget(current, extendsNode)
		if err != nil {
			// Per-candidate failures (not-found, internal, or otherwise) are
			// swallowed here: a superclass that can't be resolved simply
			// contributes no members, it doesn't fail the whole lookup.
			continue
		}
		if superRes == nil {
			continue
		}

		if node, isClass, found := findMember(superRes.Node, sym); found {
			kind := reference.KindVariable
			if isClass {
				kind = reference.KindClass
			}
			resolved := reference.NewResolved(superRes.DocumentPath, node, current.Path.Append(sym), kind)
			return &resolved, nil
		}

		if overallKind != reference.KindClass {
			if found, err := r.searchSuperclasses(*superRes, sym, overallKind); err == nil && found != nil {
				return found, nil
			}
		}
	}
	return nil, nil
}

func (r *Resolver) resolveExtendsTarget(current reference.Resolved, extendsNode syntax.Node) (*reference.Resolved, error) {
	path, global, ok := syntax.TypeSpecifierPath(extendsNode)
	if !ok {
		return nil, notFoundf("extends clause carries no type specifier")
	}
	symbols := textsOf(path)
	if global {
		return r.resolveAbsolute(reference.NewAbsolute(symbols, reference.KindClass))
	}
	rel := reference.NewRelative(symbols, reference.KindClass, current.DocumentPath, extendsNode)
	return r.resolveRelative(rel)
}

// findLibrary returns the loaded library named name, or nil. Library names
// are expected to be unique; if more than one library shares a name, the
// first one loaded wins.
func (r *Resolver) findLibrary(name string) *project.Library {
	for _, lib := range r.project.Libraries() {
		if lib.Name() == name {
			return lib
		}
	}
	return nil
}
