package resolver

import (
	"github.com/odvcencio/modelicals/pkg/reference"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

// importCandidates scans classDef's own import_clause elements and produces
// the candidates each one contributes toward resolving symbols. Only one
// form matches per clause. documentPath is the document classDef (and
// therefore any import_clause found under it) lives in, needed to build
// the direct-alias candidate below.
func importCandidates(classDef syntax.Node, symbols reference.Path, kind reference.Kind, documentPath string) []candidate {
	if len(symbols) == 0 {
		return nil
	}
	var out []candidate
	for _, list := range classElementLists(classDef) {
		for _, child := range syntax.Children(list) {
			if child.Kind() != syntax.KindImportClause {
				continue
			}
			if cand, ok := importCandidate(child, symbols, kind, documentPath); ok {
				out = append(out, cand)
			}
		}
	}
	return out
}

func importCandidate(clause syntax.Node, symbols reference.Path, kind reference.Kind, documentPath string) (candidate, bool) {
	qualifier := importQualifierPath(clause)
	if len(qualifier) == 0 {
		return candidate{}, false
	}

	if clause.ChildByFieldName(syntax.FieldWildcard) != nil {
		path := append(append(reference.Path{}, qualifier...), symbols...)
		return absCandidate(reference.NewAbsolute(path, kind)), true
	}

	if aliasNode := clause.ChildByFieldName(syntax.FieldAlias); aliasNode != nil {
		if symbols[0] != aliasNode.Text() {
			return candidate{}, false
		}
		// A bare reference to the alias itself is a use of the alias as a
		// declaration site: it resolves to the import clause's alias
		// identifier, not to the aliased class's own declaration. A
		// qualified use (z.D) still walks through to the real target, since
		// only the alias component itself is being named as "z".
		if len(symbols) == 1 && kind == reference.KindClass {
			resolved := reference.NewResolved(documentPath, aliasNode, reference.Path{aliasNode.Text()}, reference.KindClass)
			return resolvedCandidate(resolved), true
		}
		path := append(append(reference.Path{}, qualifier...), symbols[1:]...)
		return absCandidate(reference.NewAbsolute(path, kind)), true
	}

	if importsNode := clause.ChildByFieldName(syntax.FieldImports); importsNode != nil {
		names := syntax.NameIdentifiers(importsNode)
		for _, n := range names {
			if n.Text() == symbols[0] {
				path := append(append(reference.Path{}, qualifier...), symbols...)
				return absCandidate(reference.NewAbsolute(path, kind)), true
			}
		}
		return candidate{}, false
	}

	// Plain import: A.B.C, matches when its last component equals symbols[0].
	if qualifier[len(qualifier)-1] != symbols[0] {
		return candidate{}, false
	}
	path := append(append(reference.Path{}, qualifier...), symbols[1:]...)
	return absCandidate(reference.NewAbsolute(path, kind)), true
}

// importQualifierPath extracts the dotted base path an import_clause names
// through its "qualifier" field.
func importQualifierPath(clause syntax.Node) reference.Path {
	nameNode := clause.ChildByFieldName(syntax.FieldQualifier)
	if nameNode == nil {
		return nil
	}
	return textsOf(syntax.NameIdentifiers(nameNode))
}
