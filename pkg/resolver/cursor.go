package resolver

import (
	"github.com/odvcencio/modelicals/pkg/document"
	"github.com/odvcencio/modelicals/pkg/reference"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

// IdentifyReference takes a document and a cursor position and produces
// the unresolved reference (if any) that a findDeclaration request at that
// position should resolve.
func IdentifyReference(doc *document.Document, pos syntax.Position) (reference.Reference, bool) {
	root := doc.RootNode()
	if root == nil {
		return nil, false
	}
	offset := doc.PositionToOffset(pos)

	if nameNode := deepestContaining(root, offset, syntax.KindName); nameNode != nil {
		target := syntax.Node(nameNode)
		if parent := nameNode.Parent(); parent != nil && parent.Kind() == syntax.KindTypeSpecifier {
			target = parent
		}

		var ids []syntax.Node
		global := false
		if target.Kind() == syntax.KindTypeSpecifier {
			path, g, ok := syntax.TypeSpecifierPath(target)
			if !ok {
				return nil, false
			}
			ids, global = path, g
		} else {
			ids = syntax.NameIdentifiers(nameNode)
		}

		kept := identifiersUpTo(ids, offset)
		if len(kept) == 0 {
			return nil, false
		}
		symbols := textsOf(kept)
		if global {
			return reference.NewAbsolute(symbols, reference.KindClass), true
		}
		return reference.NewRelative(symbols, reference.KindClass, doc.Path(), kept[len(kept)-1]), true
	}

	if compRef := deepestContaining(root, offset, syntax.KindComponentReference); compRef != nil {
		kept := identifiersUpTo(syntax.NameIdentifiers(compRef), offset)
		if len(kept) == 0 {
			return nil, false
		}
		return reference.NewRelative(textsOf(kept), reference.KindVariable, doc.Path(), kept[len(kept)-1]), true
	}

	if ident := deepestContaining(root, offset, syntax.KindIdent); ident != nil {
		return reference.NewRelative(reference.Path{ident.Text()}, reference.KindUnknown, doc.Path(), ident), true
	}

	return nil, false
}

// identifiersUpTo drops every identifier whose start position is strictly
// after offset, so that a cursor on the second dot of A.B|.C resolves A.B,
// not A.B.C. An identifier starting exactly at offset is kept.
func identifiersUpTo(ids []syntax.Node, offset int) []syntax.Node {
	var kept []syntax.Node
	for _, id := range ids {
		if id.StartByte() > offset {
			break
		}
		kept = append(kept, id)
	}
	return kept
}

// deepestContaining returns the innermost node of the given kind whose byte
// span contains offset, or nil. Descent is pruned to subtrees that contain
// offset, so this is linear in tree depth, not tree size.
func deepestContaining(root syntax.Node, offset int, kind string) syntax.Node {
	var best syntax.Node
	var walk func(n syntax.Node)
	walk = func(n syntax.Node) {
		if n == nil || offset < n.StartByte() || offset > n.EndByte() {
			return
		}
		if n.Kind() == kind {
			best = n
		}
		for _, c := range syntax.Children(n) {
			walk(c)
		}
	}
	walk(root)
	return best
}
