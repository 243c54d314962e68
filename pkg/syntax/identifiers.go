package syntax

import "log/slog"

// DeclaredIdentifiers returns the identifier nodes that a declaration node
// introduces into its enclosing scope. Unknown declaration kinds produce the
// empty sequence and are logged, per spec.
func DeclaredIdentifiers(n Node) []Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case KindClassDefinition:
		if id := classDefinitionName(n); id != nil {
			return []Node{id}
		}
		return nil

	case KindComponentClause:
		return componentClauseIdentifiers(n)

	case KindComponentRedeclaration:
		if clause := n.ChildByFieldName(FieldComponentClause); clause != nil {
			return componentClauseIdentifiers(clause)
		}
		if decl := n.ChildByFieldName(FieldDeclaration); decl != nil {
			if id := declarationIdentifier(decl); id != nil {
				return []Node{id}
			}
		}
		return nil

	case KindNamedElement:
		if def := n.ChildByFieldName(FieldClassDefinition); def != nil {
			return DeclaredIdentifiers(def)
		}
		if clause := n.ChildByFieldName(FieldComponentClause); clause != nil {
			return DeclaredIdentifiers(clause)
		}
		return nil

	case KindElementList, KindPublicElementList, KindProtectedElementList,
		KindStoredDefinitions, KindStoredDefinition:
		var out []Node
		for _, child := range NamedChildren(n) {
			out = append(out, DeclaredIdentifiers(child)...)
		}
		return out

	default:
		slog.Debug("syntax: declaredIdentifiers on unknown kind", "kind", n.Kind())
		return nil
	}
}

// componentClauseIdentifiers extracts every declared name in a
// component-clause's declaration list.
func componentClauseIdentifiers(clause Node) []Node {
	list := clause.ChildByFieldName(FieldComponentDeclarations)
	if list == nil {
		return nil
	}
	var out []Node
	for _, decl := range Children(list) {
		if decl.Kind() != KindComponentDeclaration {
			continue
		}
		inner := decl.ChildByFieldName(FieldDeclaration)
		if inner == nil {
			continue
		}
		if id := declarationIdentifier(inner); id != nil {
			out = append(out, id)
		}
	}
	return out
}

// declarationIdentifier returns the IDENT held by a declaration node's
// identifier field.
func declarationIdentifier(decl Node) Node {
	if decl == nil {
		return nil
	}
	return decl.ChildByFieldName(FieldIdentifier)
}

// NameIdentifiers returns the ordered identifier subnodes making up the
// dotted path of a use-site node (kind "name" or "component_reference").
func NameIdentifiers(n Node) []Node {
	if n == nil {
		return nil
	}
	var out []Node
	for _, child := range NamedChildren(n) {
		if child.Kind() == KindIdent {
			out = append(out, child)
		}
	}
	return out
}
