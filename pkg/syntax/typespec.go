package syntax

// TypeSpecifierPath extracts the dotted identifier path of a type specifier
// reachable from n (either n itself, its "typeSpecifier" field, or the first
// type_specifier found by pre-order search below n), and reports whether the
// specifier is rooted at the global scope (a leading '.').
func TypeSpecifierPath(n Node) (path []Node, global bool, ok bool) {
	spec := typeSpecifierNode(n)
	if spec == nil {
		return nil, false, false
	}
	global = spec.ChildByFieldName(FieldGlobal) != nil
	nameNode := spec.ChildByFieldName(FieldName)
	path = NameIdentifiers(nameNode)
	if len(path) == 0 {
		return nil, false, false
	}
	return path, global, true
}

func typeSpecifierNode(n Node) Node {
	if n == nil {
		return nil
	}
	if n.Kind() == KindTypeSpecifier {
		return n
	}
	if spec := n.ChildByFieldName(FieldTypeSpecifier); spec != nil {
		return spec
	}
	return FindFirst(n, func(c Node) bool { return c.Kind() == KindTypeSpecifier })
}
