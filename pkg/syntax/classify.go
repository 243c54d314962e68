package syntax

// IsDefinition reports whether n's kind is a class definition. A
// class_definition whose classSpecifier is the anonymous `class extends Foo
// ... end Foo;` body form (extends_class_specifier) still matches here — see
// classSpecifierKinds — since the grammar wraps it in a class_definition the
// same as any other specifier variant.
//
// TODO: that anonymous form actually redeclares Foo in place rather than
// declaring a fresh sibling; the walk does not yet special-case it, so it
// surfaces as an ordinary definition named after Foo.
func IsDefinition(n Node) bool {
	if n == nil {
		return false
	}
	return n.Kind() == KindClassDefinition
}

// IsVariableDeclaration reports whether n introduces a component (variable)
// rather than a class: a component-clause, a component-redeclaration, or a
// named-element whose classDefinition field is absent.
func IsVariableDeclaration(n Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case KindComponentClause, KindComponentRedeclaration:
		return true
	case KindNamedElement:
		return n.ChildByFieldName(FieldClassDefinition) == nil
	default:
		return false
	}
}

// IsElementList reports whether n is any element-list variant: plain,
// public, or protected.
func IsElementList(n Node) bool {
	if n == nil {
		return false
	}
	return elementListKinds[n.Kind()]
}

// IsClassSpecifier reports whether n is one of the class-specifier variants
// a class_definition's classSpecifier field can hold.
func IsClassSpecifier(n Node) bool {
	if n == nil {
		return false
	}
	return classSpecifierKinds[n.Kind()]
}

// classDefinitionName returns the class name identifier node held by a
// class_definition's classSpecifier.identifier field, or nil.
func classDefinitionName(n Node) Node {
	spec := n.ChildByFieldName(FieldClassSpecifier)
	if spec == nil {
		return nil
	}
	return spec.ChildByFieldName(FieldIdentifier)
}

// ClassDefinitionName is the exported form of classDefinitionName, used by
// pkg/resolver to match a class_definition node against a target name
// without going through the general-purpose DeclaredIdentifiers dispatch.
func ClassDefinitionName(n Node) Node {
	return classDefinitionName(n)
}
