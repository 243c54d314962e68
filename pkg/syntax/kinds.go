package syntax

// Node kinds consumed from the parser. This is a closed set: any node kind
// the grammar emits outside this list is opaque to the core and only ever
// touched generically (Kind, Text, Children, Parent).
const (
	KindStoredDefinitions      = "stored_definitions"
	KindStoredDefinition       = "stored_definition"
	KindWithinClause           = "within_clause"
	KindClassDefinition        = "class_definition"
	KindLongClassSpecifier     = "long_class_specifier"
	KindShortClassSpecifier    = "short_class_specifier"
	KindEnumerationSpecifier   = "enumeration_class_specifier"
	KindDerivativeSpecifier    = "derivative_class_specifier"
	KindExtendsClassSpecifier  = "extends_class_specifier"
	KindElementList            = "element_list"
	KindPublicElementList      = "public_element_list"
	KindProtectedElementList   = "protected_element_list"
	KindNamedElement           = "named_element"
	KindComponentClause        = "component_clause"
	KindComponentDeclaration   = "component_declaration"
	KindComponentRedeclaration = "component_redeclaration"
	KindComponentList          = "component_list"
	KindDeclaration            = "declaration"
	KindExtendsClause          = "extends_clause"
	KindImportClause           = "import_clause"
	KindTypeSpecifier          = "type_specifier"
	KindName                   = "name"
	KindComponentReference     = "component_reference"
	KindIdent                  = "IDENT"
	KindClassPrefixes          = "class_prefixes"
)

// Field names used for named-child access.
const (
	FieldClassSpecifier        = "classSpecifier"
	FieldClassPrefixes         = "classPrefixes"
	FieldClassDefinition       = "classDefinition"
	FieldComponentClause       = "componentClause"
	FieldComponentDeclarations = "componentDeclarations"
	FieldDeclaration           = "declaration"
	FieldIdentifier            = "identifier"
	FieldTypeSpecifier         = "typeSpecifier"
	FieldName                  = "name"
	FieldQualifier             = "qualifier"
	FieldWildcard              = "wildcard"
	FieldAlias                 = "alias"
	FieldImports               = "imports"
	FieldIndices               = "indices"
	FieldDescriptionString     = "descriptionString"
	FieldGlobal                = "global"
)

// elementListKinds is the set of kinds isElementList recognizes.
var elementListKinds = map[string]bool{
	KindElementList:          true,
	KindPublicElementList:    true,
	KindProtectedElementList: true,
}

// classSpecifierKinds is the set of class-specifier variants a
// class_definition's classSpecifier field can hold; extends_class_specifier
// covers both a normal "extends" redeclaration and the anonymous-body form;
// both are classified as a definition.
var classSpecifierKinds = map[string]bool{
	KindLongClassSpecifier:    true,
	KindShortClassSpecifier:   true,
	KindEnumerationSpecifier:  true,
	KindDerivativeSpecifier:   true,
	KindExtendsClassSpecifier: true,
}
