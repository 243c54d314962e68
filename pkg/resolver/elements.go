package resolver

import "github.com/odvcencio/modelicals/pkg/syntax"

// topLevelClassDefinitions returns every class_definition node directly
// held by a document's stored_definition(s), without descending into any of
// them: a file's top-level classes are its stored_definitions' direct
// named children.
func topLevelClassDefinitions(root syntax.Node) []syntax.Node {
	if root == nil {
		return nil
	}
	var storedDefs []syntax.Node
	switch root.Kind() {
	case syntax.KindStoredDefinitions:
		storedDefs = syntax.NamedChildren(root)
	case syntax.KindStoredDefinition:
		storedDefs = []syntax.Node{root}
	default:
		storedDefs = []syntax.Node{root}
	}

	var defs []syntax.Node
	for _, sd := range storedDefs {
		for _, child := range syntax.NamedChildren(sd) {
			if child.Kind() == syntax.KindClassDefinition {
				defs = append(defs, child)
			}
		}
	}
	return defs
}

// topLevelClassDefinitionNamed returns the top-level class-definition of
// root declaring name, or nil.
func topLevelClassDefinitionNamed(root syntax.Node, name string) syntax.Node {
	for _, def := range topLevelClassDefinitions(root) {
		if id := syntax.ClassDefinitionName(def); id != nil && id.Text() == name {
			return def
		}
	}
	return nil
}

// classElementLists collects every element_list-kind node belonging
// directly to classDef's own scope: it walks classDef's subtree but never
// descends past a nested class_definition boundary, so a nested class's
// members are never mistaken for classDef's own.
func classElementLists(classDef syntax.Node) []syntax.Node {
	var lists []syntax.Node
	var walk func(n syntax.Node, isRoot bool)
	walk = func(n syntax.Node, isRoot bool) {
		if n == nil {
			return
		}
		if !isRoot && n.Kind() == syntax.KindClassDefinition {
			return
		}
		if syntax.IsElementList(n) {
			lists = append(lists, n)
		}
		for _, c := range syntax.Children(n) {
			walk(c, false)
		}
	}
	walk(classDef, true)
	return lists
}

// findMember searches classDef's own element lists (in document order, list
// by list) for a named_element declaring name, returning the first match.
func findMember(classDef syntax.Node, name string) (node syntax.Node, isClass bool, found bool) {
	for _, list := range classElementLists(classDef) {
		for _, child := range syntax.Children(list) {
			if child.Kind() != syntax.KindNamedElement {
				continue
			}
			declares := false
			for _, id := range syntax.DeclaredIdentifiers(child) {
				if id.Text() == name {
					declares = true
					break
				}
			}
			if !declares {
				continue
			}
			if def := child.ChildByFieldName(syntax.FieldClassDefinition); def != nil {
				return def, true, true
			}
			if clause := child.ChildByFieldName(syntax.FieldComponentClause); clause != nil {
				return clause, false, true
			}
			return nil, false, false
		}
	}
	return nil, false, false
}

// extendsClauses collects classDef's own extends_clause elements, in
// document order across its element lists.
func extendsClauses(classDef syntax.Node) []syntax.Node {
	var out []syntax.Node
	for _, list := range classElementLists(classDef) {
		for _, child := range syntax.Children(list) {
			if child.Kind() == syntax.KindExtendsClause {
				out = append(out, child)
			}
		}
	}
	return out
}

// enclosingClasses walks n's Parent chain and returns every enclosing
// class_definition's node and declared name, innermost first.
func enclosingClasses(n syntax.Node) (nodes []syntax.Node, names []string) {
	cur := n
	for cur != nil {
		p := cur.Parent()
		if p == nil {
			break
		}
		if p.Kind() == syntax.KindClassDefinition {
			if id := syntax.ClassDefinitionName(p); id != nil {
				nodes = append(nodes, p)
				names = append(names, id.Text())
			}
		}
		cur = p
	}
	return nodes, names
}

func reverseStrings(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

// typeSpecifierOf extracts the dotted type path reachable from a variable's
// declaring node, as plain strings, and whether it is global-rooted.
func typeSpecifierOf(n syntax.Node) (path []string, global bool, ok bool) {
	nodes, global, ok := syntax.TypeSpecifierPath(n)
	if !ok {
		return nil, false, false
	}
	return textsOf(nodes), global, true
}

func textsOf(nodes []syntax.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Text()
	}
	return out
}
