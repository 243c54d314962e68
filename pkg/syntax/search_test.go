package syntax_test

import (
	"testing"

	"github.com/odvcencio/modelicals/pkg/synfixture"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

func TestFindFirst(t *testing.T) {
	class := buildSimpleClass()
	found := syntax.FindFirst(class, func(n syntax.Node) bool {
		return n.Kind() == syntax.KindComponentClause
	})
	if found == nil {
		t.Fatal("expected to find a component_clause")
	}
}

func TestFindParent(t *testing.T) {
	class := buildSimpleClass()
	elemList := class.Child(1)
	named := elemList.Child(0)
	clause := named.ChildByFieldName(syntax.FieldComponentClause)

	parent := syntax.FindParent(clause, func(n syntax.Node) bool {
		return n.Kind() == syntax.KindClassDefinition
	})
	if parent == nil {
		t.Fatal("expected to find the enclosing class_definition")
	}
}

func TestForEachPrune(t *testing.T) {
	class := buildSimpleClass()
	visited := 0
	syntax.ForEach(class, func(n syntax.Node) syntax.WalkAction {
		visited++
		if n.Kind() == syntax.KindPublicElementList {
			return syntax.WalkSkip
		}
		return syntax.WalkContinue
	})
	// The pruned walk still visits the public_element_list itself but none
	// of its descendants, so it must count fewer nodes than a full walk.
	full := 0
	syntax.ForEach(class, func(syntax.Node) syntax.WalkAction {
		full++
		return syntax.WalkContinue
	})
	if visited >= full {
		t.Fatalf("expected pruned walk (%d) to visit fewer nodes than full walk (%d)", visited, full)
	}
}

func TestNilFixtureParentIsNilInterface(t *testing.T) {
	n := synfixture.Branch(syntax.KindClassDefinition)
	var got syntax.Node = n.Parent()
	if got != nil {
		t.Fatal("expected nil interface for root fixture node's parent")
	}
}
