package syntax_test

import (
	"testing"

	"github.com/odvcencio/modelicals/pkg/synfixture"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

func TestWithinClausePathPresent(t *testing.T) {
	name := synfixture.Branch(syntax.KindName)
	name.AddNamedChild(synfixture.Leaf(syntax.KindIdent, "TestLibrary", 0, 11, 0, 0, 0, 11))
	name.AddNamedChild(synfixture.Leaf(syntax.KindIdent, "TestPackage", 12, 23, 0, 12, 0, 23))
	clause := synfixture.Branch(syntax.KindWithinClause).WithField(syntax.FieldName, name)
	root := synfixture.Branch(syntax.KindStoredDefinitions)
	root.AddNamedChild(clause)

	path, found := syntax.WithinClausePath(root)
	if !found {
		t.Fatal("expected within_clause to be found")
	}
	if len(path) != 2 || path[0].Text() != "TestLibrary" || path[1].Text() != "TestPackage" {
		t.Fatalf("unexpected path: %v", texts(path))
	}
}

func TestWithinClausePathEmptyClause(t *testing.T) {
	clause := synfixture.Branch(syntax.KindWithinClause)
	root := synfixture.Branch(syntax.KindStoredDefinitions)
	root.AddNamedChild(clause)

	path, found := syntax.WithinClausePath(root)
	if !found {
		t.Fatal("expected an empty within clause to still be found")
	}
	if len(path) != 0 {
		t.Fatalf("expected empty path, got %v", texts(path))
	}
}

func TestWithinClausePathAbsent(t *testing.T) {
	root := synfixture.Branch(syntax.KindStoredDefinitions)
	_, found := syntax.WithinClausePath(root)
	if found {
		t.Fatal("expected no within_clause to be found")
	}
}
