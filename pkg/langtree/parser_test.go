package langtree_test

import (
	"testing"

	"github.com/odvcencio/modelicals/pkg/langtree"
)

func TestNewParserRejectsNilLanguage(t *testing.T) {
	if _, err := langtree.NewParser(nil); err == nil {
		t.Fatal("expected an error for a nil grammar")
	}
}
