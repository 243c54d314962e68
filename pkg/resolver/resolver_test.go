package resolver_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/modelicals/pkg/document"
	"github.com/odvcencio/modelicals/pkg/project"
	"github.com/odvcencio/modelicals/pkg/reference"
	"github.com/odvcencio/modelicals/pkg/resolver"
	"github.com/odvcencio/modelicals/pkg/synfixture"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

// The fixture trees below hand-build a small multi-file library, plus a
// WildImports package exercising the wildcard-import scenario, standing in
// for a real Modelica grammar the way pkg/synfixture is designed to (see
// its package doc).

func identLeaf(text string) *synfixture.Node {
	return synfixture.Leaf(syntax.KindIdent, text, 0, len(text), 0, 0, 0, len(text))
}

func nameNode(parts ...string) *synfixture.Node {
	n := synfixture.Branch(syntax.KindName)
	for _, p := range parts {
		n.AddNamedChild(identLeaf(p))
	}
	return n
}

func typeSpecNode(parts ...string) *synfixture.Node {
	return synfixture.Branch(syntax.KindTypeSpecifier).WithField(syntax.FieldName, nameNode(parts...))
}

func classDefinition(name string) *synfixture.Node {
	spec := synfixture.Branch(syntax.KindLongClassSpecifier).WithField(syntax.FieldIdentifier, identLeaf(name))
	return synfixture.Branch(syntax.KindClassDefinition).WithField(syntax.FieldClassSpecifier, spec)
}

func componentClause(typeParts []string, ident string) *synfixture.Node {
	decl := synfixture.Branch(syntax.KindDeclaration).WithField(syntax.FieldIdentifier, identLeaf(ident))
	compDecl := synfixture.Branch(syntax.KindComponentDeclaration).WithField(syntax.FieldDeclaration, decl)
	list := synfixture.Branch(syntax.KindComponentList)
	list.AddChild(compDecl)
	return synfixture.Branch(syntax.KindComponentClause).
		WithField(syntax.FieldTypeSpecifier, typeSpecNode(typeParts...)).
		WithField(syntax.FieldComponentDeclarations, list)
}

func namedElementVariable(clause *synfixture.Node) *synfixture.Node {
	return synfixture.Branch(syntax.KindNamedElement).WithField(syntax.FieldComponentClause, clause)
}

func namedElementClass(def *synfixture.Node) *synfixture.Node {
	return synfixture.Branch(syntax.KindNamedElement).WithField(syntax.FieldClassDefinition, def)
}

func buildTestLibraryRoot() *synfixture.Node {
	storedDef := synfixture.Branch(syntax.KindStoredDefinition)
	storedDef.AddNamedChild(classDefinition("TestLibrary"))
	root := synfixture.Branch(syntax.KindStoredDefinitions)
	root.AddNamedChild(storedDef)
	return root
}

func buildConstantsRoot() *synfixture.Node {
	within := synfixture.Branch(syntax.KindWithinClause).WithField(syntax.FieldName, nameNode("TestLibrary"))

	eClause := componentClause([]string{"Real"}, "e")
	piClause := componentClause([]string{"Real"}, "pi")

	elements := synfixture.Branch(syntax.KindElementList)
	elements.AddChild(namedElementVariable(eClause))
	elements.AddChild(namedElementVariable(piClause))

	classDef := classDefinition("Constants")
	classDef.AddChild(elements)

	storedDef := synfixture.Branch(syntax.KindStoredDefinition)
	storedDef.AddNamedChild(within)
	storedDef.AddNamedChild(classDef)
	root := synfixture.Branch(syntax.KindStoredDefinitions)
	root.AddNamedChild(storedDef)
	return root
}

// buildWildImportsRoot builds TestLibrary.WildImports, a package holding a
// single nested class Foo, existing solely to be reached through a
// wildcard import.
func buildWildImportsRoot() *synfixture.Node {
	within := synfixture.Branch(syntax.KindWithinClause).WithField(syntax.FieldName, nameNode("TestLibrary"))

	elements := synfixture.Branch(syntax.KindElementList)
	elements.AddChild(namedElementClass(classDefinition("Foo")))

	classDef := classDefinition("WildImports")
	classDef.AddChild(elements)

	storedDef := synfixture.Branch(syntax.KindStoredDefinition)
	storedDef.AddNamedChild(within)
	storedDef.AddNamedChild(classDef)
	root := synfixture.Branch(syntax.KindStoredDefinitions)
	root.AddNamedChild(storedDef)
	return root
}

// testClassFixture bundles the TestClass.mo tree together with the
// usage-site nodes the relative-resolution scenarios anchor at.
type testClassFixture struct {
	root            *synfixture.Node
	tauUsage        *synfixture.Node
	constantsEUsage *synfixture.Node
	fooUsage        *synfixture.Node
}

func buildTestClassFixture() testClassFixture {
	within := synfixture.Branch(syntax.KindWithinClause).WithField(syntax.FieldName, nameNode("TestLibrary", "TestPackage"))
	imp := synfixture.Branch(syntax.KindImportClause).WithField(syntax.FieldQualifier, nameNode("TestLibrary", "Constants", "pi"))

	// "import TestLibrary.WildImports.*;" — the wildcard marker child's own
	// kind carries no meaning to importCandidate, only its presence under the
	// wildcard field does.
	wildcardMarker := synfixture.Leaf(syntax.KindIdent, "*", 0, 1, 0, 0, 0, 1)
	wildImp := synfixture.Branch(syntax.KindImportClause).
		WithField(syntax.FieldQualifier, nameNode("TestLibrary", "WildImports")).
		WithField(syntax.FieldWildcard, wildcardMarker)

	twoEClause := componentClause([]string{"Real"}, "twoE")
	tauClause := componentClause([]string{"Real"}, "tau")
	notTauClause := componentClause([]string{"Real"}, "notTau")

	// "twoE = 2 * Constants.e" — a component_reference usage of Constants.e
	// hung off twoE's clause, exactly as it would appear in its default
	// value expression.
	constantsE := synfixture.Branch(syntax.KindComponentReference)
	constantsE.AddNamedChild(identLeaf("Constants"))
	eIdent := identLeaf("e")
	constantsE.AddNamedChild(eIdent)
	twoEClause.AddChild(constantsE)

	// "notTau = tau / twoE" — a bare IDENT usage of tau hung off notTau's
	// clause.
	tauUsage := synfixture.Leaf(syntax.KindIdent, "tau", 0, 3, 0, 0, 0, 3)
	notTauClause.AddChild(tauUsage)

	elements := synfixture.Branch(syntax.KindElementList)
	elements.AddChild(imp)
	elements.AddChild(wildImp)
	elements.AddChild(namedElementVariable(twoEClause))
	elements.AddChild(namedElementVariable(tauClause))
	elements.AddChild(namedElementVariable(notTauClause))

	classDef := classDefinition("TestClass")
	classDef.AddChild(elements)

	// A bare "Foo" usage, standing in for a reference reachable only through
	// TestClass's wildcard import of TestLibrary.WildImports.
	fooUsage := synfixture.Leaf(syntax.KindIdent, "Foo", 0, 3, 0, 0, 0, 3)
	classDef.AddChild(fooUsage)

	storedDef := synfixture.Branch(syntax.KindStoredDefinition)
	storedDef.AddNamedChild(within)
	storedDef.AddNamedChild(classDef)
	root := synfixture.Branch(syntax.KindStoredDefinitions)
	root.AddNamedChild(storedDef)

	return testClassFixture{root: root, tauUsage: tauUsage, constantsEUsage: eIdent, fooUsage: fooUsage}
}

type fakeTree struct{ root *synfixture.Node }

func (t fakeTree) RootNode() syntax.Node { return t.root }

// fixtureParser recognizes which of the four fixture files it was handed
// by sniffing a unique substring of its source, since document.Parser's
// interface takes only bytes, not a path.
type fixtureParser struct {
	testClass testClassFixture
}

func newFixtureParser() *fixtureParser {
	return &fixtureParser{testClass: buildTestClassFixture()}
}

func (p *fixtureParser) Parse(src []byte) (document.Tree, error) {
	s := string(src)
	switch {
	case strings.Contains(s, "package TestLibrary"):
		return fakeTree{buildTestLibraryRoot()}, nil
	case strings.Contains(s, "package Constants"):
		return fakeTree{buildConstantsRoot()}, nil
	case strings.Contains(s, "package WildImports"):
		return fakeTree{buildWildImportsRoot()}, nil
	case strings.Contains(s, "function TestClass"):
		return fakeTree{p.testClass.root}, nil
	default:
		return fakeTree{synfixture.Branch(syntax.KindStoredDefinitions)}, nil
	}
}

func (p *fixtureParser) ParseIncremental(src, _ []byte, _ document.Tree, _ document.Edit) (document.Tree, error) {
	return p.Parse(src)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupTestLibrary(t *testing.T) (*project.Project, *fixtureParser, string) {
	t.Helper()
	root := t.TempDir()
	libRoot := filepath.Join(root, "TestLibrary")

	writeFile(t, filepath.Join(libRoot, "package.mo"), "package TestLibrary\nend TestLibrary;\n")
	writeFile(t, filepath.Join(libRoot, "Constants.mo"),
		"within TestLibrary;\npackage Constants\n  constant Real e  = 2.71828;\n  constant Real pi = 3.14159;\nend Constants;\n")
	writeFile(t, filepath.Join(libRoot, "WildImports.mo"),
		"within TestLibrary;\npackage WildImports\n  class Foo\n  end Foo;\nend WildImports;\n")
	writeFile(t, filepath.Join(libRoot, "TestPackage", "TestClass.mo"),
		"within TestLibrary.TestPackage;\nimport TestLibrary.Constants.pi;\nimport TestLibrary.WildImports.*;\nfunction TestClass\n"+
			"  input Real twoE  = 2 * Constants.e;\n  input Real tau    = 2 * pi;\n  input Real notTau = tau / twoE;\nend TestClass;\n")

	parser := newFixtureParser()
	proj := project.New(parser)
	if _, err := proj.AddLibrary(libRoot, true); err != nil {
		t.Fatal(err)
	}
	return proj, parser, libRoot
}

func TestResolverAbsoluteClass(t *testing.T) {
	proj, _, _ := setupTestLibrary(t)
	res := resolver.New(proj)

	ref := reference.NewAbsolute(reference.Path{"TestLibrary", "TestPackage", "TestClass"}, reference.KindClass)
	resolved, err := res.ResolveReference(ref, resolver.Declaration)
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Kind != reference.KindClass {
		t.Fatalf("expected kind class, got %s", resolved.Kind)
	}
	if id := syntax.ClassDefinitionName(resolved.Node); id == nil || id.Text() != "TestClass" {
		t.Fatalf("expected resolved node to declare TestClass, got %v", resolved.Node)
	}
}

func TestResolverAbsoluteVariable(t *testing.T) {
	proj, _, _ := setupTestLibrary(t)
	res := resolver.New(proj)

	ref := reference.NewAbsolute(reference.Path{"TestLibrary", "Constants", "e"}, reference.KindVariable)
	resolved, err := res.ResolveReference(ref, resolver.Declaration)
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Kind != reference.KindVariable {
		t.Fatalf("expected kind variable, got %s", resolved.Kind)
	}
	if !resolved.Path.Equal(reference.Path{"TestLibrary", "Constants", "e"}) {
		t.Fatalf("unexpected path: %s", resolved.Path)
	}
}

func TestResolverRelativeLocal(t *testing.T) {
	proj, parser, libRoot := setupTestLibrary(t)
	res := resolver.New(proj)

	testClassPath := filepath.Join(libRoot, "TestPackage", "TestClass.mo")
	rel := reference.NewRelative(reference.Path{"tau"}, reference.KindVariable, testClassPath, parser.testClass.tauUsage)
	resolved, err := res.ResolveReference(rel, resolver.Declaration)
	if err != nil {
		t.Fatal(err)
	}
	want := reference.Path{"TestLibrary", "TestPackage", "TestClass", "tau"}
	if !resolved.Path.Equal(want) {
		t.Fatalf("got path %s want %s", resolved.Path, want)
	}
}

func TestResolverRelativeCrossPackageViaQualifiedName(t *testing.T) {
	proj, parser, libRoot := setupTestLibrary(t)
	res := resolver.New(proj)

	testClassPath := filepath.Join(libRoot, "TestPackage", "TestClass.mo")
	rel := reference.NewRelative(reference.Path{"Constants", "e"}, reference.KindVariable, testClassPath, parser.testClass.constantsEUsage)
	resolved, err := res.ResolveReference(rel, resolver.Declaration)
	if err != nil {
		t.Fatal(err)
	}
	want := reference.Path{"TestLibrary", "Constants", "e"}
	if !resolved.Path.Equal(want) {
		t.Fatalf("got path %s want %s", resolved.Path, want)
	}
}

func TestResolverDefinitionIsUnsupported(t *testing.T) {
	proj, _, _ := setupTestLibrary(t)
	res := resolver.New(proj)

	ref := reference.NewAbsolute(reference.Path{"TestLibrary"}, reference.KindClass)
	_, err := res.ResolveReference(ref, resolver.Definition)
	if err == nil {
		t.Fatal("expected an error for definition resolution")
	}
	if re, ok := err.(*resolver.Error); !ok || re.Kind != resolver.KindUnsupported {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}

func TestResolverAbsoluteNotFoundForUnknownLibrary(t *testing.T) {
	proj, _, _ := setupTestLibrary(t)
	res := resolver.New(proj)

	ref := reference.NewAbsolute(reference.Path{"NoSuchLibrary"}, reference.KindClass)
	_, err := res.ResolveReference(ref, resolver.Declaration)
	if !resolver.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestResolverRelativeViaWildcardImport(t *testing.T) {
	proj, parser, libRoot := setupTestLibrary(t)
	res := resolver.New(proj)

	testClassPath := filepath.Join(libRoot, "TestPackage", "TestClass.mo")
	rel := reference.NewRelative(reference.Path{"Foo"}, reference.KindClass, testClassPath, parser.testClass.fooUsage)
	resolved, err := res.ResolveReference(rel, resolver.Declaration)
	if err != nil {
		t.Fatal(err)
	}
	want := reference.Path{"TestLibrary", "WildImports", "Foo"}
	if !resolved.Path.Equal(want) {
		t.Fatalf("got path %s want %s", resolved.Path, want)
	}
}

func TestResolverBuiltinTypeStopsChain(t *testing.T) {
	proj, _, _ := setupTestLibrary(t)
	res := resolver.New(proj)

	ref := reference.NewAbsolute(reference.Path{"TestLibrary", "TestPackage", "TestClass", "tau", "anything"}, reference.KindVariable)
	_, err := res.ResolveReference(ref, resolver.Declaration)
	if !resolver.IsNotFound(err) {
		t.Fatalf("expected not-found once the walk hits tau's builtin Real type, got %v", err)
	}
}

func TestResolverEmptyLibraryReturnsAbsent(t *testing.T) {
	root := t.TempDir()
	proj := project.New(newFixtureParser())
	if _, err := proj.AddLibrary(root, true); err != nil {
		t.Fatal(err)
	}
	res := resolver.New(proj)
	ref := reference.NewAbsolute(reference.Path{filepath.Base(root), "Anything"}, reference.KindClass)
	_, err := res.ResolveReference(ref, resolver.Declaration)
	if !resolver.IsNotFound(err) {
		t.Fatalf("expected not-found for empty library, got %v", err)
	}
}
