// Package langtree implements pkg/document.Parser against
// github.com/smacker/go-tree-sitter: a thin wrapper around one injected
// grammar, exposing full and incremental parse plus a pkg/syntax.Node
// adapter over the resulting tree.
package langtree

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/odvcencio/modelicals/pkg/document"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

// Parser implements document.Parser against a single grammar. This server
// only ever parses Modelica, so the grammar is injected once at
// construction rather than looked up per file.
type Parser struct {
	lang *sitter.Language
}

// NewParser returns a Parser bound to lang. lang is the compiled Modelica
// tree-sitter grammar; it is injected rather than imported directly so this
// package has no compile-time dependency on any one grammar binary.
func NewParser(lang *sitter.Language) (*Parser, error) {
	if lang == nil {
		return nil, fmt.Errorf("langtree: grammar language is required")
	}
	return &Parser{lang: lang}, nil
}

func (p *Parser) newSitterParser() *sitter.Parser {
	sp := sitter.NewParser()
	sp.SetLanguage(p.lang)
	return sp
}

// Parse performs a full parse of src.
func (p *Parser) Parse(src []byte) (document.Tree, error) {
	tree, err := p.newSitterParser().ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("langtree: parse: %w", err)
	}
	return &Tree{tree: tree, src: src}, nil
}

// ParseIncremental rebases old with edit and reparses src using the edited
// tree as tree-sitter's reuse hint. go-tree-sitter's ParseCtx takes the
// whole updated buffer directly rather than a token-source callback, so
// the full new buffer is passed in alongside the edited tree.
func (p *Parser) ParseIncremental(src, _ []byte, old document.Tree, edit document.Edit) (document.Tree, error) {
	prior, ok := old.(*Tree)
	if !ok || prior == nil || prior.tree == nil {
		return p.Parse(src)
	}

	prior.tree.Edit(sitter.EditInput{
		StartIndex:  uint32(edit.StartByte),
		OldEndIndex: uint32(edit.OldEndByte),
		NewEndIndex: uint32(edit.NewEndByte),
		StartPoint:  toSitterPoint(edit.StartPosition),
		OldEndPoint: toSitterPoint(edit.OldEndPosition),
		NewEndPoint: toSitterPoint(edit.NewEndPosition),
	})

	tree, err := p.newSitterParser().ParseCtx(context.Background(), prior.tree, src)
	if err != nil {
		return nil, fmt.Errorf("langtree: incremental parse: %w", err)
	}
	if tree == nil || tree.RootNode() == nil {
		return p.Parse(src)
	}
	return &Tree{tree: tree, src: src}, nil
}

func toSitterPoint(pos syntax.Position) sitter.Point {
	return sitter.Point{Row: uint32(pos.Row), Column: uint32(pos.Column)}
}

// Tree wraps a *sitter.Tree together with the buffer it was parsed from,
// since a Node's Content needs that buffer to slice its text out of.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

func (t *Tree) RootNode() syntax.Node {
	if t.tree == nil {
		return nil
	}
	return wrap(t.tree.RootNode(), t.src)
}
