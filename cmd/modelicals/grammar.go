package main

import sitter "github.com/smacker/go-tree-sitter"

// modelicaLanguage returns the compiled Modelica tree-sitter grammar this
// binary parses against. github.com/smacker/go-tree-sitter's bundled
// grammars cover languages like Go and Python, not Modelica, so there is
// nothing to return here yet — a real deployment links one in by replacing
// this function with one that returns a *sitter.Language built from a
// Modelica grammar.
func modelicaLanguage() *sitter.Language {
	return nil
}
