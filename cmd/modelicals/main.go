// Command modelicals runs a Modelica language server that speaks LSP over
// stdio.
package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/modelicals/pkg/langtree"
	"github.com/odvcencio/modelicals/pkg/lsp"
)

var version = "0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("modelicals " + version)
		os.Exit(0)
	}

	parser, err := langtree.NewParser(modelicaLanguage())
	if err != nil {
		fmt.Fprintf(os.Stderr, "modelicals: %v\n", err)
		os.Exit(1)
	}

	svc := lsp.NewService(parser)
	srv := lsp.NewServer(os.Stdin, os.Stdout, os.Stderr)
	svc.Register(srv)

	if err := srv.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "modelicals: %v\n", err)
		os.Exit(1)
	}
}
