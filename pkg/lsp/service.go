package lsp

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/odvcencio/modelicals/pkg/document"
	"github.com/odvcencio/modelicals/pkg/project"
	"github.com/odvcencio/modelicals/pkg/resolver"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

const serverVersion = "0.1.0"

// Service holds workspace state and handles LSP requests: a
// *project.Project, which keeps every document's tree incrementally in
// sync as edits arrive, and a *resolver.Resolver over it.
type Service struct {
	mu       sync.RWMutex
	rootURI  string
	rootPath string
	proj     *project.Project
	res      *resolver.Resolver
}

// NewService returns a Service whose Project parses documents with parser.
func NewService(parser document.Parser) *Service {
	proj := project.New(parser)
	return &Service{proj: proj, res: resolver.New(proj)}
}

// Register wires this Service's handlers onto a Server.
func (s *Service) Register(srv *Server) {
	srv.Handle("initialize", s.handleInitialize)
	srv.Handle("shutdown", s.handleShutdown)
	srv.Handle("textDocument/documentSymbol", s.handleDocumentSymbol)
	srv.Handle("textDocument/definition", s.handleDefinition)

	srv.OnNotify("initialized", func(params json.RawMessage) { s.loadWorkspace() })
	srv.OnNotify("textDocument/didOpen", s.handleDidOpen)
	srv.OnNotify("textDocument/didChange", s.handleDidChange)
	srv.OnNotify("textDocument/didSave", s.handleDidSave)
	srv.OnNotify("exit", func(params json.RawMessage) {})
}

func (s *Service) handleInitialize(params json.RawMessage) (any, error) {
	var p InitializeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.rootURI = p.RootURI
	s.rootPath = uriToPath(p.RootURI)
	if s.rootPath == "" {
		s.rootPath = p.RootPath
	}
	s.mu.Unlock()

	return InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:       SyncIncremental,
			DocumentSymbolProvider: true,
			DefinitionProvider:     true,
		},
		ServerInfo: &ServerInfo{Name: "modelicals", Version: serverVersion},
	}, nil
}

func (s *Service) handleShutdown(params json.RawMessage) (any, error) {
	return nil, nil
}

// loadWorkspace registers the initialized workspace root as a library.
func (s *Service) loadWorkspace() {
	s.mu.RLock()
	root := s.rootPath
	s.mu.RUnlock()
	if root == "" {
		return
	}
	if _, err := s.proj.AddLibrary(root, true); err != nil {
		slog.Warn("lsp: failed to load workspace root as a library", "root", root, "err", err)
	}
}

func (s *Service) handleDidOpen(params json.RawMessage) {
	var p DidOpenTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		return
	}
	path := uriToPath(p.TextDocument.URI)
	if _, _, err := s.proj.AddDocument(path); err != nil {
		slog.Debug("lsp: didOpen for a file not yet on disk", "path", path, "err", err)
	}
	if _, err := s.proj.UpdateDocument(path, []byte(p.TextDocument.Text)); err != nil {
		slog.Warn("lsp: didOpen failed to sync buffer text", "path", path, "err", err)
	}
}

func (s *Service) handleDidChange(params json.RawMessage) {
	var p DidChangeTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		return
	}
	path := uriToPath(p.TextDocument.URI)
	for _, change := range p.ContentChanges {
		var err error
		if change.Range != nil {
			_, err = s.proj.ApplyDocumentEdit(path, toSyntaxPosition(change.Range.Start), toSyntaxPosition(change.Range.End), change.Text)
		} else {
			_, err = s.proj.UpdateDocument(path, []byte(change.Text))
		}
		if err != nil {
			slog.Warn("lsp: didChange failed to apply edit", "path", path, "err", err)
			return
		}
	}
}

// handleDidSave re-syncs a document against the text sent with the save,
// or, when none is sent, its on-disk contents. Project already tracks edits
// incrementally as they arrive via didChange; this is a resync safety net.
func (s *Service) handleDidSave(params json.RawMessage) {
	var p DidSaveTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		return
	}
	path := uriToPath(p.TextDocument.URI)
	if p.Text != nil {
		if _, err := s.proj.UpdateDocument(path, []byte(*p.Text)); err != nil {
			slog.Warn("lsp: didSave failed to sync provided text", "path", path, "err", err)
		}
		return
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if _, err := s.proj.UpdateDocument(path, text); err != nil {
		slog.Warn("lsp: didSave failed to sync file contents", "path", path, "err", err)
	}
}

func (s *Service) handleDefinition(params json.RawMessage) (any, error) {
	var p DefinitionParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	path := uriToPath(p.TextDocument.URI)
	doc, ok, err := s.proj.GetDocument(path, true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	ref, ok := resolver.IdentifyReference(doc, toSyntaxPosition(p.Position))
	if !ok {
		return nil, nil
	}
	resolved, err := s.res.ResolveReference(ref, resolver.Declaration)
	if err != nil {
		if resolver.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return LSPLocation{
		URI: pathToURI(resolved.DocumentPath),
		Range: Range{
			Start: fromSyntaxPosition(resolved.Node.StartPosition()),
			End:   fromSyntaxPosition(resolved.Node.EndPosition()),
		},
	}, nil
}

func (s *Service) handleDocumentSymbol(params json.RawMessage) (any, error) {
	var p DocumentSymbolParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	path := uriToPath(p.TextDocument.URI)
	doc, ok, err := s.proj.GetDocument(path, true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []DocumentSymbol{}, nil
	}
	return classDefinitionSymbols(doc.RootNode()), nil
}

// classDefinitionSymbols flattens n's class_definition descendants into a
// DocumentSymbol tree, one entry per class with its own nested classes as
// children — pkg/syntax.ForEach with WalkSkip would flatten past a class
// boundary uniformly, so this walks by hand instead to preserve nesting.
func classDefinitionSymbols(n syntax.Node) []DocumentSymbol {
	if n == nil {
		return nil
	}
	var out []DocumentSymbol
	for i, count := 0, n.ChildCount(); i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if syntax.IsDefinition(child) {
			name := ""
			if id := syntax.ClassDefinitionName(child); id != nil {
				name = id.Text()
			}
			r := Range{Start: fromSyntaxPosition(child.StartPosition()), End: fromSyntaxPosition(child.EndPosition())}
			out = append(out, DocumentSymbol{
				Name:           name,
				Kind:           SKClass,
				Range:          r,
				SelectionRange: r,
				Children:       classDefinitionSymbols(child),
			})
			continue
		}
		out = append(out, classDefinitionSymbols(child)...)
	}
	return out
}

func toSyntaxPosition(p Position) syntax.Position {
	return syntax.Position{Row: p.Line, Column: p.Character}
}

func fromSyntaxPosition(p syntax.Position) Position {
	return Position{Line: p.Row, Character: p.Column}
}

// uriToPath and pathToURI convert between file:// URIs and the plain
// absolute filesystem paths pkg/project and pkg/document work in
// throughout. Document identity here is always an absolute path.
func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}

func pathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + path
}
