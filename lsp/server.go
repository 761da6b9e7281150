// Package lsp serves Nix parse diagnostics and completion over the
// language server protocol.
package lsp

import (
	"sort"
	"sync"

	"github.com/dhamidi/nixel/ast"
	"github.com/dhamidi/nixel/syntax"

	"github.com/sahilm/fuzzy"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "nixel"

// Server holds the open documents and their latest parse results.
type Server struct {
	mu      sync.Mutex
	docs    map[protocol.DocumentUri]*document
	handler protocol.Handler
	server  *server.Server
	version string
}

type document struct {
	text   string
	parse  ast.Parse[*ast.Root]
	lines  []int // byte offset of each line start
	idents []string
}

func NewServer(version string) *Server {
	s := &Server{
		docs:    make(map[protocol.DocumentUri]*document),
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentDidSave:    s.textDocumentDidSave,
		TextDocumentCompletion: s.textDocumentCompletion,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.updateDocument(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.updateDocument(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.updateDocument(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

func (s *Server) updateDocument(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	doc := &document{
		text:  text,
		parse: ast.ParseRoot(text),
		lines: lineStarts(text),
	}
	doc.idents = collectIdents(doc.parse.Syntax())

	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()

	s.publishDiagnostics(ctx, uri, doc)
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, doc *document) {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.parse.Errors()))
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, e := range doc.parse.Errors() {
		msg := e.Msg
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: doc.position(e.From),
				End:   doc.position(e.To),
			},
			Severity: &severity,
			Source:   &source,
			Message:  msg,
		})
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	s.mu.Lock()
	doc := s.docs[params.TextDocument.URI]
	s.mu.Unlock()
	if doc == nil {
		return nil, nil
	}

	offset := doc.offset(params.Position)
	prefix := identPrefix(doc.text, offset)

	keywordKind := protocol.CompletionItemKindKeyword
	identKind := protocol.CompletionItemKindVariable

	type candidate struct {
		label string
		kind  *protocol.CompletionItemKind
	}
	var candidates []candidate
	for _, kw := range syntax.Keywords() {
		candidates = append(candidates, candidate{label: kw, kind: &keywordKind})
	}
	for _, id := range doc.idents {
		candidates = append(candidates, candidate{label: id, kind: &identKind})
	}

	var items []protocol.CompletionItem
	if prefix == "" {
		for _, c := range candidates {
			items = append(items, protocol.CompletionItem{Label: c.label, Kind: c.kind})
		}
		return items, nil
	}

	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.label
	}
	for _, m := range fuzzy.Find(prefix, labels) {
		c := candidates[m.Index]
		items = append(items, protocol.CompletionItem{Label: c.label, Kind: c.kind})
	}
	return items, nil
}

// collectIdents gathers the distinct identifier names in the tree.
func collectIdents(root *syntax.Node) []string {
	seen := make(map[string]bool)
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if n.IsToken() {
			if n.Kind() == syntax.TokenIdent {
				seen[n.Text()] = true
			}
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)

	idents := make([]string, 0, len(seen))
	for id := range seen {
		idents = append(idents, id)
	}
	sort.Strings(idents)
	return idents
}

// identPrefix returns the partial identifier ending at offset.
func identPrefix(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	start := offset
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	return text[start:offset]
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '-' || b == '\'' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// position converts a byte offset into a 0-based line/character pair.
func (d *document) position(offset int) protocol.Position {
	line := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(offset - d.lines[line]),
	}
}

// offset converts a protocol position back into a byte offset.
func (d *document) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(d.lines) {
		return len(d.text)
	}
	off := d.lines[line] + int(pos.Character)
	end := len(d.text)
	if line+1 < len(d.lines) {
		end = d.lines[line+1]
	}
	if off > end {
		off = end
	}
	return off
}

func boolPtr(b bool) *bool { return &b }

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
