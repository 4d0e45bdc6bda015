// Package lsp serves parse diagnostics over the Language Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/radin/cx/lexer"
	"github.com/dhamidi/radin/cx/parser"
)

const lsName = "radin"

var log = commonlog.GetLogger("radin.lsp")

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	docs    *documentCache
	opts    []parser.Option
}

// NewServer returns a server that parses every open document with opts.
func NewServer(version string, opts ...parser.Option) (*Server, error) {
	docs, err := newDocumentCache(DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	ls := &Server{
		version: version,
		docs:    docs,
		opts:    opts,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls, nil
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI, ls.diagnose(params.TextDocument.URI, params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.publish(ctx, params.TextDocument.URI, ls.diagnose(params.TextDocument.URI, textChange.Text))
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.docs.forget(params.TextDocument.URI)
	ls.publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	text, ok := ls.docs.text(params.TextDocument.URI)
	if params.Text != nil {
		text, ok = *params.Text, true
	}
	if !ok {
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, ls.diagnose(params.TextDocument.URI, text))
	return nil
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, diags []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// diagnose parses text unless it matches the cached copy for uri.
func (ls *Server) diagnose(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	if diags, ok := ls.docs.lookup(uri, text); ok {
		return diags
	}

	path := uriToPath(uri)
	opts := append([]parser.Option{parser.WithFile(path)}, ls.opts...)
	p := parser.NewFromBytes([]byte(text), opts...)
	p.Parse()

	diags := make([]protocol.Diagnostic, 0, len(p.Errors()))
	for _, d := range p.Errors() {
		diags = append(diags, toProtocol(uri, d))
	}
	log.Debugf("%s: %d diagnostics", path, len(diags))
	ls.docs.store(uri, text, diags)
	return diags
}

func toProtocol(uri protocol.DocumentUri, d *parser.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	diag := protocol.Diagnostic{
		Range:    tokenRange(d.Token),
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	}
	for _, r := range d.Related {
		diag.RelatedInformation = append(diag.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{URI: uri, Range: tokenRange(r.Token)},
			Message:  r.Message,
		})
	}
	return diag
}

// tokenRange converts 1-based token positions to 0-based protocol positions.
func tokenRange(tok lexer.Token) protocol.Range {
	start := toPosition(tok.Span.Start)
	end := toPosition(tok.Span.End)
	if tok.Kind == lexer.TokenEOF || tok.Span.End.Line == 0 {
		end = start
	}
	return protocol.Range{Start: start, End: end}
}

func toPosition(pos lexer.Position) protocol.Position {
	line, col := pos.Line-1, pos.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err == nil {
			return filepath.Clean(parsed.Path)
		}
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
