package lsp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	// commonlog is a required dependency of github.com/tliron/glsp. It is
	// silenced in NewServer via commonlog.Configure(0, nil) because this
	// server logs through slog exclusively; the blank import of the "simple"
	// backend is still required by glsp at runtime.
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const serverName = "tsquery-diag"

// Server is the tree-sitter query language server: it watches .scm
// documents over stdio and publishes diagnostics from the pipeline in
// package diagnose.
type Server struct {
	logger    *slog.Logger
	handler   protocol.Handler
	server    *server.Server
	workspace *Workspace

	shutdownCalled bool

	closeOnce sync.Once
	closeErr  error
}

// NewServer creates a tree-sitter query language server. If logger is nil,
// slog.Default() is used.
func NewServer(logger *slog.Logger, cfg Config) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		logger:    logger.With(slog.String("component", "server")),
		workspace: NewWorkspace(logger, cfg),
	}

	commonlog.Configure(0, nil)

	s.handler = protocol.Handler{
		Initialize:    s.initialize,
		Initialized:   s.initialized,
		Shutdown:      s.shutdown,
		Exit:          s.exit,
		SetTrace:      s.setTrace,
		CancelRequest: s.cancelRequest,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
	}

	s.server = server.NewServer(&s.handler, serverName, false)

	return s
}

// Handler returns the protocol handler, exposed for tests that want to
// invoke handler methods directly without a live stdio transport.
func (s *Server) Handler() *protocol.Handler {
	return &s.handler
}

// RunStdio runs the server over stdio until the client disconnects.
func (s *Server) RunStdio() error {
	if err := s.server.RunStdio(); err != nil {
		return fmt.Errorf("run stdio: %w", err)
	}
	return nil
}

// Close closes the JSON-RPC connection, causing RunStdio to return.
//
// Close is idempotent and safe to call before RunStdio has set up the
// connection: it returns nil in that case so a caller racing against
// startup can retry.
func (s *Server) Close() error {
	conn := s.server.GetStdio()
	if conn == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		if err := conn.Close(); err != nil {
			s.closeErr = fmt.Errorf("close connection: %w", err)
		}
	})
	return s.closeErr
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.logger.Info("initialize request received", slog.String("client_name", s.clientName(params)))

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	if syncOpts, ok := capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions); ok {
		syncOpts.Change = &syncKind
	}

	version := "dev"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.logger.Info("server initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	s.logger.Info("shutdown request received")
	s.shutdownCalled = true
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

// exit handles the exit notification per the LSP lifecycle: exit code is 0
// if shutdown was called first, 1 otherwise.
func (s *Server) exit(_ *glsp.Context) error {
	exitCode := 0
	if !s.shutdownCalled {
		s.logger.Warn("exit called without shutdown")
		exitCode = 1
	}
	s.logger.Info("exit notification received", slog.Int("exit_code", exitCode))
	os.Exit(exitCode)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// cancelRequest logs $/cancelRequest notifications. glsp handles JSON-RPC
// level cancellation itself; debounced analysis cancellation is handled
// separately by Workspace.ScheduleAnalysis.
func (s *Server) cancelRequest(ctx *glsp.Context, params *protocol.CancelParams) error {
	s.logger.Debug("cancelRequest", slog.Any("id", params.ID))
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	if !isQueryURI(uri) {
		s.logger.Debug("ignoring didOpen for non-query file", slog.String("uri", uri))
		return nil
	}
	s.logger.Debug("textDocument/didOpen", slog.String("uri", uri))

	var notify Notifier
	if ctx != nil {
		notify = func(method string, params any) { ctx.Notify(method, params) }
	}

	s.workspace.DocumentOpened(uri, params.TextDocument.Text)
	s.workspace.AnalyzeAndPublish(notify, context.Background(), uri)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if !isQueryURI(uri) {
		s.logger.Debug("ignoring didChange for non-query file", slog.String("uri", uri))
		return nil
	}
	s.logger.Debug("textDocument/didChange", slog.String("uri", uri))

	for _, rawChange := range params.ContentChanges {
		if change, ok := rawChange.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.workspace.DocumentChanged(uri, change.Text)
		}
	}
	s.workspace.ScheduleAnalysis(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	if !isQueryURI(uri) {
		return nil
	}
	s.logger.Debug("textDocument/didClose", slog.String("uri", uri))

	var notify Notifier
	if ctx != nil {
		notify = func(method string, params any) { ctx.Notify(method, params) }
	}
	s.workspace.DocumentClosed(notify, uri)
	return nil
}

func (s *Server) clientName(params *protocol.InitializeParams) string {
	if params.ClientInfo != nil {
		if params.ClientInfo.Version != nil {
			return params.ClientInfo.Name + " " + *params.ClientInfo.Version
		}
		return params.ClientInfo.Name
	}
	return "unknown"
}
