package lsp

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/diagnose"
	"github.com/slentz/tsquery-diag/exec"
	"github.com/slentz/tsquery-diag/internal/docbuild"
	"github.com/slentz/tsquery-diag/internal/source"
	"github.com/slentz/tsquery-diag/location"
	"github.com/slentz/tsquery-diag/query"
	"github.com/slentz/tsquery-diag/registry"
)

// debounceDelay is the delay before triggering analysis after a change.
const debounceDelay = 150 * time.Millisecond

// Notifier sends an LSP notification. Capturing only this capability (rather
// than an entire glsp.Context) keeps debounce closures decoupled from the
// transport.
type Notifier func(method string, params any)

// QueryParser parses a query document's raw text into a tree-sitter syntax
// tree, using whatever bundled tree-sitter-query grammar binding the
// embedding binary links against.
//
// A nil QueryParser leaves every opened document's Tree unset. Import
// resolution still runs (it only needs Document.Imports); pattern-structure
// validation and the AST scan both no-op on a nil Tree, the same graceful
// degradation diagnose.Engine already applies when a target grammar is
// unregistered.
type QueryParser func(text []byte) (*sitter.Tree, error)

type debounceEntry struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

// Workspace owns every open query document, the grammar/options registries,
// and the diagnostic engine that runs over them.
type Workspace struct {
	logger *slog.Logger

	sources   *source.Registry
	documents *registry.DocumentStore
	languages *registry.LanguageStore
	options   *registry.OptionsStore
	engine    *diagnose.Engine
	parser    QueryParser
	queryLang registry.QueryLanguageHandle

	debounceMu sync.Mutex
	debounces  map[string]*debounceEntry
}

// Config holds the server configuration.
type Config struct {
	// QueryLang is the bundled tree-sitter-query grammar handle used to parse
	// opened documents via Parser. May be nil (see QueryParser).
	QueryLang registry.QueryLanguageHandle
	// Parser parses document text against QueryLang. May be nil.
	Parser QueryParser
	// Languages registers every target grammar documents may be written
	// against, keyed by the grammar basename inferred from a document's path
	// (see grammarNameFromPath).
	Languages []query.Language
	// Options is the initial diagnostic Options every request runs against.
	Options query.Options
}

// NewWorkspace creates a Workspace from cfg. If logger is nil, slog.Default()
// is used.
func NewWorkspace(logger *slog.Logger, cfg Config) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}

	languages := registry.NewLanguageStore()
	for _, lang := range cfg.Languages {
		languages.Put(lang)
	}

	documents := registry.NewDocumentStore()
	optionsStore := registry.NewOptionsStore(cfg.Options)

	w := &Workspace{
		logger:    logger.With(slog.String("component", "workspace")),
		sources:   source.NewRegistry(),
		documents: documents,
		languages: languages,
		options:   optionsStore,
		parser:    cfg.Parser,
		queryLang: cfg.QueryLang,
		debounces: make(map[string]*debounceEntry),
	}
	w.engine = diagnose.New(w.resolveImport, exec.NewPool(4), nil)
	return w
}

// resolveImport implements imports.DocumentLookup: it resolves an import URI
// against currently-open documents first, falling back to reading the
// sibling file from disk for modules that are not open in the editor.
func (w *Workspace) resolveImport(uri string) (query.Document, *query.Language, bool) {
	if doc, ok := w.documents.Get(uri); ok {
		return doc, w.languages.Lookup(doc), true
	}

	path, err := URIToPath(uri)
	if err != nil {
		return query.Document{}, nil, false
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return query.Document{}, nil, false
	}

	doc := w.buildDocument(uri, text)
	return doc, w.languages.Lookup(doc), true
}

func (w *Workspace) buildDocument(uri string, text []byte) query.Document {
	var tree *sitter.Tree
	if w.parser != nil {
		if t, err := w.parser(text); err == nil {
			tree = t
		} else {
			w.logger.Warn("failed to parse query document", slog.String("uri", uri), slog.String("error", err.Error()))
		}
	}

	grammarName := ""
	rawImports := docbuild.ParseImports(text)
	imports := rawImports
	if path, err := URIToPath(uri); err == nil {
		grammarName = grammarNameFromPath(path)
		imports = make([]query.Import, len(rawImports))
		for i, imp := range docbuild.ResolveImports(path, rawImports) {
			if imp.Resolved {
				imp.URI = PathToURI(imp.URI)
			}
			imports[i] = imp
		}
	}

	return registry.NewDocument(uri, text, tree, w.queryLang, grammarName, imports)
}

// DocumentOpened registers a newly opened document.
func (w *Workspace) DocumentOpened(uri string, text string) {
	doc := w.buildDocument(uri, []byte(text))
	w.documents.Put(uri, doc)

	sourceID := location.NewSourceID(uri)
	_ = w.sources.Register(sourceID, []byte(text))
}

// DocumentChanged updates a document's content after a full-text sync.
func (w *Workspace) DocumentChanged(uri string, text string) {
	doc := w.buildDocument(uri, []byte(text))
	w.documents.Put(uri, doc)

	sourceID := location.NewSourceID(uri)
	_ = w.sources.Register(sourceID, []byte(text))
}

// DocumentClosed removes a document and clears its published diagnostics.
func (w *Workspace) DocumentClosed(notify Notifier, uri string) {
	w.documents.Delete(uri)
	w.publishDiagnostics(notify, uri, nil)
}

// ScheduleAnalysis debounces a re-analysis of uri, cancelling any pending run.
func (w *Workspace) ScheduleAnalysis(glspCtx *glsp.Context, uri string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if existing, ok := w.debounces[uri]; ok {
		existing.timer.Stop()
		existing.cancel()
	}

	analyzeCtx, cancel := context.WithCancel(context.Background())
	entry := &debounceEntry{cancel: cancel}

	var notify Notifier
	if glspCtx != nil {
		notify = func(method string, params any) { glspCtx.Notify(method, params) }
	}

	entry.timer = time.AfterFunc(debounceDelay, func() {
		select {
		case <-analyzeCtx.Done():
			return
		default:
			w.AnalyzeAndPublish(notify, analyzeCtx, uri)
			w.debounceMu.Lock()
			if w.debounces[uri] == entry {
				delete(w.debounces, uri)
			}
			w.debounceMu.Unlock()
		}
	})
	w.debounces[uri] = entry
}

// AnalyzeAndPublish runs the diagnostic pipeline over uri and publishes the
// result via textDocument/publishDiagnostics.
func (w *Workspace) AnalyzeAndPublish(notify Notifier, ctx context.Context, uri string) {
	doc, ok := w.documents.Get(uri)
	if !ok {
		return
	}
	lang := w.languages.Lookup(doc)
	sourceID := location.NewSourceID(uri)

	issues := w.engine.Diagnose(ctx, sourceID, doc, lang, w.options.Read())

	renderer := diag.NewRenderer(diag.WithSourceProvider(w.sources))
	lspDiags := make([]protocol.Diagnostic, 0, len(issues))
	for _, issue := range issues {
		ld := renderer.LSPDiagnostic(issue)
		if ld == nil {
			continue
		}
		lspDiags = append(lspDiags, toProtocolDiagnostic(*ld))
	}

	w.publishDiagnostics(notify, uri, lspDiags)
}

func (w *Workspace) publishDiagnostics(notify Notifier, uri string, diagnostics []protocol.Diagnostic) {
	if notify == nil {
		return
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// diagnosticSource is the value glsp clients show as the origin of each
// published diagnostic.
const diagnosticSource = "tsquery-diag"

// toUInteger safely converts an int to protocol.UInteger. Negative values are
// clamped to 0; none of our computed offsets should ever go negative, but the
// wire type can't represent them.
func toUInteger(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n)
}

func toProtocolPosition(p diag.LSPPosition) protocol.Position {
	return protocol.Position{Line: toUInteger(p.Line), Character: toUInteger(p.Character)}
}

func toProtocolRange(r diag.LSPRange) protocol.Range {
	return protocol.Range{Start: toProtocolPosition(r.Start), End: toProtocolPosition(r.End)}
}

// toProtocolDiagnostic adapts a diag.LSPDiagnostic (our transport-agnostic
// representation) to glsp's protocol.Diagnostic wire type.
func toProtocolDiagnostic(ld diag.LSPDiagnostic) protocol.Diagnostic {
	sev := protocol.DiagnosticSeverity(ld.Severity)
	source := diagnosticSource

	d := protocol.Diagnostic{
		Range:    toProtocolRange(ld.Range),
		Severity: &sev,
		Code:     &protocol.IntegerOrString{Value: ld.Code},
		Source:   &source,
		Message:  ld.Message,
	}

	for _, rel := range ld.RelatedInformation {
		d.RelatedInformation = append(d.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{
				URI:   rel.Location.URI,
				Range: toProtocolRange(rel.Location.Range),
			},
			Message: rel.Message,
		})
	}

	return d
}

// ReplaceOptions swaps in new diagnostic Options, e.g. on workspace
// configuration change.
func (w *Workspace) ReplaceOptions(opts query.Options) {
	w.options.Replace(opts)
}
