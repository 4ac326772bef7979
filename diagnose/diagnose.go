// Package diagnose implements the Diagnostic Aggregator: the single entry
// point that runs one query document through import resolution, pattern
// structure validation, and the AST scan, in that fixed order, and returns
// their issues concatenated with no deduplication or re-sorting.
package diagnose

import (
	"context"

	"github.com/slentz/tsquery-diag/cache"
	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/exec"
	"github.com/slentz/tsquery-diag/imports"
	"github.com/slentz/tsquery-diag/location"
	"github.com/slentz/tsquery-diag/pattern"
	"github.com/slentz/tsquery-diag/query"
	"github.com/slentz/tsquery-diag/scan"
)

// Engine is the Diagnostic Aggregator's default implementation: one
// long-lived value shared across requests, holding the process-wide pattern
// scan cache and blocking executor.
type Engine struct {
	documents imports.DocumentLookup
	executor  exec.BlockingExecutor
	cache     *cache.PatternScanCache
}

// New creates an Engine. documents resolves an import URI to its document
// snapshot and target language (the documents[uri]/languages[name]
// collaborators). A nil executor runs pattern validation inline; a nil
// cache is replaced by a new cache owned by this Engine.
func New(documents imports.DocumentLookup, executor exec.BlockingExecutor, patternCache *cache.PatternScanCache) *Engine {
	if executor == nil {
		executor = exec.Inline{}
	}
	if patternCache == nil {
		patternCache = cache.New()
	}
	return &Engine{documents: documents, executor: executor, cache: patternCache}
}

// Diagnose runs the full pipeline over doc and returns its diagnostics in
// order: imports first, then pattern-structure diagnostics, then AST-scan
// diagnostics. One import walker, and so one seen set, serves the whole
// recursion into imported modules.
func (e *Engine) Diagnose(ctx context.Context, sourceID location.SourceID, doc query.Document, lang *query.Language, opts query.Options) []diag.Issue {
	var walker *imports.Walker
	run := func(id location.SourceID, d query.Document, l *query.Language) []diag.Issue {
		var issues []diag.Issue
		issues = append(issues, walker.Walk(id, d)...)
		issues = append(issues, e.validatePatterns(ctx, id, d, l)...)
		issues = append(issues, scan.Scan(id, d, l, opts)...)
		return issues
	}
	walker = imports.NewWalker(e.documents, run)
	return run(sourceID, doc, lang)
}

func (e *Engine) validatePatterns(ctx context.Context, sourceID location.SourceID, doc query.Document, lang *query.Language) []diag.Issue {
	if doc.Tree == nil || lang == nil || lang.Handle == nil {
		return nil
	}

	validator := pattern.New(e.executor, e.cache)

	var issues []diag.Issue
	root := doc.Tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		def := root.NamedChild(i)
		patternText := doc.Text[def.StartByte():def.EndByte()]
		issues = append(issues, validator.Check(ctx, sourceID, lang.GrammarName, doc.Text, patternText, int(def.StartByte()), lang.Handle)...)
	}
	return issues
}
