// Package imports resolves the `; inherits:` import chain declared on line 0
// of a query document, recursively diagnosing each imported module and
// folding its issues into one E_MODULE_ISSUES diagnostic per import.
//
// Cycle and diamond-import handling follows schema/load's loader: a single
// seen set per Walk call, only ever inserted into and never removed. A
// diamond-shaped (non-cyclic) import graph is therefore walked along one
// path only, and a cycle is broken silently — visiting an already-seen URI
// again produces no diagnostic, it is simply skipped.
package imports

import (
	"sync"

	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/location"
	"github.com/slentz/tsquery-diag/query"
)

// DocumentLookup resolves an import URI to its document snapshot and target
// language, mirroring the documents[uri] collaborator.
type DocumentLookup func(uri string) (query.Document, *query.Language, bool)

// DiagnoseFunc runs the full diagnostic pipeline (imports, pattern
// structure, and AST scan) over one document. The Walker calls back into it
// to diagnose an imported module, so the aggregator composing Walker must
// supply its own entry point here rather than Walker importing it directly.
type DiagnoseFunc func(sourceID location.SourceID, doc query.Document, lang *query.Language) []diag.Issue

// Walker resolves imports for a single top-level diagnose call. A Walker is
// not reused across requests: its seen set tracks one call's recursion, not
// global state.
type Walker struct {
	documents DocumentLookup
	diagnose  DiagnoseFunc

	mu   sync.Mutex
	seen map[string]bool
}

// NewWalker creates a Walker bound to documents and diagnose for one request.
func NewWalker(documents DocumentLookup, diagnose DiagnoseFunc) *Walker {
	return &Walker{
		documents: documents,
		diagnose:  diagnose,
		seen:      map[string]bool{},
	}
}

// Walk resolves every import declared by doc, returning one diagnostic per
// import: W_MODULE_NOT_FOUND if it cannot be resolved, E_MODULE_ISSUES
// aggregating the imported module's own diagnostics otherwise. Returns no
// issue at all for an import with zero aggregated diagnostics.
func (w *Walker) Walk(sourceID location.SourceID, doc query.Document) []diag.Issue {
	var issues []diag.Issue
	for _, imp := range doc.Imports {
		if issue, ok := w.walkImport(sourceID, imp); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

func (w *Walker) walkImport(sourceID location.SourceID, imp query.Import) (diag.Issue, bool) {
	span := location.Range(sourceID, 1, imp.StartColumn, 1, imp.EndColumn)

	if !imp.Resolved || imp.URI == "" {
		return diag.NewIssue(diag.Warning, diag.W_MODULE_NOT_FOUND, "Query module not found").
			WithSpan(span).
			WithDetail(diag.DetailKeyModuleURI, imp.URI).
			Build(), true
	}

	w.mu.Lock()
	if w.seen[imp.URI] {
		w.mu.Unlock()
		return diag.Issue{}, false
	}
	w.seen[imp.URI] = true
	w.mu.Unlock()

	childDoc, childLang, ok := w.documents(imp.URI)
	if !ok {
		return diag.NewIssue(diag.Warning, diag.W_MODULE_NOT_FOUND, "Query module not found").
			WithSpan(span).
			WithDetail(diag.DetailKeyModuleURI, imp.URI).
			Build(), true
	}

	childSourceID := location.NewSourceID(imp.URI)
	childIssues := w.diagnose(childSourceID, childDoc, childLang)
	if len(childIssues) == 0 {
		return diag.Issue{}, false
	}

	severity := diag.Hint
	related := make([]location.RelatedInfo, 0, len(childIssues))
	for _, ci := range childIssues {
		if ci.Severity().IsMoreSevereThan(severity) {
			severity = ci.Severity()
		}
		related = append(related, location.RelatedInfo{Span: ci.Span(), Message: ci.Message()})
	}

	return diag.NewIssue(severity, diag.E_MODULE_ISSUES, "Issues in module").
		WithSpan(span).
		WithPath(imp.URI, "imports["+imp.URI+"]").
		WithDetail(diag.DetailKeyModuleURI, imp.URI).
		WithRelated(related...).
		Build(), true
}
