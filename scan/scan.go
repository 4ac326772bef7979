// Package scan implements the single-pass AST scan over one parsed query
// document: node/field/supertype vocabulary checks, capture scope analysis,
// predicate/directive schema validation, and the stylistic lints. It is the
// last stage the Diagnostic Aggregator runs, after import resolution and
// pattern-structure validation.
package scan

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/slentz/tsquery-diag/catalog"
	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/location"
	"github.com/slentz/tsquery-diag/query"
)

// Scan runs every AST-scan checker over doc and returns the diagnostics
// found, in the order the underlying query cursor yields matches (the
// Diagnostic Aggregator does not re-sort this output).
//
// lang may be nil when the document's target grammar is unknown or
// unregistered; node/field/supertype checks are skipped in that case, since
// there is no vocabulary to check against.
func Scan(sourceID location.SourceID, doc query.Document, lang *query.Language, opts query.Options) []diag.Issue {
	if doc.Tree == nil || doc.QueryLang == nil {
		return nil
	}
	cat := catalog.For(doc.QueryLang)
	cq := cat.Diagnostics()

	cursor := sitter.NewQueryCursor()
	cursor.Exec(cq.Query, doc.Tree.RootNode())

	var issues []diag.Issue
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, doc.Text)
		for _, cap := range match.Captures {
			switch cq.KindForCapture(cap.Index) {
			case catalog.SiteNodeNamed:
				issues = append(issues, checkNodeNamed(sourceID, cap.Node, doc.Text, lang)...)
			case catalog.SiteNodeAnonymous:
				issues = append(issues, checkNodeAnonymous(sourceID, cap.Node, doc.Text, lang)...)
			case catalog.SiteSupertype:
				issues = append(issues, checkSupertype(sourceID, cap.Node, doc.Text, lang)...)
			case catalog.SiteField:
				issues = append(issues, checkField(sourceID, cap.Node, doc.Text, lang)...)
			case catalog.SiteError:
				issues = append(issues, checkError(sourceID, cap.Node)...)
			case catalog.SiteMissing:
				issues = append(issues, checkMissing(sourceID, cap.Node)...)
			case catalog.SitePredicate:
				issues = append(issues, checkPredicateOrDirective(sourceID, cap.Node, doc.Text, opts.Predicates, "predicate")...)
			case catalog.SiteDirective:
				issues = append(issues, checkPredicateOrDirective(sourceID, cap.Node, doc.Text, opts.Directives, "directive")...)
			case catalog.SiteEscape:
				issues = append(issues, checkEscape(sourceID, cap.Node, doc.Text)...)
			case catalog.SiteString:
				issues = append(issues, checkString(sourceID, cap.Node, doc.Text, opts)...)
			case catalog.SiteIdentifier:
				issues = append(issues, checkIdentifier(sourceID, cap.Node, doc.Text, opts)...)
			}
		}
	}

	issues = append(issues, scanCaptureScopes(sourceID, doc, opts, cat)...)

	return issues
}
