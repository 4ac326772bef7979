// Package tsquerydiag provides diagnostics for tree-sitter query files
// (.scm): pattern-structure validation, capture scoping, predicate/directive
// schema checking, node/field/supertype checking against a target grammar's
// published vocabulary, stylistic lints, and cross-document import-chain
// aggregation.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no dependencies on higher tiers; diag builds on location):
//	  - location: Source positions, spans, and canonical paths
//	  - diag: Structured diagnostics with stable error codes
//	  - query: Shared data model (Document, Language, Options, schemas)
//
//	Support tier:
//	  - catalog: Compiled meta-queries over the query grammar itself
//	  - cache: Pattern-structure scan memoization
//	  - exec: Blocking-worker executor for CPU-bound grammar compilation
//
//	Checker tier:
//	  - scan: Single-pass AST scan (vocabulary, scope, schema, style checkers)
//	  - pattern: Pattern Validator (real grammar compile of each pattern)
//	  - imports: Import Walker (cross-document aggregation, cycle detection)
//
//	Aggregation tier:
//	  - diagnose: Diagnostic Aggregator, the single Diagnose entry point
//	  - registry: Default document/language/options store implementations
//
// # Entry Points
//
// Running diagnostics over one open document:
//
//	import "github.com/slentz/tsquery-diag/diagnose"
//
//	engine := diagnose.New(documents.Resolve(languages), exec.NewPool(4), cache.New())
//	issues := engine.Diagnose(ctx, sourceID, doc, lang, options.Read())
//	for _, issue := range issues {
//	    // issue.Severity(), issue.Message(), issue.Span(), ...
//	}
//
// Command-line batch checking:
//
//	import "github.com/slentz/tsquery-diag/cmd/tsquery-diag"
//
// Language server binding:
//
//	import "github.com/slentz/tsquery-diag/cmd/tsquery-lsp"
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/slentz/tsquery-diag/diag]: Structured diagnostics
//   - [github.com/slentz/tsquery-diag/location]: Source location tracking
//   - [github.com/slentz/tsquery-diag/query]: Shared diagnostic data model
//   - [github.com/slentz/tsquery-diag/catalog]: Static query catalog
//   - [github.com/slentz/tsquery-diag/cache]: Pattern scan cache
//   - [github.com/slentz/tsquery-diag/exec]: Blocking executor
//   - [github.com/slentz/tsquery-diag/scan]: AST-scan checkers
//   - [github.com/slentz/tsquery-diag/pattern]: Pattern structure validator
//   - [github.com/slentz/tsquery-diag/imports]: Import walker
//   - [github.com/slentz/tsquery-diag/diagnose]: Diagnostic aggregator
//   - [github.com/slentz/tsquery-diag/registry]: Default collaborator stores
//   - [github.com/slentz/tsquery-diag/internal/source]: Document content registry
package tsquerydiag
