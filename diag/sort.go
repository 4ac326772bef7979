package diag

import "slices"

// SortForBatch returns a copy of issues sorted by the same total order
// Collector.Result applies internally (span/path, then code, then severity,
// then message — see compareIssues), for batch consumers (CLI JSON/text
// output) that want stable, snapshot-testable output across runs.
//
// The live LSP path does not call this: textDocument/publishDiagnostics
// keeps the engine's order-of-computation list, matching how an editor
// incrementally merges diagnostics per document rather than diffing a
// whole-batch snapshot.
func SortForBatch(issues []Issue) []Issue {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	slices.SortFunc(sorted, compareIssues)
	return sorted
}
