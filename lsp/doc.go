// Package lsp implements a Language Server Protocol server for tree-sitter
// query files (.scm): textDocument/didOpen runs the diagnostic pipeline at
// once, didChange schedules a debounced run, and didClose clears the
// document's diagnostics; results are published via
// textDocument/publishDiagnostics.
//
// The server is deliberately narrow: it covers document lifecycle and
// diagnostics publishing only. Navigation and editing features (hover,
// completion, go-to-definition, formatting, document symbols) are out of
// scope — there is no query-language semantic model here beyond what the
// diagnostic engine itself needs.
package lsp
