// Package docbuild holds the small, pure helpers shared by every collaborator
// that turns raw file bytes into a query.Document: inferring a document's
// target grammar from its path, and parsing its `; inherits:` import
// declaration. Both the language server (package lsp) and the batch CLIs
// (cmd/tsquery-diag, cmd/tsquery-lsp) build documents the same way, so the
// logic lives here once.
package docbuild

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/slentz/tsquery-diag/query"
)

// GrammarNameFromPath infers the target grammar basename from a query file's
// path, following the "queries/<grammar>/*.scm" layout convention used by
// nvim-treesitter, helix, and zed query bundles. Returns "" if the path does
// not follow that convention.
func GrammarNameFromPath(path string) string {
	dir := filepath.Dir(path)
	parent := filepath.Base(dir)
	grandparent := filepath.Base(filepath.Dir(dir))
	if grandparent != "queries" {
		return ""
	}
	return parent
}

// ParseImports extracts the `; inherits: a, b` declaration from the first
// line of text, if present. Column spans count bytes from line start,
// 1-based, matching location.Position's convention.
func ParseImports(text []byte) []query.Import {
	lineEnd := bytes.IndexByte(text, '\n')
	var line []byte
	if lineEnd < 0 {
		line = text
	} else {
		line = text[:lineEnd]
	}

	const marker = "inherits:"
	s := string(line)
	idx := strings.Index(s, marker)
	if idx < 0 || !strings.HasPrefix(strings.TrimSpace(s), ";") {
		return nil
	}

	rest := s[idx+len(marker):]
	col := idx + len(marker) + 1 // 1-based byte column right after the marker

	var imports []query.Import
	for _, part := range strings.Split(rest, ",") {
		leading := len(part) - len(strings.TrimLeft(part, " \t"))
		trimmed := strings.TrimSpace(part)
		start := col + leading
		end := start + len(trimmed)
		col += len(part) + 1 // +1 for the consumed comma
		if trimmed == "" {
			continue
		}
		imports = append(imports, query.Import{StartColumn: start, EndColumn: end, URI: trimmed})
	}
	return imports
}

// ResolveImports turns each raw import's bare grammar name (the text
// following "; inherits:", e.g. "c") into the sibling query file it
// references, following the same-basename-under-sibling-grammar-directory
// convention nvim-treesitter/helix/zed bundles use: "queries/cpp/x.scm"
// declaring "; inherits: c" refers to "queries/c/x.scm".
//
// path is the importing document's own path (or the path its URI maps to).
// Imports are returned unresolved (Resolved stays false, URI keeps the bare
// name) when path does not itself follow the "queries/<grammar>/*.scm"
// convention, since there is then no sibling grammar directory to resolve
// against.
func ResolveImports(path string, raw []query.Import) []query.Import {
	if GrammarNameFromPath(path) == "" {
		return raw
	}

	dir := filepath.Dir(path)
	grammarsRoot := filepath.Dir(dir)
	basename := filepath.Base(path)

	resolved := make([]query.Import, len(raw))
	for i, imp := range raw {
		resolved[i] = imp
		resolved[i].URI = filepath.Join(grammarsRoot, imp.URI, basename)
		resolved[i].Resolved = true
	}
	return resolved
}
