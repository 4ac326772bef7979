package scan

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/slentz/tsquery-diag/location"
)

// nodeSpan converts a tree-sitter node's start/end points and byte offsets
// into a location.Span for the given source.
func nodeSpan(source location.SourceID, n *sitter.Node) location.Span {
	start := n.StartPoint()
	end := n.EndPoint()
	return location.RangeWithBytes(source,
		int(start.Row)+1, int(start.Column)+1, int(n.StartByte()),
		int(end.Row)+1, int(end.Column)+1, int(n.EndByte()))
}

// textOf returns the node's source text.
func textOf(n *sitter.Node, source []byte) string {
	return n.Content(source)
}

// stripQuotes removes a single pair of matching leading/trailing quote
// characters (" or `), if present.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' && last == '"') || (first == '`' && last == '`') {
		return s[1 : len(s)-1]
	}
	return s
}
