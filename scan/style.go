// Stylistic lints: unnecessary escape sequences and the configured
// string-argument quoting preference.
package scan

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/location"
	"github.com/slentz/tsquery-diag/query"
)

var bareIdentifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-][a-zA-Z0-9_.-]*$`)

func checkEscape(sourceID location.SourceID, n *sitter.Node, text []byte) []diag.Issue {
	content := textOf(n, text)
	runes := []rune(content)
	if len(runes) < 2 || runes[0] != '\\' {
		return nil
	}
	if isRecognizedEscape(runes[1]) {
		return nil
	}
	return []diag.Issue{
		diag.NewIssue(diag.Warning, diag.W_UNNECESSARY_ESCAPE,
			"Unnecessary escape sequence (fix available)").
			WithSpan(nodeSpan(sourceID, n)).
			WithAction(diag.ActionRemoveBackslash).
			Build(),
	}
}

// checkString applies the prefer-unquoted style: a quoted argument whose
// content is a bare identifier could be written without quotes.
func checkString(sourceID location.SourceID, n *sitter.Node, text []byte, opts query.Options) []diag.Issue {
	if opts.StringArgumentStyle != query.StylePreferUnquoted {
		return nil
	}
	if n.Parent() == nil || n.Parent().Type() != "parameters" {
		return nil
	}
	if n.NamedChildCount() > 0 {
		// Has escape subexpressions: not a bare quoted identifier.
		return nil
	}
	inner := stripQuotes(textOf(n, text))
	if !bareIdentifierPattern.MatchString(inner) {
		return nil
	}
	return []diag.Issue{
		diag.NewIssue(diag.Hint, diag.H_UNNECESSARY_QUOTES,
			"Unnecessary quotations (fix available)").
			WithSpan(expandByOneColumn(nodeSpan(sourceID, n))).
			WithAction(diag.ActionTrim).
			Build(),
	}
}

// expandByOneColumn extends a span outward by one column on each side, to
// include the quote characters the span's own node excludes.
func expandByOneColumn(span location.Span) location.Span {
	start, end := span.Start, span.End
	start.Column--
	end.Column++
	if start.HasByte() {
		start.Byte--
	}
	if end.HasByte() {
		end.Byte++
	}
	return location.Span{Source: span.Source, Start: start, End: end}
}

// checkIdentifier applies the prefer-quoted style: a bare identifier argument
// passed to a predicate/directive call could be written as a quoted string.
func checkIdentifier(sourceID location.SourceID, n *sitter.Node, text []byte, opts query.Options) []diag.Issue {
	if opts.StringArgumentStyle != query.StylePreferQuoted {
		return nil
	}
	if n.Parent() == nil || n.Parent().Type() != "parameters" {
		return nil
	}
	return []diag.Issue{
		diag.NewIssue(diag.Hint, diag.H_UNQUOTED_STRING_ARGUMENT,
			"Unquoted string argument (fix available)").
			WithSpan(nodeSpan(sourceID, n)).
			WithAction(diag.ActionEnquote).
			Build(),
	}
}
