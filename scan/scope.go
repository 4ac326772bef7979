// Capture scope analysis: validating capture names against the grammar's
// highlighting vocabulary, and cross-checking capture references against the
// set of captures actually defined within their enclosing top-level pattern.
package scan

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/slentz/tsquery-diag/catalog"
	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/location"
	"github.com/slentz/tsquery-diag/query"
)

// scanCaptureScopes walks every top-level definition in the document and
// checks capture definitions and references within each one's own scope: a
// capture defined in one pattern is never visible to another.
func scanCaptureScopes(sourceID location.SourceID, doc query.Document, opts query.Options, cat *catalog.Catalog) []diag.Issue {
	var issues []diag.Issue

	defCursor := sitter.NewQueryCursor()
	defCursor.Exec(cat.Definitions().Query, doc.Tree.RootNode())
	for {
		m, ok := defCursor.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			issues = append(issues, checkPatternScope(sourceID, c.Node, doc, opts, cat)...)
			issues = append(issues, checkEmptyCapturePattern(sourceID, c.Node, doc, cat)...)
		}
	}
	return issues
}

func checkPatternScope(sourceID location.SourceID, pattern *sitter.Node, doc query.Document, opts query.Options, cat *catalog.Catalog) []diag.Issue {
	var issues []diag.Issue

	vocab, hasVocab := opts.CaptureVocabularyFor(doc.GrammarName)

	defined := map[string]struct{}{}
	referenced := map[string]struct{}{}
	firstDef := map[string]*sitter.Node{}

	defCursor := sitter.NewQueryCursor()
	defCursor.Exec(cat.CaptureDefinitions().Query, pattern)
	for {
		m, ok := defCursor.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			name := captureName(c.Node, doc.Text)
			if _, seen := defined[name]; !seen {
				firstDef[name] = c.Node
			}
			defined[name] = struct{}{}

			if hasVocab && !strings.HasPrefix(name, "_") && !isSupportedCapture(name, vocab) {
				issues = append(issues, diag.NewIssue(diag.Warning, diag.W_UNSUPPORTED_CAPTURE_NAME,
					fmt.Sprintf("Unsupported capture name %q (fix available)", "@"+name)).
					WithSpan(nodeSpan(sourceID, c.Node)).
					WithDetail(diag.DetailKeyCapture, "@"+name).
					WithAction(diag.ActionPrefixUnderscore).
					Build())
			}
		}
	}

	refCursor := sitter.NewQueryCursor()
	refCursor.Exec(cat.CaptureReferences().Query, pattern)
	for {
		m, ok := refCursor.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			name := captureName(c.Node, doc.Text)
			referenced[name] = struct{}{}
			if _, ok := defined[name]; !ok {
				issues = append(issues, diag.NewIssue(diag.Error, diag.E_UNDECLARED_CAPTURE,
					fmt.Sprintf("Undeclared capture: %q", "@"+name)).
					WithSpan(nodeSpan(sourceID, c.Node)).
					WithDetail(diag.DetailKeyCapture, "@"+name).
					Build())
			}
		}
	}

	if opts.WarnUnusedUnderscoreCaptures {
		for name, node := range firstDef {
			if !strings.HasPrefix(name, "_") {
				continue
			}
			if _, used := referenced[name]; used {
				continue
			}
			issues = append(issues, diag.NewIssue(diag.Warning, diag.W_UNUSED_UNDERSCORE_CAPTURE,
				"Unused `_`-prefixed capture (fix available)").
				WithSpan(nodeSpan(sourceID, node)).
				WithDetail(diag.DetailKeyCapture, "@"+name).
				Build())
		}
	}

	return issues
}

func checkEmptyCapturePattern(sourceID location.SourceID, pattern *sitter.Node, doc query.Document, cat *catalog.Catalog) []diag.Issue {
	capCursor := sitter.NewQueryCursor()
	capCursor.Exec(cat.Captures().Query, pattern)
	if m, ok := capCursor.NextMatch(); ok && len(m.Captures) > 0 {
		return nil
	}

	return []diag.Issue{
		diag.NewIssue(diag.Warning, diag.W_EMPTY_CAPTURE_PATTERN,
			"This pattern has no captures, and will not be processed").
			WithSpan(nodeSpan(sourceID, pattern)).
			WithTags(diag.TagUnnecessary).
			WithAction(diag.ActionRemove).
			Build(),
	}
}

// captureName strips the leading "@" from a capture node's text.
func captureName(n *sitter.Node, text []byte) string {
	return strings.TrimPrefix(textOf(n, text), "@")
}

// isSupportedCapture reports whether name, or one of its dotted prefixes, is
// published in vocab. "@variable.parameter.builtin" is supported whenever
// "variable.parameter" or "variable" is, matching standard highlight query
// capture conventions.
func isSupportedCapture(name string, vocab query.CaptureVocabulary) bool {
	for {
		if _, ok := vocab[name]; ok {
			return true
		}
		idx := strings.LastIndex(name, ".")
		if idx < 0 {
			return false
		}
		name = name[:idx]
	}
}
