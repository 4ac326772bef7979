// Node/field/supertype checking: the part of the scan that cross-references
// literal node, field, and supertype names against one target grammar's
// published vocabulary (see query.Language).
package scan

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/location"
	"github.com/slentz/tsquery-diag/query"
)

func checkNodeNamed(sourceID location.SourceID, n *sitter.Node, text []byte, lang *query.Language) []diag.Issue {
	if lang == nil {
		return nil
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		return nil
	}
	label := textOf(name, text)
	if label == "_" || lang.HasSymbol(label, true) {
		return nil
	}
	return []diag.Issue{
		diag.NewIssue(diag.Error, diag.E_INVALID_NODE_TYPE, fmt.Sprintf("Invalid node type: %q", label)).
			WithSpan(nodeSpan(sourceID, name)).
			WithDetails(diag.GrammarNodeType(lang.GrammarName, label)...).
			Build(),
	}
}

func checkNodeAnonymous(sourceID location.SourceID, n *sitter.Node, text []byte, lang *query.Language) []diag.Issue {
	if lang == nil {
		return nil
	}
	label := stripUnnecessaryEscapes(stripQuotes(textOf(n, text)))
	if lang.HasSymbol(label, false) {
		return nil
	}
	return []diag.Issue{
		diag.NewIssue(diag.Error, diag.E_INVALID_NODE_TYPE, fmt.Sprintf("Invalid node type: %q", label)).
			WithSpan(nodeSpan(sourceID, n)).
			WithDetails(diag.GrammarNodeType(lang.GrammarName, label)...).
			Build(),
	}
}

func checkSupertype(sourceID location.SourceID, n *sitter.Node, text []byte, lang *query.Language) []diag.Issue {
	if lang == nil {
		return nil
	}
	label := stripQuotes(textOf(n, text))

	var issues []diag.Issue
	if !lang.HasSymbol(label, true) {
		issues = append(issues, diag.NewIssue(diag.Error, diag.E_NOT_A_SUPERTYPE, fmt.Sprintf("Node %q is not a supertype", label)).
			WithSpan(nodeSpan(sourceID, n)).
			WithDetails(diag.GrammarNodeType(lang.GrammarName, label)...).
			Build())
		return issues
	}

	sub := n.NextNamedSibling()
	if sub == nil {
		return issues
	}
	subLabel := subtypeLabel(sub, text)
	if subLabel == "" {
		return issues
	}

	subset, hasSubtypes := lang.Subtypes(label)
	if !hasSubtypes || len(subset) == 0 {
		// Old ABI: the grammar can't introspect subtypes of this supertype, so
		// fall back to checking the claimed subtype against the symbol set.
		if !lang.HasSymbol(subLabel, true) {
			issues = append(issues, diag.NewIssue(diag.Error, diag.E_INVALID_NODE_TYPE, fmt.Sprintf("Invalid node type: %q", subLabel)).
				WithSpan(nodeSpan(sourceID, sub)).
				WithDetails(diag.GrammarNodeType(lang.GrammarName, subLabel)...).
				Build())
		}
		return issues
	}

	if _, ok := subset[subLabel]; !ok {
		issues = append(issues, diag.NewIssue(diag.Error, diag.E_NOT_A_SUBTYPE, fmt.Sprintf("Node %q is not a subtype of %q", subLabel, label)).
			WithSpan(nodeSpan(sourceID, sub)).
			WithDetails(diag.SupertypeSubtype(label, subLabel)...).
			Build())
	}
	return issues
}

func subtypeLabel(n *sitter.Node, text []byte) string {
	switch n.Type() {
	case "named_node":
		if name := n.ChildByFieldName("name"); name != nil {
			return textOf(name, text)
		}
	case "anonymous_node":
		return stripUnnecessaryEscapes(stripQuotes(textOf(n, text)))
	}
	return ""
}

func checkField(sourceID location.SourceID, n *sitter.Node, text []byte, lang *query.Language) []diag.Issue {
	if lang == nil {
		return nil
	}
	label := textOf(n, text)
	if lang.HasField(label) {
		return nil
	}
	return []diag.Issue{
		diag.NewIssue(diag.Error, diag.E_INVALID_FIELD_NAME, fmt.Sprintf("Invalid field name: %q", label)).
			WithSpan(nodeSpan(sourceID, n)).
			WithDetail(diag.DetailKeyFieldName, label).
			Build(),
	}
}

func checkError(sourceID location.SourceID, n *sitter.Node) []diag.Issue {
	return []diag.Issue{
		diag.NewIssue(diag.Error, diag.E_SYNTAX, "Invalid syntax").
			WithSpan(nodeSpan(sourceID, n)).
			Build(),
	}
}

func checkMissing(sourceID location.SourceID, n *sitter.Node) []diag.Issue {
	return []diag.Issue{
		diag.NewIssue(diag.Error, diag.E_MISSING_NODE, fmt.Sprintf("Missing %q", n.Type())).
			WithSpan(nodeSpan(sourceID, n)).
			Build(),
	}
}
