// Predicate and directive validation: checking a call's arguments against its
// configured parameter specification (arity and capture-vs-string type).
package scan

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/slentz/tsquery-diag/diag"
	"github.com/slentz/tsquery-diag/location"
	"github.com/slentz/tsquery-diag/query"
)

// checkPredicateOrDirective validates one `(#name? ...)` / `(#name! ...)`
// call's arguments against schema[name]. nameNode is the identifier capture
// site itself (the query grammar's `name` field); its parent is the call.
// kind is "predicate" or "directive", used only to word the
// unrecognized-name diagnostic.
//
// A nil schema disables the check for that call kind entirely: the caller's
// Options has no configured vocabulary to validate against.
func checkPredicateOrDirective(sourceID location.SourceID, nameNode *sitter.Node, text []byte, schema query.PredicateSchema, kind string) []diag.Issue {
	if schema == nil {
		return nil
	}
	name := textOf(nameNode, text)
	specs, ok := schema[name]
	if !ok {
		return []diag.Issue{
			diag.NewIssue(diag.Warning, diag.W_UNRECOGNIZED_PREDICATE,
				fmt.Sprintf("Unrecognized %s %q", kind, name)).
				WithSpan(nodeSpan(sourceID, nameNode)).
				WithDetail(diag.DetailKeyPredicate, name).
				Build(),
		}
	}

	if len(specs) == 0 {
		return []diag.Issue{
			diag.NewIssue(diag.Warning, diag.W_UNRECOGNIZED_PREDICATE,
				"Parameter specification must not be empty").
				WithSpan(nodeSpan(sourceID, nameNode)).
				WithDetail(diag.DetailKeyPredicate, name).
				Build(),
		}
	}

	call := nameNode.Parent()
	if call == nil {
		return nil
	}

	var args []*sitter.Node
	if params := call.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			arg := params.NamedChild(i)
			if arg.Type() == "missing" {
				continue
			}
			args = append(args, arg)
		}
	}

	var issues []diag.Issue
	argIdx := 0
	for specIdx := 0; specIdx < len(specs); specIdx++ {
		spec := specs[specIdx]

		if spec.Arity == query.ArityVariadic {
			for argIdx < len(args) {
				if issue, bad := checkParamType(sourceID, args[argIdx], text, spec.Type); bad {
					issues = append(issues, issue)
				}
				argIdx++
			}
			continue
		}

		if argIdx >= len(args) {
			if spec.Arity == query.ArityRequired {
				issues = append(issues, diag.NewIssue(diag.Warning, diag.W_MISSING_PARAMETER,
					fmt.Sprintf("Missing parameter of type %q", spec.Type)).
					WithSpan(nodeSpan(sourceID, call)).
					WithDetail(diag.DetailKeyPredicate, name).
					Build())
			}
			continue
		}

		if issue, bad := checkParamType(sourceID, args[argIdx], text, spec.Type); bad {
			issues = append(issues, issue)
		}
		argIdx++
	}

	for ; argIdx < len(args); argIdx++ {
		issues = append(issues, diag.NewIssue(diag.Warning, diag.W_UNEXPECTED_PARAMETER,
			fmt.Sprintf("Unexpected parameter: %q", textOf(args[argIdx], text))).
			WithSpan(nodeSpan(sourceID, args[argIdx])).
			WithDetail(diag.DetailKeyPredicate, name).
			Build())
	}

	return issues
}

func checkParamType(sourceID location.SourceID, arg *sitter.Node, text []byte, want query.ParamType) (diag.Issue, bool) {
	observedCapture := arg.Type() == "capture"
	if want.Accepts(observedCapture) {
		return diag.Issue{}, false
	}
	got := "string"
	if observedCapture {
		got = "capture"
	}
	issue := diag.NewIssue(diag.Warning, diag.W_PARAMETER_TYPE_MISMATCH,
		fmt.Sprintf("Parameter type mismatch: expected %q, got %q", want, got)).
		WithSpan(nodeSpan(sourceID, arg)).
		WithExpectedGot(want.String(), got).
		Build()
	return issue, true
}
