package catalog

import "github.com/slentz/tsquery-diag/query"

// DefaultPredicates is the schema for the predicate family every tree-sitter
// query engine recognizes: string/capture comparisons (#eq?, #match?,
// #any-of? and their "not" and "any-" variants) and the #is?/#is-not?
// property-test forms.
//
// A predicate schema entry's parameter list models the common call shape,
// not every operator's exact arity — #any-of? and #not-any-of? take one
// capture followed by a variadic run of string literals, matching how
// query engines build comma-separated text matchers.
func DefaultPredicates() query.PredicateSchema {
	comparison := []query.ParameterSpec{
		{Type: query.ParamCapture, Arity: query.ArityRequired, Description: "capture to test"},
		{Type: query.ParamAny, Arity: query.ArityRequired, Description: "capture or string to compare against"},
	}
	matchSet := []query.ParameterSpec{
		{Type: query.ParamCapture, Arity: query.ArityRequired, Description: "capture to test"},
		{Type: query.ParamString, Arity: query.ArityVariadic, Description: "candidate string literal"},
	}
	property := []query.ParameterSpec{
		{Type: query.ParamCapture, Arity: query.ArityRequired, Description: "capture to test"},
		{Type: query.ParamString, Arity: query.ArityRequired, Description: "property name"},
		{Type: query.ParamString, Arity: query.ArityOptional, Description: "expected property value"},
	}

	return query.PredicateSchema{
		"eq?":         comparison,
		"not-eq?":     comparison,
		"any-eq?":     comparison,
		"any-not-eq?": comparison,

		"match?":         matchSet,
		"not-match?":     matchSet,
		"any-match?":     matchSet,
		"any-not-match?": matchSet,
		"any-of?":        matchSet,
		"not-any-of?":    matchSet,

		"is?":     property,
		"is-not?": property,
	}
}

// DefaultDirectives is the schema for the directive family query engines
// execute for side effects rather than pattern filtering: #set! (attach an
// arbitrary property to a match) and #select-adjacent!/#strip! (post-process
// matched text).
func DefaultDirectives() query.PredicateSchema {
	set := []query.ParameterSpec{
		{Type: query.ParamCapture, Arity: query.ArityRequired, Description: "capture to annotate"},
		{Type: query.ParamString, Arity: query.ArityVariadic, Description: "property key/value token"},
	}
	strip := []query.ParameterSpec{
		{Type: query.ParamCapture, Arity: query.ArityRequired, Description: "capture to post-process"},
		{Type: query.ParamString, Arity: query.ArityRequired, Description: "regex to strip"},
	}

	return query.PredicateSchema{
		"set!":             set,
		"select-adjacent!": set,
		"strip!":           strip,
	}
}

// DefaultCaptureVocabulary is the syntax-highlighting capture vocabulary
// nvim-treesitter/Helix/Zed style query bundles converge on, keyed by
// grammar basename. Basenames absent here get no vocabulary entry, which
// disables the unsupported-capture-name lint entirely for that grammar (see
// query.Options.CaptureVocabularyFor).
func DefaultCaptureVocabulary() query.ValidCaptureTable {
	common := query.CaptureVocabulary{
		"variable":               "generic variable identifier",
		"variable.builtin":       "built-in variable (self, this, super)",
		"variable.parameter":     "function/method parameter",
		"variable.member":        "struct field or object property access",
		"constant":               "constant identifier",
		"constant.builtin":       "built-in constant (true, false, nil)",
		"module":                 "module or package name",
		"label":                  "goto/loop label",
		"string":                 "string literal",
		"string.escape":          "escape sequence within a string",
		"character":              "character literal",
		"number":                 "numeric literal",
		"boolean":                "boolean literal",
		"type":                   "type identifier",
		"type.builtin":           "built-in primitive type",
		"function":               "function/method definition or call",
		"function.builtin":       "built-in function",
		"function.macro":         "macro invocation",
		"parameter":              "formal parameter in a signature",
		"keyword":                "language keyword",
		"keyword.function":       "function/method declaration keyword",
		"keyword.return":         "return/yield keyword",
		"operator":               "operator token",
		"punctuation.bracket":    "bracket/paren/brace",
		"punctuation.delimiter":  "comma/semicolon/colon separator",
		"punctuation.special":    "interpolation delimiter or similar",
		"comment":                "comment",
		"comment.documentation":  "doc comment",
		"attribute":              "decorator or annotation",
		"property":               "object/class property",
		"constructor":            "constructor call or declaration",
		"tag":                    "markup tag name",
	}

	return query.ValidCaptureTable{
		"go":         common,
		"golang":     common,
		"python":     common,
		"javascript": common,
		"typescript": common,
		"tsx":        common,
		"php":        common,
	}
}
