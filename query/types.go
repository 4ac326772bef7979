// Package query defines the data model shared by the diagnostics pipeline:
// parsed document snapshots, grammar introspection tables, predicate/directive
// schemas, and the layered Options a request runs against.
//
// These types are supplied externally in production (by a document store and
// a grammar registry — see package registry for reference implementations)
// and borrowed, never owned, by the diagnostic engine.
package query

import sitter "github.com/smacker/go-tree-sitter"

// Import describes one `; inherits:` reference found on the first line of a
// query document. StartColumn and EndColumn bound the referenced module name
// within that line; URI is the resolved document identifier when Resolved is
// true, and otherwise the module name as written.
type Import struct {
	StartColumn int
	EndColumn   int
	URI         string
	Resolved    bool
}

// Document is a borrowed snapshot of one open query document: its text, the
// parsed tree-sitter-query syntax tree, the grammar it targets (if known),
// and the imports declared on its first line.
type Document struct {
	URI         string
	Text        []byte
	Tree        *sitter.Tree
	QueryLang   *sitter.Language // the tree-sitter-query grammar Tree was parsed with
	GrammarName string
	Imports     []Import
}

// Symbol identifies one named or anonymous node kind published by a grammar.
type Symbol struct {
	Label string
	Named bool
}

// Language is the introspection surface a grammar registry publishes for one
// target language: its node/field vocabulary and supertype/subtype relations.
//
// An empty Supertypes map, or an entry mapping a supertype to an empty set,
// signals a grammar ABI too old to introspect subtypes; callers fall back to
// checking subtype labels against the symbol set instead (see the
// Node/Field/Supertype Checker).
type Language struct {
	GrammarName string
	Handle      *sitter.Language
	Symbols     map[Symbol]struct{}
	Fields      map[string]struct{}
	Supertypes  map[string]map[string]struct{}
}

// HasSymbol reports whether the grammar publishes the given (label, named) symbol.
func (l Language) HasSymbol(label string, named bool) bool {
	if l.Symbols == nil {
		return false
	}
	_, ok := l.Symbols[Symbol{Label: label, Named: named}]
	return ok
}

// HasField reports whether the grammar publishes the given field name.
func (l Language) HasField(name string) bool {
	if l.Fields == nil {
		return false
	}
	_, ok := l.Fields[name]
	return ok
}

// Subtypes returns the subtype set for a supertype label and whether the
// label is declared as a supertype at all.
func (l Language) Subtypes(supertype string) (map[string]struct{}, bool) {
	if l.Supertypes == nil {
		return nil, false
	}
	set, ok := l.Supertypes[supertype]
	return set, ok
}

// ParamType is the declared kind a predicate/directive parameter accepts.
type ParamType uint8

const (
	// ParamCapture accepts only capture-kind AST nodes.
	ParamCapture ParamType = iota
	// ParamString accepts only string-kind AST nodes.
	ParamString
	// ParamAny accepts either capture or string nodes.
	ParamAny
)

func (t ParamType) String() string {
	switch t {
	case ParamCapture:
		return "capture"
	case ParamString:
		return "string"
	case ParamAny:
		return "any"
	default:
		return "unknown"
	}
}

// Accepts reports whether a parameter of kind "capture" or "string" (as
// observed in the AST) satisfies this declared type.
func (t ParamType) Accepts(observedCapture bool) bool {
	switch t {
	case ParamCapture:
		return observedCapture
	case ParamString:
		return !observedCapture
	case ParamAny:
		return true
	default:
		return false
	}
}

// Arity is the presence requirement of a predicate/directive parameter spec.
type Arity uint8

const (
	// ArityRequired means the parameter must be present.
	ArityRequired Arity = iota
	// ArityOptional means the parameter may be omitted.
	ArityOptional
	// ArityVariadic means the spec repeats for every remaining argument. If
	// present, it must be the last element of a ParameterSpec slice.
	ArityVariadic
)

// ParameterSpec is one positional parameter declaration of a predicate or
// directive schema entry.
type ParameterSpec struct {
	Type        ParamType
	Arity       Arity
	Description string
}

// PredicateSchema maps a predicate or directive name to its ordered
// parameter specification. A nil or empty schema disables the corresponding
// checker entirely (see the Predicate & Directive Validator).
type PredicateSchema map[string][]ParameterSpec

// ValidCaptureTable maps a grammar basename to the ordered set of capture
// name suffixes (the text after "@") the grammar's highlighting conventions
// recognize, each with a human-readable description.
//
// The basename key lets one table describe conventions shared by several
// grammar variants (e.g. "javascript" entries also covering "typescript").
type ValidCaptureTable map[string]CaptureVocabulary

// CaptureVocabulary is the ordered capture-suffix -> description mapping for
// one grammar basename.
type CaptureVocabulary map[string]string

// StringArgumentStyle governs the Style & Lint Checker's quoting preference.
type StringArgumentStyle uint8

const (
	// StyleAny disables both the quoted- and unquoted-preference lints.
	StyleAny StringArgumentStyle = iota
	// StylePreferQuoted hints that bare identifier arguments should be quoted.
	StylePreferQuoted
	// StylePreferUnquoted hints that trivially-quoted arguments should be bare.
	StylePreferUnquoted
)

// Options aggregates the tables and toggles a diagnose call runs against.
//
// The table fields are published once and treated as immutable; Options
// itself is copied (not deep-cloned) when borrowed under a read lock, per
// the suspension-point discipline in the concurrency model (see
// registry.OptionsStore).
type Options struct {
	Predicates      PredicateSchema
	Directives      PredicateSchema
	ValidCaptures   ValidCaptureTable
	Languages       map[string]Language

	StringArgumentStyle          StringArgumentStyle
	WarnUnusedUnderscoreCaptures bool
}

// CaptureVocabularyFor returns the capture vocabulary for a grammar basename,
// and whether an entry exists at all (as opposed to existing but empty).
func (o Options) CaptureVocabularyFor(grammarBasename string) (CaptureVocabulary, bool) {
	if o.ValidCaptures == nil {
		return nil, false
	}
	vocab, ok := o.ValidCaptures[grammarBasename]
	return vocab, ok
}
