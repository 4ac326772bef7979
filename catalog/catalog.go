// Package catalog compiles the fixed set of meta-queries the diagnostics
// engine uses to enumerate the syntactic sites of interest inside a parsed
// query document, and to run the sub-scans each checker needs (capture
// definitions, capture references, and "does this pattern contain any
// capture at all").
//
// The catalog is compiled once per process, following termfx-morfx's
// internal/matcher package: a *sitter.Query is compiled from a query-grammar
// source string and driven with a *sitter.QueryCursor. Unlike that package,
// every compiled query here additionally carries a captureIndex -> SiteKind
// table built once from query.CaptureNameForId, so scan dispatch switches on
// a typed enum instead of re-parsing capture-name strings per match.
package catalog

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// SiteKind tags one syntactic site the Static Query Catalog knows how to
// locate. Every capture name in DiagnosticsQuery resolves to exactly one
// SiteKind at compile time.
type SiteKind uint8

const (
	SiteUnknown SiteKind = iota
	SiteNodeNamed
	SiteNodeAnonymous
	SiteSupertype
	SiteField
	SiteError
	SiteMissing
	SiteCaptureReference
	SiteCaptureDefinition
	SitePredicate
	SiteDirective
	SiteEscape
	SitePattern
	SiteString
	SiteIdentifier
)

// String returns the capture name a SiteKind was derived from, for logging.
func (k SiteKind) String() string {
	switch k {
	case SiteNodeNamed:
		return "node.named"
	case SiteNodeAnonymous:
		return "node.anonymous"
	case SiteSupertype:
		return "supertype"
	case SiteField:
		return "field"
	case SiteError:
		return "error"
	case SiteMissing:
		return "missing"
	case SiteCaptureReference:
		return "capture.reference"
	case SiteCaptureDefinition:
		return "capture.definition"
	case SitePredicate:
		return "predicate"
	case SiteDirective:
		return "directive"
	case SiteEscape:
		return "escape"
	case SitePattern:
		return "pattern"
	case SiteString:
		return "string"
	case SiteIdentifier:
		return "identifier"
	default:
		return "unknown"
	}
}

var siteKindByCaptureName = map[string]SiteKind{
	"node.named":         SiteNodeNamed,
	"node.anonymous":     SiteNodeAnonymous,
	"supertype":          SiteSupertype,
	"field":              SiteField,
	"error":              SiteError,
	"missing":            SiteMissing,
	"capture.reference":  SiteCaptureReference,
	"capture.definition": SiteCaptureDefinition,
	"predicate":          SitePredicate,
	"directive":          SiteDirective,
	"escape":             SiteEscape,
	"pattern":            SitePattern,
	"string":             SiteString,
	"identifier":         SiteIdentifier,
}

// CompiledQuery pairs a compiled tree-sitter query with a per-capture-index
// SiteKind lookup table, so callers never re-parse capture name strings
// after compile time.
type CompiledQuery struct {
	Query   *sitter.Query
	kinds   []SiteKind // indexed by capture index; SiteUnknown if not in siteKindByCaptureName
}

// KindForCapture returns the SiteKind for a capture index, or SiteUnknown if
// the query's capture names don't participate in the SiteKind vocabulary
// (e.g. DefinitionsQuery's plain "@def" capture).
func (c *CompiledQuery) KindForCapture(index uint32) SiteKind {
	if int(index) >= len(c.kinds) {
		return SiteUnknown
	}
	return c.kinds[index]
}

func compile(source string, lang *sitter.Language) *CompiledQuery {
	q, err := sitter.NewQuery([]byte(source), lang)
	if err != nil {
		// A compilation failure here is a program-level bug: the meta-queries
		// are fixed and checked against the query grammar at development time.
		panic(fmt.Sprintf("catalog: failed to compile meta-query: %v\n%s", err, source))
	}

	kinds := make([]SiteKind, q.CaptureCount())
	for i := range kinds {
		name := q.CaptureNameForId(uint32(i))
		kinds[i] = siteKindByCaptureName[name]
	}

	return &CompiledQuery{Query: q, kinds: kinds}
}

// Catalog is the fixed, process-wide set of compiled meta-queries over one
// query-grammar *sitter.Language. All queries are compiled together on the
// first call to any of its query accessors and never mutated thereafter.
type Catalog struct {
	lang *sitter.Language

	once sync.Once

	diagnostics        *CompiledQuery
	definitions        *CompiledQuery
	captureDefinitions *CompiledQuery
	captureReferences  *CompiledQuery
	captures           *CompiledQuery
}

var (
	globalMu    sync.Mutex
	globalByLng = map[*sitter.Language]*Catalog{}
)

// For returns the process-wide Catalog for the given query-grammar language
// handle, compiling its meta-queries on first use. Subsequent calls with the
// same handle return the same, already-compiled Catalog.
func For(lang *sitter.Language) *Catalog {
	globalMu.Lock()
	defer globalMu.Unlock()

	if c, ok := globalByLng[lang]; ok {
		return c
	}
	c := &Catalog{lang: lang}
	globalByLng[lang] = c
	return c
}

func (c *Catalog) ensureCompiled() {
	c.once.Do(func() {
		c.diagnostics = compile(diagnosticsQuerySource, c.lang)
		c.definitions = compile(definitionsQuerySource, c.lang)
		c.captureDefinitions = compile(captureDefinitionsQuerySource, c.lang)
		c.captureReferences = compile(captureReferencesQuerySource, c.lang)
		c.captures = compile(capturesQuerySource, c.lang)
	})
}

// Diagnostics returns the multi-capture query tagging every AST node of
// interest with a SiteKind (see the SiteKind constants).
func (c *Catalog) Diagnostics() *CompiledQuery {
	c.ensureCompiled()
	return c.diagnostics
}

// Definitions returns the query matching each top-level `(program (definition) @def)`.
func (c *Catalog) Definitions() *CompiledQuery {
	c.ensureCompiled()
	return c.definitions
}

// CaptureDefinitions returns the query matching capture nodes in definition
// position (child of named-node, list, anonymous-node, grouping, or missing-node).
func (c *Catalog) CaptureDefinitions() *CompiledQuery {
	c.ensureCompiled()
	return c.captureDefinitions
}

// CaptureReferences returns the query matching captures appearing inside
// `(parameters ...)`.
func (c *Catalog) CaptureReferences() *CompiledQuery {
	c.ensureCompiled()
	return c.captureReferences
}

// Captures returns the query enumerating all captures under a subtree.
func (c *Catalog) Captures() *CompiledQuery {
	c.ensureCompiled()
	return c.captures
}

const diagnosticsQuerySource = `
(named_node) @node.named
(anonymous_node) @node.anonymous
(supertype) @supertype
(field_definition name: (identifier) @field)
(ERROR) @error
(MISSING) @missing
(predicate name: (identifier) @predicate)
(directive name: (identifier) @directive)
(escape_sequence) @escape
[(named_node) (anonymous_node) (grouping) (list)] @pattern
(string) @string
(identifier) @identifier

[
  (named_node (capture) @capture.definition)
  (list (capture) @capture.definition)
  (anonymous_node (capture) @capture.definition)
  (grouping (capture) @capture.definition)
  (missing_node (capture) @capture.definition)
]

(parameters (capture) @capture.reference)
`

const definitionsQuerySource = `
(program (definition) @def)
`

const captureDefinitionsQuerySource = `
[
  (named_node (capture) @capture.definition)
  (list (capture) @capture.definition)
  (anonymous_node (capture) @capture.definition)
  (grouping (capture) @capture.definition)
  (missing_node (capture) @capture.definition)
]
`

const captureReferencesQuerySource = `
(parameters (capture) @capture.reference)
`

const capturesQuerySource = `
(capture) @capture
`
