package diag

// Detail provides key-value context for diagnostic issues.
//
// Details are used to add structured information to issues that can be
// programmatically inspected by tools. Use the standard detail key constants
// to ensure consistent key naming across the codebase.
type Detail struct {
	Key   string
	Value string
}

// Standard detail keys for consistent diagnostic metadata.
//
// Use these constants to avoid stringly-typed drift and enable programmatic
// inspection of diagnostic details. Custom detail keys are permitted for
// domain-specific diagnostics; use lower_snake_case for custom keys.
const (
	// DetailKeyExpected is the expected parameter type or node kind.
	DetailKeyExpected = "expected"

	// DetailKeyGot is the actual parameter type or node kind received.
	DetailKeyGot = "got"

	// DetailKeyGrammar is the target grammar name involved in the diagnostic.
	DetailKeyGrammar = "grammar"

	// DetailKeyNodeType is the node type name involved (named or anonymous).
	DetailKeyNodeType = "node_type"

	// DetailKeyFieldName is the field name involved.
	DetailKeyFieldName = "field_name"

	// DetailKeySupertype is the supertype name involved in a subtype check.
	DetailKeySupertype = "supertype"

	// DetailKeyCapture is the capture text (including the leading "@").
	DetailKeyCapture = "capture"

	// DetailKeyPredicate is the predicate or directive name.
	DetailKeyPredicate = "predicate"

	// DetailKeyModuleURI is the URI of an imported query module.
	DetailKeyModuleURI = "module_uri"

	// DetailKeyByteOffset is a pattern-relative byte offset surfaced by the
	// pattern-structure compiler, before translation to an absolute position.
	DetailKeyByteOffset = "byte_offset"
)

// ExpectedGot creates a pair of details for type mismatch diagnostics.
//
// This is the standard pattern for reporting "expected X, got Y" errors.
func ExpectedGot(expected, got string) []Detail {
	return []Detail{
		{Key: DetailKeyExpected, Value: expected},
		{Key: DetailKeyGot, Value: got},
	}
}

// GrammarNodeType creates detail entries for vocabulary diagnostics.
func GrammarNodeType(grammar, nodeType string) []Detail {
	return []Detail{
		{Key: DetailKeyGrammar, Value: grammar},
		{Key: DetailKeyNodeType, Value: nodeType},
	}
}

// SupertypeSubtype creates detail entries for subtype-mismatch diagnostics.
func SupertypeSubtype(supertype, subtype string) []Detail {
	return []Detail{
		{Key: DetailKeySupertype, Value: supertype},
		{Key: DetailKeyNodeType, Value: subtype},
	}
}
