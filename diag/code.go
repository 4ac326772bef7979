package diag

// CodeCategory represents the semantic domain of an error code.
//
// Categories represent the semantic domain of an error, not necessarily the
// checker that emits it. Most codes are emitted exclusively by their
// category's checker, but some codes represent cross-cutting concerns.
type CodeCategory uint8

const (
	// CategorySentinel is for sentinel codes like E_LIMIT_REACHED and E_INTERNAL.
	CategorySentinel CodeCategory = iota

	// CategoryStructure is for pattern-structure compilation errors.
	CategoryStructure

	// CategorySyntax is for query-file parse errors (error/missing nodes).
	CategorySyntax

	// CategoryVocabulary is for node/field/supertype vocabulary errors.
	CategoryVocabulary

	// CategoryScope is for capture scoping errors and warnings.
	CategoryScope

	// CategorySchema is for predicate/directive schema violations.
	CategorySchema

	// CategoryStyle is for stylistic lints (escapes, quoting, empty captures).
	CategoryStyle

	// CategoryImport is for cross-document import aggregation.
	CategoryImport
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategorySentinel:
		return "sentinel"
	case CategoryStructure:
		return "structure"
	case CategorySyntax:
		return "syntax"
	case CategoryVocabulary:
		return "vocabulary"
	case CategoryScope:
		return "scope"
	case CategorySchema:
		return "schema"
	case CategoryStyle:
		return "style"
	case CategoryImport:
		return "import"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Error codes are stable identifiers that tools can match on, even when
// message text changes. The Code type uses unexported fields to enforce
// a closed set of valid codes—only codes defined in this package are valid.
//
// Code.String() values are globally unique across all categories. The
// CodeCategory is informational metadata for filtering and grouping.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's string representation (e.g., "E_INVALID_PATTERN").
func (c Code) String() string {
	return c.value
}

// Category returns the programmatic category for this code.
func (c Code) Category() CodeCategory {
	return c.cat
}

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool {
	return c.value == ""
}

// code is the unexported constructor—callers cannot create arbitrary codes.
func code(value string, cat CodeCategory) Code {
	return Code{value: value, cat: cat}
}

// Sentinel codes.
var (
	// E_LIMIT_REACHED is a sentinel code for explicit limit notification.
	// It does not automatically trigger Result.LimitReached(); use
	// Collector.LimitReached() to check limit status. Callers may inject
	// this code manually when desired.
	E_LIMIT_REACHED = code("E_LIMIT_REACHED", CategorySentinel)

	// E_INTERNAL indicates an unexpected invariant failure (internal bug indicator).
	E_INTERNAL = code("E_INTERNAL", CategorySentinel)
)

// Pattern-structure codes.
var (
	// E_INVALID_PATTERN indicates a pattern is structurally invalid against
	// the target grammar (compiled on the blocking worker).
	E_INVALID_PATTERN = code("E_INVALID_PATTERN", CategoryStructure)
)

// Syntax codes (query-file-level parse problems).
var (
	// E_SYNTAX indicates an error node in the query document's own grammar.
	E_SYNTAX = code("E_SYNTAX", CategorySyntax)

	// E_MISSING_NODE indicates a missing node reported by the query parser.
	E_MISSING_NODE = code("E_MISSING_NODE", CategorySyntax)
)

// Vocabulary codes.
var (
	// E_INVALID_NODE_TYPE indicates an unknown named or anonymous node literal.
	E_INVALID_NODE_TYPE = code("E_INVALID_NODE_TYPE", CategoryVocabulary)

	// E_INVALID_FIELD_NAME indicates an unknown field name.
	E_INVALID_FIELD_NAME = code("E_INVALID_FIELD_NAME", CategoryVocabulary)

	// E_NOT_A_SUPERTYPE indicates a node used in supertype position is not
	// declared as a supertype by the grammar.
	E_NOT_A_SUPERTYPE = code("E_NOT_A_SUPERTYPE", CategoryVocabulary)

	// E_NOT_A_SUBTYPE indicates a node is not a registered subtype of the
	// claimed supertype.
	E_NOT_A_SUBTYPE = code("E_NOT_A_SUBTYPE", CategoryVocabulary)
)

// Scope codes.
var (
	// E_UNDECLARED_CAPTURE indicates a capture reference with no matching
	// definition in the enclosing top-level pattern.
	E_UNDECLARED_CAPTURE = code("E_UNDECLARED_CAPTURE", CategoryScope)

	// W_UNSUPPORTED_CAPTURE_NAME indicates a capture name outside the grammar's
	// published vocabulary of capture names.
	W_UNSUPPORTED_CAPTURE_NAME = code("W_UNSUPPORTED_CAPTURE_NAME", CategoryScope)

	// W_UNUSED_UNDERSCORE_CAPTURE indicates an underscore-prefixed capture
	// definition with no reference anywhere in its pattern.
	W_UNUSED_UNDERSCORE_CAPTURE = code("W_UNUSED_UNDERSCORE_CAPTURE", CategoryScope)
)

// Schema (predicate/directive) codes.
var (
	// W_UNRECOGNIZED_PREDICATE indicates a predicate/directive name outside
	// the configured schema.
	W_UNRECOGNIZED_PREDICATE = code("W_UNRECOGNIZED_PREDICATE", CategorySchema)

	// W_PARAMETER_TYPE_MISMATCH indicates a parameter's kind (capture vs.
	// string) does not match its schema-declared type.
	W_PARAMETER_TYPE_MISMATCH = code("W_PARAMETER_TYPE_MISMATCH", CategorySchema)

	// W_UNEXPECTED_PARAMETER indicates more parameters were supplied than the
	// schema declares (and the last spec is not variadic).
	W_UNEXPECTED_PARAMETER = code("W_UNEXPECTED_PARAMETER", CategorySchema)

	// W_MISSING_PARAMETER indicates a required parameter spec was never
	// satisfied.
	W_MISSING_PARAMETER = code("W_MISSING_PARAMETER", CategorySchema)

	// W_EMPTY_PARAMETER_SPEC indicates the schema declares zero parameters for
	// a predicate/directive name, which is itself a configuration problem.
	W_EMPTY_PARAMETER_SPEC = code("W_EMPTY_PARAMETER_SPEC", CategorySchema)
)

// Style codes.
var (
	// W_UNNECESSARY_ESCAPE indicates a backslash escape of a character that
	// does not require escaping.
	W_UNNECESSARY_ESCAPE = code("W_UNNECESSARY_ESCAPE", CategoryStyle)

	// W_EMPTY_CAPTURE_PATTERN indicates a top-level pattern with no captures,
	// which the query engine will never report a match for.
	W_EMPTY_CAPTURE_PATTERN = code("W_EMPTY_CAPTURE_PATTERN", CategoryStyle)

	// H_UNNECESSARY_QUOTES indicates a quoted string argument that could be
	// written as a bare identifier.
	H_UNNECESSARY_QUOTES = code("H_UNNECESSARY_QUOTES", CategoryStyle)

	// H_UNQUOTED_STRING_ARGUMENT indicates a bare identifier argument that
	// should be quoted per the configured style.
	H_UNQUOTED_STRING_ARGUMENT = code("H_UNQUOTED_STRING_ARGUMENT", CategoryStyle)
)

// Import codes.
var (
	// W_MODULE_NOT_FOUND indicates an `; inherits:` import could not be
	// resolved to a document.
	W_MODULE_NOT_FOUND = code("W_MODULE_NOT_FOUND", CategoryImport)

	// E_MODULE_ISSUES aggregates diagnostics from an imported module into a
	// single issue at the importing range.
	E_MODULE_ISSUES = code("E_MODULE_ISSUES", CategoryImport)
)

// allCodes contains all defined codes for AllCodes() and uniqueness verification.
var allCodes = []Code{
	E_LIMIT_REACHED,
	E_INTERNAL,
	E_INVALID_PATTERN,
	E_SYNTAX,
	E_MISSING_NODE,
	E_INVALID_NODE_TYPE,
	E_INVALID_FIELD_NAME,
	E_NOT_A_SUPERTYPE,
	E_NOT_A_SUBTYPE,
	E_UNDECLARED_CAPTURE,
	W_UNSUPPORTED_CAPTURE_NAME,
	W_UNUSED_UNDERSCORE_CAPTURE,
	W_UNRECOGNIZED_PREDICATE,
	W_PARAMETER_TYPE_MISMATCH,
	W_UNEXPECTED_PARAMETER,
	W_MISSING_PARAMETER,
	W_EMPTY_PARAMETER_SPEC,
	W_UNNECESSARY_ESCAPE,
	W_EMPTY_CAPTURE_PATTERN,
	H_UNNECESSARY_QUOTES,
	H_UNQUOTED_STRING_ARGUMENT,
	W_MODULE_NOT_FOUND,
	E_MODULE_ISSUES,
}

// AllCodes returns all defined codes.
//
// This function is useful for tooling and testing. The returned slice is a
// copy; modifications do not affect the original.
func AllCodes() []Code {
	result := make([]Code, len(allCodes))
	copy(result, allCodes)
	return result
}

// CodesByCategory returns codes in the given category.
//
// The returned slice is a new allocation; modifications do not affect
// internal state.
func CodesByCategory(cat CodeCategory) []Code {
	var result []Code
	for _, c := range allCodes {
		if c.cat == cat {
			result = append(result, c)
		}
	}
	return result
}
