package diag

// Tag is a closed set of machine-readable markers attached to an issue,
// mirroring LSP's DiagnosticTag concept (editors grey out UNNECESSARY ranges).
type Tag struct {
	value string
}

// String returns the tag's string representation (e.g., "UNNECESSARY").
func (t Tag) String() string {
	return t.value
}

// IsZero reports whether the tag is unset.
func (t Tag) IsZero() bool {
	return t.value == ""
}

func tag(value string) Tag {
	return Tag{value: value}
}

// TagUnnecessary marks a range as unused or redundant (e.g. an unused
// capture, or a pattern with no captures at all). Editors typically fade it.
var TagUnnecessary = tag("UNNECESSARY")

// ActionTag is a closed set of fix identifiers a diagnostic can carry so that
// a code-action provider knows, without re-deriving it from the message text,
// which mechanical edit resolves the issue.
type ActionTag struct {
	value string
}

// String returns the action tag's string representation.
func (a ActionTag) String() string {
	return a.value
}

// IsZero reports whether the action tag is unset.
func (a ActionTag) IsZero() bool {
	return a.value == ""
}

func action(value string) ActionTag {
	return ActionTag{value: value}
}

// The closed set of fixes a diagnostic may offer. Exactly one of these, or
// none, is carried per issue.
var (
	// ActionPrefixUnderscore renames a capture to start with "_".
	ActionPrefixUnderscore = action("PrefixUnderscore")

	// ActionRemove deletes the offending range entirely (an unused capture,
	// or a whole pattern with no captures).
	ActionRemove = action("Remove")

	// ActionRemoveBackslash strips an unnecessary escaping backslash.
	ActionRemoveBackslash = action("RemoveBackslash")

	// ActionTrim removes surrounding quote characters from a string argument.
	ActionTrim = action("Trim")

	// ActionEnquote wraps a bare identifier argument in quotes.
	ActionEnquote = action("Enquote")
)
