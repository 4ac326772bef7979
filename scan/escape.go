package scan

// isRecognizedEscape reports whether r is the character following a
// backslash in one of the escape sequences the query grammar recognizes
// inside string and anonymous-node literals.
func isRecognizedEscape(r rune) bool {
	switch r {
	case '"', '\\', 'n', 'r', 't', '0':
		return true
	default:
		return false
	}
}

// stripUnnecessaryEscapes drops backslashes that precede a character not in
// the recognized-escape set, so two differently-escaped spellings of the
// same label compare equal (e.g. `\-` and `-` inside an anonymous node).
func stripUnnecessaryEscapes(text string) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) && !isRecognizedEscape(runes[i+1]) {
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}
