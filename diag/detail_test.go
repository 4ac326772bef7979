package diag

import "testing"

func TestDetailKeyConstants(t *testing.T) {
	keys := []struct {
		name  string
		value string
	}{
		{"DetailKeyExpected", DetailKeyExpected},
		{"DetailKeyGot", DetailKeyGot},
		{"DetailKeyGrammar", DetailKeyGrammar},
		{"DetailKeyNodeType", DetailKeyNodeType},
		{"DetailKeyFieldName", DetailKeyFieldName},
		{"DetailKeySupertype", DetailKeySupertype},
		{"DetailKeyCapture", DetailKeyCapture},
		{"DetailKeyPredicate", DetailKeyPredicate},
		{"DetailKeyModuleURI", DetailKeyModuleURI},
		{"DetailKeyByteOffset", DetailKeyByteOffset},
	}

	for _, k := range keys {
		t.Run(k.name, func(t *testing.T) {
			if k.value == "" {
				t.Errorf("%s is empty", k.name)
			}
			for _, r := range k.value {
				if r >= 'A' && r <= 'Z' {
					t.Errorf("%s contains uppercase: %q", k.name, k.value)
					break
				}
			}
		})
	}
}

func TestDetailKeyConstants_Uniqueness(t *testing.T) {
	keys := []string{
		DetailKeyExpected,
		DetailKeyGot,
		DetailKeyGrammar,
		DetailKeyNodeType,
		DetailKeyFieldName,
		DetailKeySupertype,
		DetailKeyCapture,
		DetailKeyPredicate,
		DetailKeyModuleURI,
		DetailKeyByteOffset,
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key: %q", k)
		}
		seen[k] = true
	}
}

func TestExpectedGot(t *testing.T) {
	details := ExpectedGot("string", "int")

	if len(details) != 2 {
		t.Fatalf("ExpectedGot returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyExpected {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyExpected)
	}
	if details[0].Value != "string" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "string")
	}

	if details[1].Key != DetailKeyGot {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyGot)
	}
	if details[1].Value != "int" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "int")
	}
}

func TestGrammarNodeType(t *testing.T) {
	details := GrammarNodeType("javascript", "identifer")

	if len(details) != 2 {
		t.Fatalf("GrammarNodeType returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyGrammar {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyGrammar)
	}
	if details[0].Value != "javascript" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "javascript")
	}

	if details[1].Key != DetailKeyNodeType {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyNodeType)
	}
	if details[1].Value != "identifer" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "identifer")
	}
}

func TestSupertypeSubtype(t *testing.T) {
	details := SupertypeSubtype("expression", "statement")

	if len(details) != 2 {
		t.Fatalf("SupertypeSubtype returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeySupertype {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeySupertype)
	}
	if details[0].Value != "expression" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "expression")
	}

	if details[1].Key != DetailKeyNodeType {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyNodeType)
	}
	if details[1].Value != "statement" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "statement")
	}
}

func TestDetail_ZeroValue(t *testing.T) {
	var d Detail
	if d.Key != "" {
		t.Errorf("zero Detail.Key = %q; want empty", d.Key)
	}
	if d.Value != "" {
		t.Errorf("zero Detail.Value = %q; want empty", d.Value)
	}
}
