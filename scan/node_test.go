package scan

import "testing"

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"hello"`, "hello"},
		{"`hello`", "hello"},
		{"hello", "hello"},
		{`"`, `"`},
		{"", ""},
		{`"mismatched`, `"mismatched`},
	}
	for _, tt := range tests {
		if got := stripQuotes(tt.in); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
