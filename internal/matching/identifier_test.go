package matching

import "testing"

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		base    string
		subPart string
		isSub   bool
	}{
		{"sub with roman part", "12ii", "12", "ii", true},
		{"plain main question", "21", "21", "", false},
		{"sub with letter", "2a", "2", "a", true},
		{"parenthesised part", "12(ii)", "12", "ii", true},
		{"uppercase part lowered", "3B", "3", "b", true},
		{"letters only", "ii", "", "ii", true},
		{"single digit", "7", "7", "", false},
		{"digits then letters then digits", "4a1", "4", "a1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIdentifier(tt.raw)
			if got.Base != tt.base {
				t.Errorf("Base = %q, want %q", got.Base, tt.base)
			}
			if got.SubPart != tt.subPart {
				t.Errorf("SubPart = %q, want %q", got.SubPart, tt.subPart)
			}
			if got.IsSubQuestion != tt.isSub {
				t.Errorf("IsSubQuestion = %v, want %v", got.IsSubQuestion, tt.isSub)
			}
		})
	}
}

func TestParseIdentifierTotality(t *testing.T) {
	// Parsing must not panic and must always yield a base, possibly
	// empty, for any input.
	inputs := []string{"", " ", "(", ")", "(a)", "??", "12 ii", "0", "abc123"}
	for _, raw := range inputs {
		id := ParseIdentifier(raw)
		_ = id.Base
		_ = id.SubPart
	}
}
