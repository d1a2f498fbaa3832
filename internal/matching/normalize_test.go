package matching

import "testing"

func TestNormalizeForComparison(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Find The Value", "find the value"},
		{"strips punctuation", "Find the value of x.", "find the value of x"},
		{"collapses whitespace", "work   out\tthe  area", "work out the area"},
		{"keeps currency marker", "Each bag costs £6.", "each bag costs £6"},
		{"keeps area marker", "an area of 12 m².", "an area of 12 m²"},
		{"empty input", "", ""},
		{"only punctuation", "?!.,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeForComparison(tt.input); got != tt.want {
				t.Errorf("NormalizeForComparison(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
