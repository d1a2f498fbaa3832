package matching

import "testing"

func TestScoreIdentical(t *testing.T) {
	texts := []string{
		"Find the value of x.",
		"Work out the area of the triangle.",
		"y x 2 4",
	}
	for _, s := range texts {
		if got := Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScoreEmpty(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"", "find the value of x"},
		{"find the value of x", ""},
		{"", ""},
		{"   ", "anything"},
	}
	for _, tt := range tests {
		if got := Score(tt.a, tt.b); got != 0 {
			t.Errorf("Score(%q, %q) = %v, want 0", tt.a, tt.b, got)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	pairs := [][2]string{
		{"find the value of x", "work out the perimeter of the garden"},
		{"show that y = 3", "show that y equals three"},
		{"12 m²", "calculate the area in m²"},
		{"a", "b"},
		{"solve the equation", "solve the equation x² + 4 = 13"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestScoreSubstringFloor(t *testing.T) {
	// Short math-expression extractions that are literal substrings of
	// the database text get a guaranteed floor.
	got := Score("y x 2 4", "find the graph of y x 2 4")
	if got < 0.7 {
		t.Errorf("Score = %v, want >= 0.7", got)
	}
}

func TestScoreSubstringRatio(t *testing.T) {
	// When the shorter string is most of the longer one, the ratio
	// beats the floor.
	got := Score("find the value of x", "find the value of xy")
	if got <= 0.7 {
		t.Errorf("Score = %v, want > 0.7", got)
	}
}

func TestScoreTypoTolerance(t *testing.T) {
	// A single dropped letter in a long word still aligns.
	got := Score(
		"work out the area of the rectangle",
		"work out the area of the rectngle",
	)
	if got != 1.0 {
		t.Errorf("Score = %v, want 1.0 (full alignment via fuzzy match)", got)
	}
}

func TestScoreShortWordsNoTolerance(t *testing.T) {
	// Words under five runes get zero edit tolerance.
	if withinEditTolerance("cat", "cot") {
		t.Error("expected no tolerance for 3-letter words")
	}
	if !withinEditTolerance("rectangle", "rectangl") {
		t.Error("expected one edit allowed for 9-letter word")
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"rectangle", "rectangl", 1},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPhraseSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 1},
		{"one empty", []string{"find the"}, nil, 0},
		{"full overlap", []string{"find the"}, []string{"find the"}, 1},
		{"partial overlap", []string{"find the", "show that"}, []string{"find the"}, 0.5},
		{"no overlap", []string{"find the"}, []string{"work out the"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := phraseSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("phraseSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractKeyPhrases(t *testing.T) {
	phrases := extractKeyPhrases("work out the total cost of 4 bags at £6 per bag")
	found := map[string]bool{}
	for _, p := range phrases {
		found[p] = true
	}
	if !found["work out the"] {
		t.Errorf("missing question phrase, got %v", phrases)
	}
	if !found["4 bags"] {
		t.Errorf("missing quantity pattern, got %v", phrases)
	}
}

func TestLongestConsecutiveRun(t *testing.T) {
	tests := []struct {
		name string
		idx  []int
		want int
	}{
		{"empty", nil, 0},
		{"all unmatched", []int{-1, -1}, 0},
		{"full order", []int{0, 1, 2, 3}, 4},
		{"null breaks run", []int{0, 1, -1, 2, 3}, 2},
		{"non consecutive", []int{0, 2, 4}, 1},
		{"late run", []int{5, 0, 1, 2}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := longestConsecutiveRun(tt.idx); got != tt.want {
				t.Errorf("longestConsecutiveRun(%v) = %d, want %d", tt.idx, got, tt.want)
			}
		})
	}
}
