package matching

import (
	"regexp"
	"strings"
)

// Currency and area markers survive normalization because the key-phrase
// patterns match against them.
var nonComparable = regexp.MustCompile(`[^\p{L}\p{N}£²]+`)

// NormalizeForComparison lowercases, replaces punctuation with spaces and
// collapses runs of whitespace. Both matching stages must use this same
// routine so their scores stay comparable.
func NormalizeForComparison(s string) string {
	lowered := strings.ToLower(s)
	cleaned := nonComparable.ReplaceAllString(lowered, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}
