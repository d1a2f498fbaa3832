package matching

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Substring shortcut only applies when one side is shorter than this many
// characters; short math-expression extractions are often literal
// substrings of the longer database text.
const substringShortcutMax = 50

// substringFloor is the minimum score awarded by the substring shortcut.
const substringFloor = 0.7

// Question-pattern phrases extracted for phrase-set comparison.
var questionPhrases = []string{
	"work out the",
	"find the",
	"calculate the",
	"show that",
	"prove that",
	"solve the",
	"write down",
	"draw a",
	"complete the",
}

// Numeric quantity patterns that typically pin down which question a
// snippet came from.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*m²`),
	regexp.MustCompile(`\d+\s*£`),
	regexp.MustCompile(`£\s*\d+`),
	regexp.MustCompile(`\d+\s*per\s+\w+`),
	regexp.MustCompile(`\d+\s*bags`),
	regexp.MustCompile(`\d+\s*seeds`),
}

// Score returns a [0,1] confidence that two free-text strings refer to the
// same question. The combination weights and score floors are empirically
// tuned constants; treat them as parameters, not derived values.
func Score(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}

	na := NormalizeForComparison(a)
	nb := NormalizeForComparison(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	lenA := utf8.RuneCountInString(na)
	lenB := utf8.RuneCountInString(nb)
	if lenA < substringShortcutMax || lenB < substringShortcutMax {
		shorter, longer := na, nb
		shortLen, longLen := lenA, lenB
		if lenB < lenA {
			shorter, longer = nb, na
			shortLen, longLen = lenB, lenA
		}
		if strings.Contains(longer, shorter) {
			return math.Max(substringFloor, float64(shortLen)/float64(longLen))
		}
	}

	phraseScore := phraseSimilarity(extractKeyPhrases(na), extractKeyPhrases(nb))

	wordsA := strings.Fields(na)
	wordsB := strings.Fields(nb)
	wordScore, matchedTo := alignWords(wordsA, wordsB)

	denom := len(wordsA)
	if len(wordsB) > denom {
		denom = len(wordsB)
	}
	orderScore := float64(longestConsecutiveRun(matchedTo)) / float64(denom)

	combined := 0.4*phraseScore + 0.4*wordScore + 0.2*orderScore
	return math.Max(combined, math.Max(wordScore, orderScore))
}

func extractKeyPhrases(normalized string) []string {
	var phrases []string
	for _, p := range questionPhrases {
		if strings.Contains(normalized, p) {
			phrases = append(phrases, p)
		}
	}
	for _, re := range quantityPatterns {
		phrases = append(phrases, re.FindAllString(normalized, -1)...)
	}
	return phrases
}

// phraseSimilarity greedily pairs phrases by exact equality and divides the
// matched count by the larger list. Two empty lists are a perfect match;
// exactly one empty list is a total mismatch.
func phraseSimilarity(pa, pb []string) float64 {
	if len(pa) == 0 && len(pb) == 0 {
		return 1
	}
	if len(pa) == 0 || len(pb) == 0 {
		return 0
	}
	used := make([]bool, len(pb))
	matched := 0
	for _, p := range pa {
		for j, q := range pb {
			if !used[j] && p == q {
				used[j] = true
				matched++
				break
			}
		}
	}
	larger := len(pa)
	if len(pb) > larger {
		larger = len(pb)
	}
	return float64(matched) / float64(larger)
}

// alignWords matches each word of a against an unused word of b, exact
// first, then within a length-proportional edit-distance tolerance. It
// returns matched/max(|a|,|b|) and, per position of a, the consumed index
// of b (-1 when unmatched).
func alignWords(a, b []string) (float64, []int) {
	used := make([]bool, len(b))
	matchedTo := make([]int, len(a))
	matched := 0

	for i, wa := range a {
		matchedTo[i] = -1
		for j, wb := range b {
			if !used[j] && wa == wb {
				used[j] = true
				matchedTo[i] = j
				matched++
				break
			}
		}
		if matchedTo[i] >= 0 {
			continue
		}
		for j, wb := range b {
			if !used[j] && withinEditTolerance(wa, wb) {
				used[j] = true
				matchedTo[i] = j
				matched++
				break
			}
		}
	}

	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	if denom == 0 {
		return 0, matchedTo
	}
	return float64(matched) / float64(denom), matchedTo
}

// withinEditTolerance allows floor(max(len)/5) edits, so longer words
// tolerate proportionally more OCR noise. Words shorter than five runes get
// no tolerance at all.
func withinEditTolerance(a, b string) bool {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	tolerance := longest / 5
	if tolerance == 0 {
		return false
	}
	return editDistance(a, b) <= tolerance
}

// editDistance is the classic single-row Levenshtein computation. Word
// lengths here are small, so the quadratic cost is immaterial.
func editDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cur := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[j] = min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = cur
		}
	}
	return row[len(rb)]
}

// longestConsecutiveRun finds the longest run where each matched index of b
// is exactly one more than the previous. Unmatched positions break runs.
func longestConsecutiveRun(matchedTo []int) int {
	best, run := 0, 0
	prev := -2
	for _, j := range matchedTo {
		switch {
		case j < 0:
			run = 0
			prev = -2
		case j == prev+1:
			run++
			prev = j
		default:
			run = 1
			prev = j
		}
		if run > best {
			best = run
		}
	}
	return best
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
