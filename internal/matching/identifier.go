// Package matching implements the question-matching engine: identifier
// parsing, fuzzy text similarity, corpus search and marking-scheme
// resolution.
package matching

import "strings"

// QuestionIdentifier is a parsed question-number hint. Base is the leading
// digit run ("12" from "12ii"), SubPart the remaining letters/romans after
// the digits, lowercased with enclosing parentheses stripped. IsSubQuestion
// is true whenever the raw hint contained any alphabetic character.
type QuestionIdentifier struct {
	Base          string
	SubPart       string
	IsSubQuestion bool
}

// ParseIdentifier decomposes a raw question-number hint. Parsing is total:
// every input yields a Base (possibly empty) and an IsSubQuestion flag. A
// sub-question hint with an empty Base is anomalous; callers must surface a
// diagnostic because base filtering will never match it.
func ParseIdentifier(raw string) QuestionIdentifier {
	var id QuestionIdentifier
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			id.IsSubQuestion = true
			break
		}
	}

	i := 0
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	id.Base = raw[:i]

	rest := strings.ToLower(strings.TrimSpace(raw[i:]))
	rest = strings.TrimPrefix(rest, "(")
	rest = strings.TrimSuffix(rest, ")")
	id.SubPart = rest

	return id
}
