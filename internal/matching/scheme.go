package matching

import (
	"context"
	"strings"

	"markhub/internal/model"
)

// schemeThreshold is the minimum overall score a scheme must clear.
// exactPaperCodeBonus is applied at selection time only; paper-code
// equality is already a hard filter, but the bonus still separates schemes
// that spuriously share a code across tiers or boards.
const (
	schemeThreshold     = 0.7
	exactPaperCodeBonus = 0.1
)

// Words that indicate qualification level rather than subject; stripped
// before subject similarity so "MATHEMATICS GCSE" compares against
// "MATHEMATICS".
var levelQualifiers = map[string]bool{
	"gcse":          true,
	"a-level":       true,
	"alevel":        true,
	"as-level":      true,
	"a2-level":      true,
	"igcse":         true,
	"international": true,
	"advanced":      true,
	"higher":        true,
	"foundation":    true,
}

func stripQualifiers(qualification string) string {
	fields := strings.Fields(strings.ToLower(qualification))
	kept := fields[:0]
	for _, f := range fields {
		if levelQualifiers[f] {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// ResolveMarkingScheme finds the marking scheme for a confirmed paper match
// and extracts the mark allocation for the matched question. Paper-code
// equality is required outright; board, subject and date similarity only
// break ties. A nil result is a normal negative outcome.
func (m *Matcher) ResolveMarkingScheme(ctx context.Context, match *model.ExamPaperMatch) *model.MarkingSchemeMatch {
	schemes, err := m.schemes.GetAll(ctx)
	if err != nil {
		m.logger.Error("marking scheme fetch failed", "error", err)
		return nil
	}
	return m.resolveScheme(match, schemes)
}

func (m *Matcher) resolveScheme(match *model.ExamPaperMatch, schemes []*model.MarkingScheme) *model.MarkingSchemeMatch {
	var (
		best          *model.MarkingScheme
		bestOverall   float64
		bestSelection float64
	)

	for _, scheme := range schemes {
		if scheme.ExamDetails == nil {
			m.logger.Warn("skipping marking scheme without exam details",
				"schemeId", scheme.ID)
			continue
		}
		details := scheme.ExamDetails

		// Different paper codes are categorically different exams or
		// tiers; no fuzzy tolerance here.
		if details.PaperCode != match.PaperCode {
			continue
		}

		boardScore := Score(match.Board, details.Board)
		subjectScore := Score(stripQualifiers(match.Qualification), stripQualifiers(details.Qualification))
		yearScore := Score(match.Year, details.Date)

		// The 1.0 term stands in for the already-confirmed exact
		// paper-code match.
		overall := (boardScore + subjectScore + 1.0 + yearScore) / 4
		if overall <= schemeThreshold {
			m.logger.Info("marking scheme below threshold",
				"schemeId", scheme.ID,
				"score", overall,
				"threshold", schemeThreshold)
			continue
		}

		selection := overall
		if details.PaperCode == match.PaperCode {
			selection += exactPaperCodeBonus
		}
		if best == nil || selection > bestSelection {
			best = scheme
			bestOverall = overall
			bestSelection = selection
		}
	}

	if best == nil {
		m.logger.Info("no marking scheme resolved", "paperCode", match.PaperCode)
		return nil
	}

	flatKey := match.QuestionNumber + strings.ToLower(match.SubQuestionNumber)
	questionMarks, ok := best.Questions[flatKey]
	if !ok {
		m.logger.Warn("marking scheme missing question key",
			"schemeId", best.ID, "key", flatKey)
		return nil
	}

	return &model.MarkingSchemeMatch{
		ID:             best.ID,
		ExamDetails:    *best.ExamDetails,
		QuestionMarks:  questionMarks,
		TotalQuestions: best.TotalQuestions,
		TotalMarks:     best.TotalMarks,
		Confidence:     bestOverall,
	}
}
