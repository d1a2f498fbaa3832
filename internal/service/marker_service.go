package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"markhub/internal/config"
	"markhub/internal/model"
)

// MarkerService marks the student's working against the resolved marking
// scheme's allocation.
type MarkerService struct {
	gemini *geminiClient
}

// NewMarkerService creates a new marker service.
func NewMarkerService(cfg *config.AIConfig) *MarkerService {
	return &MarkerService{gemini: newGeminiClient(cfg)}
}

// MarkWork awards marks for the student's working. The mark ceiling comes
// from the matched question, never from the model's own judgement.
func (s *MarkerService) MarkWork(ctx context.Context, extraction *model.Extraction, match *model.ExamPaperMatch) (*model.MarkingFeedback, error) {
	if !s.gemini.enabled() {
		return s.mockFeedback(match), nil
	}

	prompt := s.buildMarkingPrompt(extraction, match)
	response, err := s.gemini.generate(ctx, s.gemini.config.Models.Marker, prompt)
	if err != nil {
		return s.mockFeedback(match), nil
	}

	var feedback model.MarkingFeedback
	if err := json.Unmarshal([]byte(response), &feedback); err != nil {
		return s.mockFeedback(match), nil
	}

	feedback.MaxMarks = match.Marks
	if feedback.AwardedMarks > match.Marks {
		feedback.AwardedMarks = match.Marks
	}
	if feedback.AwardedMarks < 0 {
		feedback.AwardedMarks = 0
	}
	return &feedback, nil
}

func (s *MarkerService) buildMarkingPrompt(extraction *model.Extraction, match *model.ExamPaperMatch) string {
	guidance := ""
	if match.MarkingScheme != nil {
		qm := match.MarkingScheme.QuestionMarks
		guidance = fmt.Sprintf("\nExpected answer: %s\nMark scheme guidance:\n- %s",
			qm.Answer, strings.Join(qm.Guidance, "\n- "))
	}

	return fmt.Sprintf(`You are an examiner marking one homework question. Return ONLY valid JSON:
{
  "awardedMarks": 0,
  "maxMarks": %d,
  "comments": ["specific comment on the working"],
  "summary": "one sentence overall verdict"
}

Question: %s
Marks available: %d%s

Student's working:
%s

Award marks strictly per the scheme. Partial credit for correct method with
arithmetic slips. Never exceed the marks available.`,
		match.Marks, match.DatabaseQuestionText, match.Marks, guidance, extraction.StudentWorking)
}

func (s *MarkerService) mockFeedback(match *model.ExamPaperMatch) *model.MarkingFeedback {
	return &model.MarkingFeedback{
		AwardedMarks: 0,
		MaxMarks:     match.Marks,
		Comments:     []string{"marking unavailable: AI marker is not configured"},
		Summary:      "not marked",
	}
}
