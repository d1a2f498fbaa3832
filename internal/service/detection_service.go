package service

import (
	"context"
	"log/slog"

	"markhub/internal/matching"
	"markhub/internal/model"
)

// DetectionService runs the question-matching engine over the live corpus
// and attaches the resolved marking scheme to accepted matches.
type DetectionService struct {
	matcher *matching.Matcher
	logger  *slog.Logger
}

// NewDetectionService creates a new detection service. The repositories
// are passed straight through as the matcher's corpus sources.
func NewDetectionService(papers matching.PaperSource, schemes matching.SchemeSource, logger *slog.Logger) *DetectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetectionService{
		matcher: matching.NewMatcher(papers, schemes, logger),
		logger:  logger,
	}
}

// Detect locates the question the extracted text came from and, on
// success, cross-references its marking scheme. The only error surfaced is
// matching.ErrMissingMarks; every other failure degrades to Found false.
func (s *DetectionService) Detect(ctx context.Context, questionText, questionNumberHint string) (model.DetectionResult, error) {
	result, err := s.matcher.DetectQuestion(ctx, questionText, questionNumberHint)
	if err != nil {
		return model.DetectionResult{}, err
	}
	if !result.Found {
		return result, nil
	}

	if scheme := s.matcher.ResolveMarkingScheme(ctx, result.Match); scheme != nil {
		result.Match.MarkingScheme = scheme
	} else {
		s.logger.Info("match accepted without marking scheme",
			"paperCode", result.Match.PaperCode,
			"question", result.Match.QuestionNumber)
	}
	return result, nil
}
