package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"markhub/internal/config"
	"markhub/internal/model"
)

// OCRService extracts the printed question and the student's handwritten
// working from a homework image via the Gemini vision model. When no API
// key is configured it falls back to a mock so the rest of the pipeline
// stays testable.
type OCRService struct {
	gemini *geminiClient
}

// NewOCRService creates a new OCR service.
func NewOCRService(cfg *config.AIConfig) *OCRService {
	return &OCRService{gemini: newGeminiClient(cfg)}
}

// ExtractQuestion pulls the question text, question-number hint and
// student working out of an uploaded image.
func (s *OCRService) ExtractQuestion(ctx context.Context, mimeType, imageBase64 string) (*model.Extraction, error) {
	if imageBase64 == "" {
		return nil, fmt.Errorf("empty image")
	}
	if !s.gemini.enabled() {
		return s.mockExtraction(), nil
	}

	response, err := s.gemini.generateWithImage(ctx, s.gemini.config.Models.Vision,
		s.buildExtractionPrompt(), mimeType, imageBase64)
	if err != nil {
		return nil, err
	}

	var extraction model.Extraction
	if err := json.Unmarshal([]byte(response), &extraction); err != nil {
		return nil, fmt.Errorf("unparseable extraction response: %w", err)
	}
	extraction.QuestionNumber = strings.TrimSpace(extraction.QuestionNumber)
	return &extraction, nil
}

func (s *OCRService) buildExtractionPrompt() string {
	return `You are reading a photo of a student's homework page. Return ONLY valid JSON:
{
  "questionText": "the printed question text, exactly as written",
  "questionNumber": "the question number including any sub-part, e.g. 2a or 12ii, or empty if not visible",
  "studentWorking": "the student's handwritten working and final answer"
}

Transcribe faithfully. Do not correct the student's mathematics.`
}

func (s *OCRService) mockExtraction() *model.Extraction {
	return &model.Extraction{
		QuestionText:   "Find the value of x.",
		QuestionNumber: "2a",
		StudentWorking: "x = 4",
	}
}
