package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"markhub/internal/model"
)

type stubPaperSource struct{ papers []*model.ExamPaper }

func (s stubPaperSource) GetAll(ctx context.Context) ([]*model.ExamPaper, error) {
	return s.papers, nil
}

type stubSchemeSource struct{ schemes []*model.MarkingScheme }

func (s stubSchemeSource) GetAll(ctx context.Context) ([]*model.MarkingScheme, error) {
	return s.schemes, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func marks(v int) *int { return &v }

func testCorpus() ([]*model.ExamPaper, []*model.MarkingScheme) {
	papers := []*model.ExamPaper{{
		ID: "paper-aqa",
		Metadata: model.PaperMetadata{
			Board: "AQA", Qualification: "MATHEMATICS", ExamCode: "1MA1/1H", Year: "2023",
		},
		Questions: model.QuestionsShape{
			List: []model.QuestionEntry{{
				Number: "2",
				Marks:  marks(5),
				SubQuestions: []model.SubQuestionEntry{
					{QuestionPart: "a", Text: "Find the value of x.", Marks: marks(2)},
				},
			}},
		},
	}}
	schemes := []*model.MarkingScheme{{
		ID: "scheme-aqa",
		ExamDetails: &model.ExamDetails{
			Board: "AQA", Qualification: "MATHEMATICS GCSE", PaperCode: "1MA1/1H", Date: "2023",
		},
		Questions: map[string]model.QuestionMarks{
			"2a": {Marks: 2, Answer: "x = 4"},
		},
	}}
	return papers, schemes
}

func TestDetectAttachesMarkingScheme(t *testing.T) {
	papers, schemes := testCorpus()
	svc := NewDetectionService(stubPaperSource{papers}, stubSchemeSource{schemes}, discardLogger())

	result, err := svc.Detect(context.Background(), "Find the value of x.", "2a")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !result.Found {
		t.Fatalf("expected match, got %q", result.Message)
	}
	if result.Match.MarkingScheme == nil {
		t.Fatal("marking scheme not attached")
	}
	if result.Match.MarkingScheme.QuestionMarks.Answer != "x = 4" {
		t.Errorf("QuestionMarks = %+v", result.Match.MarkingScheme.QuestionMarks)
	}
}

func TestDetectWithoutScheme(t *testing.T) {
	// A match with no resolvable scheme is still a match; the scheme field
	// just stays nil.
	papers, _ := testCorpus()
	svc := NewDetectionService(stubPaperSource{papers}, stubSchemeSource{}, discardLogger())

	result, err := svc.Detect(context.Background(), "Find the value of x.", "2a")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !result.Found {
		t.Fatalf("expected match, got %q", result.Message)
	}
	if result.Match.MarkingScheme != nil {
		t.Errorf("unexpected scheme %+v", result.Match.MarkingScheme)
	}
}

func TestDetectNotFound(t *testing.T) {
	papers, schemes := testCorpus()
	svc := NewDetectionService(stubPaperSource{papers}, stubSchemeSource{schemes}, discardLogger())

	result, err := svc.Detect(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if result.Found {
		t.Fatal("empty text produced a match")
	}
	if result.Message == "" {
		t.Error("missing message on negative result")
	}
}
