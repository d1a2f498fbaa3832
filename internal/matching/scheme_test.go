package matching

import (
	"context"
	"testing"

	"markhub/internal/model"
)

func TestStripQualifiers(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MATHEMATICS GCSE", "mathematics"},
		{"GCSE Mathematics", "mathematics"},
		{"Mathematics", "mathematics"},
		{"A-Level Further Mathematics", "further mathematics"},
		{"International GCSE Physics Higher", "physics"},
		{"Combined Science Foundation", "combined science"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripQualifiers(tt.in); got != tt.want {
			t.Errorf("stripQualifiers(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func schemeMatchInput() *model.ExamPaperMatch {
	return &model.ExamPaperMatch{
		Board:             "AQA",
		Qualification:     "MATHEMATICS",
		PaperCode:         "1MA1/1H",
		Year:              "2023",
		QuestionNumber:    "2",
		SubQuestionNumber: "A",
	}
}

func TestResolveSchemeQualifierInsensitive(t *testing.T) {
	// The scheme says "MATHEMATICS GCSE" where the paper says
	// "MATHEMATICS"; level words must not drag the subject score down.
	m := newTestMatcher(nil, []*model.MarkingScheme{aqaScheme()})

	got := m.ResolveMarkingScheme(context.Background(), schemeMatchInput())
	if got == nil {
		t.Fatal("expected scheme")
	}
	if got.ID != "scheme-aqa" {
		t.Errorf("ID = %q, want scheme-aqa", got.ID)
	}
	if got.QuestionMarks.Marks != 2 {
		t.Errorf("QuestionMarks.Marks = %d, want 2", got.QuestionMarks.Marks)
	}
}

func TestResolveSchemePaperCodeGate(t *testing.T) {
	// An otherwise identical scheme with a different paper code is a
	// different exam; similarity never overrides the code.
	scheme := aqaScheme()
	scheme.ExamDetails.PaperCode = "1MA1/1F"
	m := newTestMatcher(nil, []*model.MarkingScheme{scheme})

	if got := m.ResolveMarkingScheme(context.Background(), schemeMatchInput()); got != nil {
		t.Fatalf("resolved scheme %q across paper codes", got.ID)
	}
}

func TestResolveSchemeSkipsMissingDetails(t *testing.T) {
	bare := &model.MarkingScheme{
		ID: "scheme-bare",
		Questions: map[string]model.QuestionMarks{
			"2a": {Marks: 2},
		},
	}
	m := newTestMatcher(nil, []*model.MarkingScheme{bare, aqaScheme()})

	got := m.ResolveMarkingScheme(context.Background(), schemeMatchInput())
	if got == nil {
		t.Fatal("expected the scheme with exam details")
	}
	if got.ID != "scheme-aqa" {
		t.Errorf("ID = %q, want scheme-aqa", got.ID)
	}
}

func TestResolveSchemeMissingQuestionKey(t *testing.T) {
	scheme := aqaScheme()
	delete(scheme.Questions, "2a")
	m := newTestMatcher(nil, []*model.MarkingScheme{scheme})

	if got := m.ResolveMarkingScheme(context.Background(), schemeMatchInput()); got != nil {
		t.Fatalf("resolved scheme %q without the question key", got.ID)
	}
}

func TestResolveSchemeFlatKeyCasing(t *testing.T) {
	// Sub-question numbers arrive in whatever case extraction produced;
	// scheme keys are stored lowercase.
	m := newTestMatcher(nil, []*model.MarkingScheme{aqaScheme()})

	match := schemeMatchInput()
	match.SubQuestionNumber = "B"
	got := m.ResolveMarkingScheme(context.Background(), match)
	if got == nil {
		t.Fatal("expected scheme")
	}
	if got.QuestionMarks.Answer != "y = 3" {
		t.Errorf("QuestionMarks = %+v, want the 2b entry", got.QuestionMarks)
	}
}

func TestResolveSchemeMainQuestion(t *testing.T) {
	scheme := aqaScheme()
	scheme.Questions["7"] = model.QuestionMarks{Marks: 4, Answer: "28 bags"}
	m := newTestMatcher(nil, []*model.MarkingScheme{scheme})

	match := schemeMatchInput()
	match.QuestionNumber = "7"
	match.SubQuestionNumber = ""
	got := m.ResolveMarkingScheme(context.Background(), match)
	if got == nil {
		t.Fatal("expected scheme")
	}
	if got.QuestionMarks.Marks != 4 {
		t.Errorf("QuestionMarks.Marks = %d, want 4", got.QuestionMarks.Marks)
	}
}
