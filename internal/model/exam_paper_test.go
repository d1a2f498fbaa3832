package model

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func marksPtr(v int) *int { return &v }

func TestPaperMetadataMissingField(t *testing.T) {
	tests := []struct {
		name string
		md   PaperMetadata
		want string
	}{
		{"complete", PaperMetadata{Board: "AQA", Qualification: "MATHEMATICS", ExamCode: "X1", Year: "2023"}, ""},
		{"no board", PaperMetadata{Qualification: "MATHEMATICS", ExamCode: "X1", Year: "2023"}, "board"},
		{"no qualification", PaperMetadata{Board: "AQA", ExamCode: "X1", Year: "2023"}, "qualification"},
		{"no examCode", PaperMetadata{Board: "AQA", Qualification: "MATHEMATICS", Year: "2023"}, "examCode"},
		{"no year", PaperMetadata{Board: "AQA", Qualification: "MATHEMATICS", ExamCode: "X1"}, "year"},
		{"tier optional", PaperMetadata{Board: "AQA", Qualification: "MATHEMATICS", ExamCode: "X1", Year: "2023", Tier: ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.md.MissingField(); got != tt.want {
				t.Errorf("MissingField() = %q, want %q", got, tt.want)
			}
			if got := tt.md.Complete(); got != (tt.want == "") {
				t.Errorf("Complete() = %v, want %v", got, tt.want == "")
			}
		})
	}
}

func TestQuestionsShapeUnmarshalJSONList(t *testing.T) {
	data := []byte(`[
		{"number": "1", "text": "Work out 3 + 4.", "marks": 1},
		{"number": "2", "marks": 5, "subQuestions": [
			{"questionPart": "a", "text": "Find the value of x.", "marks": 2}
		]}
	]`)

	var q QuestionsShape
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if q.IsMap() {
		t.Fatal("array document decoded as map shape")
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	if q.List[1].SubQuestions[0].QuestionPart != "a" {
		t.Errorf("sub-question part = %q, want a", q.List[1].SubQuestions[0].QuestionPart)
	}
	if q.List[1].SubQuestions[0].Marks == nil || *q.List[1].SubQuestions[0].Marks != 2 {
		t.Errorf("sub-question marks = %v, want 2", q.List[1].SubQuestions[0].Marks)
	}
}

func TestQuestionsShapeUnmarshalJSONMap(t *testing.T) {
	data := []byte(`{
		"12":   {"text": "Draw a graph.", "marks": 4},
		"12ii": {"text": "Solve the equation.", "marks": 3}
	}`)

	var q QuestionsShape
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !q.IsMap() {
		t.Fatal("object document decoded as list shape")
	}
	entry, ok := q.Get("12ii")
	if !ok {
		t.Fatal("Get(12ii) missed")
	}
	if entry.Text != "Solve the equation." {
		t.Errorf("Text = %q", entry.Text)
	}
	if _, ok := q.Get("99"); ok {
		t.Error("Get(99) hit")
	}
}

func TestQuestionsShapeUnmarshalJSONInvalid(t *testing.T) {
	var q QuestionsShape
	if err := json.Unmarshal([]byte(`"questions"`), &q); err == nil {
		t.Fatal("expected error for scalar document")
	}
}

func TestQuestionsShapeUnmarshalJSONNull(t *testing.T) {
	q := QuestionsShape{List: []QuestionEntry{{Number: "1"}}}
	if err := json.Unmarshal([]byte(`null`), &q); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if q.List != nil || q.Map != nil {
		t.Errorf("null did not reset the shape: %+v", q)
	}
}

func TestQuestionsShapeMarshalJSONRoundTrip(t *testing.T) {
	orig := QuestionsShape{
		Map: map[string]QuestionEntry{
			"3": {Text: "Show that y = 3.", Marks: marksPtr(3)},
		},
	}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if data[0] != '{' {
		t.Fatalf("map shape serialized as %q", data[0])
	}

	var back QuestionsShape
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.IsMap() || back.Len() != 1 {
		t.Fatalf("round trip lost shape: %+v", back)
	}
}

func TestExamPaperBSONRoundTrip(t *testing.T) {
	t.Run("list shape", func(t *testing.T) {
		orig := ExamPaper{
			ID: "paper-1",
			Metadata: PaperMetadata{
				Board: "AQA", Qualification: "MATHEMATICS", ExamCode: "1MA1/1H", Year: "2023",
			},
			Questions: QuestionsShape{
				List: []QuestionEntry{
					{Number: "2", Marks: marksPtr(5), SubQuestions: []SubQuestionEntry{
						{QuestionPart: "a", Text: "Find the value of x.", Marks: marksPtr(2)},
					}},
				},
			},
		}
		data, err := bson.Marshal(orig)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var back ExamPaper
		if err := bson.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if back.Questions.IsMap() {
			t.Fatal("list shape decoded as map")
		}
		sub := back.Questions.List[0].SubQuestions[0]
		if sub.Marks == nil || *sub.Marks != 2 {
			t.Errorf("sub marks = %v, want 2", sub.Marks)
		}
	})

	t.Run("map shape", func(t *testing.T) {
		orig := ExamPaper{
			ID: "paper-2",
			Metadata: PaperMetadata{
				Board: "Edexcel", Qualification: "MATHEMATICS", ExamCode: "8300/2F", Year: "2022",
			},
			Questions: QuestionsShape{
				Map: map[string]QuestionEntry{
					"12":   {Text: "Draw a graph.", Marks: marksPtr(4)},
					"12ii": {Text: "Solve the equation.", Marks: marksPtr(3)},
				},
			},
		}
		data, err := bson.Marshal(orig)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var back ExamPaper
		if err := bson.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if !back.Questions.IsMap() {
			t.Fatal("map shape decoded as list")
		}
		entry, ok := back.Questions.Get("12ii")
		if !ok || entry.Marks == nil || *entry.Marks != 3 {
			t.Errorf("Get(12ii) = %+v, %v", entry, ok)
		}
	})
}

func TestQuestionsShapeEntries(t *testing.T) {
	t.Run("map shape sorted", func(t *testing.T) {
		q := QuestionsShape{
			Map: map[string]QuestionEntry{
				"3":  {Text: "c"},
				"12": {Text: "a"},
				"":   {Text: "unnumbered"},
			},
		}
		entries := q.Entries()
		if len(entries) != 2 {
			t.Fatalf("len = %d, want 2", len(entries))
		}
		if entries[0].Number != "12" || entries[1].Number != "3" {
			t.Errorf("order = %q, %q; want lexicographic 12, 3", entries[0].Number, entries[1].Number)
		}
	})

	t.Run("list shape skips unnumbered", func(t *testing.T) {
		q := QuestionsShape{
			List: []QuestionEntry{
				{Number: "1", Text: "first"},
				{Text: "instructions page"},
				{Number: "2", Text: "second"},
			},
		}
		entries := q.Entries()
		if len(entries) != 2 {
			t.Fatalf("len = %d, want 2", len(entries))
		}
		if entries[0].Number != "1" || entries[1].Number != "2" {
			t.Errorf("order = %q, %q", entries[0].Number, entries[1].Number)
		}
	})
}
