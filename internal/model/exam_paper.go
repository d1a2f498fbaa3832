package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// PaperMetadata identifies an exam paper. Board, Qualification, ExamCode and
// Year are required for a paper to be usable by detection.
type PaperMetadata struct {
	Board         string `json:"board" bson:"board"`
	Qualification string `json:"qualification" bson:"qualification"`
	ExamCode      string `json:"examCode" bson:"examCode"`
	Year          string `json:"year" bson:"year"`
	Tier          string `json:"tier,omitempty" bson:"tier,omitempty"`
}

// Complete reports whether all required metadata fields are present.
func (m PaperMetadata) Complete() bool {
	return m.Board != "" && m.Qualification != "" && m.ExamCode != "" && m.Year != ""
}

// MissingField returns the name of the first absent required field, or "".
func (m PaperMetadata) MissingField() string {
	switch {
	case m.Board == "":
		return "board"
	case m.Qualification == "":
		return "qualification"
	case m.ExamCode == "":
		return "examCode"
	case m.Year == "":
		return "year"
	}
	return ""
}

// SubQuestionEntry is one lettered/roman part of a main question.
// QuestionPart is required; entries without it are skipped by detection.
// Marks is a pointer so an absent value is distinguishable from zero.
type SubQuestionEntry struct {
	QuestionPart string `json:"questionPart" bson:"questionPart"`
	Text         string `json:"text,omitempty" bson:"text,omitempty"`
	Marks        *int   `json:"marks,omitempty" bson:"marks,omitempty"`
}

// QuestionEntry is a main question. Number is taken from the field for
// list-shaped papers and from the map key for map-shaped papers.
type QuestionEntry struct {
	Number       string             `json:"number,omitempty" bson:"number,omitempty"`
	Text         string             `json:"text,omitempty" bson:"text,omitempty"`
	Marks        *int               `json:"marks,omitempty" bson:"marks,omitempty"`
	SubQuestions []SubQuestionEntry `json:"subQuestions,omitempty" bson:"subQuestions,omitempty"`
}

// QuestionsShape holds the two document shapes found in the corpus: an
// ordered list of questions, or a mapping from question number to question.
// Exactly one of List and Map is set after decoding.
type QuestionsShape struct {
	List []QuestionEntry
	Map  map[string]QuestionEntry
}

// NumberedQuestion pairs a question with its effective number so both
// shapes iterate uniformly.
type NumberedQuestion struct {
	Number string
	Entry  QuestionEntry
}

// Entries returns the questions of either shape in a stable order,
// skipping entries that have no number.
func (q QuestionsShape) Entries() []NumberedQuestion {
	if q.Map != nil {
		keys := make([]string, 0, len(q.Map))
		for k := range q.Map {
			if k != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		out := make([]NumberedQuestion, 0, len(keys))
		for _, k := range keys {
			out = append(out, NumberedQuestion{Number: k, Entry: q.Map[k]})
		}
		return out
	}
	out := make([]NumberedQuestion, 0, len(q.List))
	for _, e := range q.List {
		if e.Number == "" {
			continue
		}
		out = append(out, NumberedQuestion{Number: e.Number, Entry: e})
	}
	return out
}

// IsMap reports whether the underlying document used the keyed shape.
func (q QuestionsShape) IsMap() bool {
	return q.Map != nil
}

// Get looks up a question by its map key. Always misses for list-shaped
// papers.
func (q QuestionsShape) Get(key string) (QuestionEntry, bool) {
	if q.Map == nil {
		return QuestionEntry{}, false
	}
	e, ok := q.Map[key]
	return e, ok
}

// Len returns the number of questions in either shape.
func (q QuestionsShape) Len() int {
	if q.Map != nil {
		return len(q.Map)
	}
	return len(q.List)
}

func (q QuestionsShape) MarshalJSON() ([]byte, error) {
	if q.Map != nil {
		return json.Marshal(q.Map)
	}
	return json.Marshal(q.List)
}

func (q *QuestionsShape) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*q = QuestionsShape{}
		return nil
	}
	switch trimmed[0] {
	case '[':
		q.Map = nil
		return json.Unmarshal(trimmed, &q.List)
	case '{':
		q.List = nil
		return json.Unmarshal(trimmed, &q.Map)
	}
	return fmt.Errorf("questions: expected array or object, got %q", trimmed[0])
}

func (q QuestionsShape) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if q.Map != nil {
		return bson.MarshalValue(q.Map)
	}
	return bson.MarshalValue(q.List)
}

func (q *QuestionsShape) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Array:
		q.Map = nil
		return bson.UnmarshalValue(t, data, &q.List)
	case bsontype.EmbeddedDocument:
		q.List = nil
		return bson.UnmarshalValue(t, data, &q.Map)
	case bsontype.Null, bsontype.Undefined:
		*q = QuestionsShape{}
		return nil
	}
	return fmt.Errorf("questions: expected array or document, got %s", t)
}

// ExamPaper is one exam-paper document from the corpus.
type ExamPaper struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	Metadata  PaperMetadata  `json:"metadata" bson:"metadata"`
	Questions QuestionsShape `json:"questions" bson:"questions"`
}
