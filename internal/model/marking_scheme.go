package model

// ExamDetails identifies the exam a marking scheme belongs to. A scheme
// record without exam details is unusable and skipped by resolution.
type ExamDetails struct {
	Board         string `json:"board" bson:"board"`
	Qualification string `json:"qualification" bson:"qualification"`
	PaperCode     string `json:"paperCode" bson:"paperCode"`
	Tier          string `json:"tier,omitempty" bson:"tier,omitempty"`
	Paper         string `json:"paper,omitempty" bson:"paper,omitempty"`
	Date          string `json:"date,omitempty" bson:"date,omitempty"`
}

// QuestionMarks is the mark allocation for one flat scheme key.
type QuestionMarks struct {
	Marks    int      `json:"marks" bson:"marks"`
	Answer   string   `json:"answer,omitempty" bson:"answer,omitempty"`
	Guidance []string `json:"guidance,omitempty" bson:"guidance,omitempty"`
}

// MarkingScheme is one marking-scheme document. Questions is keyed by the
// question number concatenated with the lowercased sub-part, no separator
// ("2a", "12iii", "1" for main questions).
type MarkingScheme struct {
	ID             string                   `json:"id" bson:"_id,omitempty"`
	ExamDetails    *ExamDetails             `json:"examDetails" bson:"examDetails,omitempty"`
	Questions      map[string]QuestionMarks `json:"questions" bson:"questions"`
	TotalQuestions int                      `json:"totalQuestions" bson:"totalQuestions"`
	TotalMarks     int                      `json:"totalMarks" bson:"totalMarks"`
}
