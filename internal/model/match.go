package model

// ExamPaperMatch is the outcome of a successful question detection.
// Marks is the mark value of the level that actually matched (sub-question
// when SubQuestionNumber is set, main question otherwise);
// ParentQuestionMarks always carries the main question's marks.
type ExamPaperMatch struct {
	Board                string  `json:"board"`
	Qualification        string  `json:"qualification"`
	PaperCode            string  `json:"paperCode"`
	Year                 string  `json:"year"`
	Tier                 string  `json:"tier,omitempty"`
	QuestionNumber       string  `json:"questionNumber"`
	SubQuestionNumber    string  `json:"subQuestionNumber,omitempty"`
	Marks                int     `json:"marks"`
	ParentQuestionMarks  int     `json:"parentQuestionMarks"`
	Confidence           float64 `json:"confidence"`
	DatabaseQuestionText string  `json:"databaseQuestionText"`

	// MarkingScheme is attached by the caller after a successful paper
	// match; nil when no scheme cleared the resolution threshold.
	MarkingScheme *MarkingSchemeMatch `json:"markingScheme,omitempty"`
}

// MarkingSchemeMatch is a resolved marking scheme for a matched question.
type MarkingSchemeMatch struct {
	ID             string        `json:"id"`
	ExamDetails    ExamDetails   `json:"examDetails"`
	QuestionMarks  QuestionMarks `json:"questionMarks"`
	TotalQuestions int           `json:"totalQuestions"`
	TotalMarks     int           `json:"totalMarks"`
	Confidence     float64       `json:"confidence"`
}

// DetectionResult is the caller-facing outcome of a detection request.
// Found false is a normal negative result, never an error.
type DetectionResult struct {
	Found   bool            `json:"found"`
	Match   *ExamPaperMatch `json:"match,omitempty"`
	Message string          `json:"message,omitempty"`
}
