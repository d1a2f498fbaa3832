package model

import "time"

type SessionStatus string

const (
	SessionProcessing SessionStatus = "processing"
	SessionCompleted  SessionStatus = "completed"
	SessionUnmatched  SessionStatus = "unmatched"
	SessionFailed     SessionStatus = "failed"
)

// Extraction is what the vision model pulled out of a homework image.
type Extraction struct {
	QuestionText   string `json:"questionText" bson:"questionText"`
	QuestionNumber string `json:"questionNumber,omitempty" bson:"questionNumber,omitempty"`
	StudentWorking string `json:"studentWorking,omitempty" bson:"studentWorking,omitempty"`
}

// MarkingFeedback is the marker's verdict on the student's working.
type MarkingFeedback struct {
	AwardedMarks int      `json:"awardedMarks" bson:"awardedMarks"`
	MaxMarks     int      `json:"maxMarks" bson:"maxMarks"`
	Comments     []string `json:"comments,omitempty" bson:"comments,omitempty"`
	Summary      string   `json:"summary,omitempty" bson:"summary,omitempty"`
}

// MarkingSession is one homework submission worked through the pipeline:
// extraction, question detection, scheme resolution, marking.
type MarkingSession struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	Status      SessionStatus    `json:"status" bson:"status"`
	MimeType    string           `json:"mimeType,omitempty" bson:"mimeType,omitempty"`
	Extraction  *Extraction      `json:"extraction,omitempty" bson:"extraction,omitempty"`
	Match       *ExamPaperMatch  `json:"match,omitempty" bson:"match,omitempty"`
	Feedback    *MarkingFeedback `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Message     string           `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt" bson:"updatedAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}
