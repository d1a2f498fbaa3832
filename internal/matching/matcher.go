package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"markhub/internal/model"
)

// Acceptance thresholds. Sub-questions get a lower bar because their
// shorter text is more sensitive to small wording differences. Values are
// empirically tuned; change them only against a labelled corpus.
const (
	subQuestionThreshold  = 0.4
	mainQuestionThreshold = 0.5
)

// ErrMissingMarks is returned when the best match is a sub-question whose
// marks field is absent. Silently defaulting would corrupt downstream
// grading, so detection fails loudly instead.
var ErrMissingMarks = errors.New("matched sub-question has no marks")

// PaperSource supplies the exam-paper corpus. Implementations should log
// and return an empty slice on storage failure; the matcher additionally
// treats a returned error as an empty corpus.
type PaperSource interface {
	GetAll(ctx context.Context) ([]*model.ExamPaper, error)
}

// SchemeSource supplies the marking-scheme corpus under the same contract.
type SchemeSource interface {
	GetAll(ctx context.Context) ([]*model.MarkingScheme, error)
}

// Matcher locates the exam-paper question a piece of OCR-extracted text
// came from and cross-references its marking scheme. It holds no state
// between calls; the corpus is fetched fresh per request.
type Matcher struct {
	papers  PaperSource
	schemes SchemeSource
	logger  *slog.Logger
}

func NewMatcher(papers PaperSource, schemes SchemeSource, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{papers: papers, schemes: schemes, logger: logger}
}

func thresholdFor(isSub bool) float64 {
	if isSub {
		return subQuestionThreshold
	}
	return mainQuestionThreshold
}

func meetsThreshold(score float64, isSub bool) bool {
	return score >= thresholdFor(isSub)
}

// candidate is the running best match during a corpus scan.
type candidate struct {
	score          float64
	paper          *model.ExamPaper
	questionNumber string
	subPart        string
	isSub          bool
	marks          *int
	parentMarks    *int
	matchedText    string
}

// DetectQuestion scans the exam-paper corpus for the question the extracted
// text came from. A nil error with Found false is a normal negative result;
// the only error surfaced is ErrMissingMarks.
func (m *Matcher) DetectQuestion(ctx context.Context, questionText, hint string) (model.DetectionResult, error) {
	if strings.TrimSpace(questionText) == "" {
		return model.DetectionResult{
			Found:   false,
			Message: "no question text provided",
		}, nil
	}

	papers, err := m.papers.GetAll(ctx)
	if err != nil {
		m.logger.Error("exam paper fetch failed", "error", err)
		papers = nil
	}
	if len(papers) == 0 {
		return model.DetectionResult{Found: false, Message: "no exam papers available"}, nil
	}

	var best *candidate
	for _, paper := range papers {
		if missing := paper.Metadata.MissingField(); missing != "" {
			m.logger.Warn("skipping exam paper with incomplete metadata",
				"paperId", paper.ID, "missingField", missing)
			continue
		}
		c := m.matchPaper(paper, questionText, hint)
		if c != nil && (best == nil || c.score > best.score) {
			best = c
		}
	}

	if best == nil {
		m.logger.Info("no candidate questions", "hint", hint)
		return model.DetectionResult{Found: false, Message: "no matching question found"}, nil
	}

	if !meetsThreshold(best.score, best.isSub) {
		m.logger.Info("best candidate below threshold",
			"score", best.score,
			"threshold", thresholdFor(best.isSub),
			"question", best.questionNumber,
			"subPart", best.subPart)
		return model.DetectionResult{Found: false, Message: "no matching question found"}, nil
	}

	match, err := m.assembleMatch(best)
	if err != nil {
		return model.DetectionResult{}, err
	}
	return model.DetectionResult{Found: true, Match: match}, nil
}

// matchPaper runs the per-paper candidate search and returns the paper's
// best-scoring candidate, or nil when nothing passed hierarchical
// filtering.
func (m *Matcher) matchPaper(paper *model.ExamPaper, questionText, hint string) *candidate {
	var hintID QuestionIdentifier
	hasHint := strings.TrimSpace(hint) != ""
	if hasHint {
		hintID = ParseIdentifier(hint)
		if hintID.IsSubQuestion && hintID.Base == "" {
			// An empty base never passes base filtering; never
			// substitute a default.
			m.logger.Warn("sub-question hint has no base number",
				"hint", hint, "paperId", paper.ID)
			return nil
		}
	}

	var best *candidate
	keep := func(c candidate) {
		if best == nil || c.score > best.score {
			c.paper = paper
			best = &c
		}
	}

	// Map-shaped papers may key an entry by the full hint ("12i"); score
	// it directly and skip nested search for that entry.
	shortcutKey := ""
	if hasHint {
		if entry, ok := paper.Questions.Get(hint); ok {
			shortcutKey = hint
			number := hintID.Base
			if number == "" {
				number = hint
			}
			parentMarks := entry.Marks
			if parent, ok := paper.Questions.Get(hintID.Base); ok && hintID.Base != hint {
				parentMarks = parent.Marks
			}
			keep(candidate{
				score:          Score(questionText, entry.Text),
				questionNumber: number,
				subPart:        hintID.SubPart,
				isSub:          hintID.IsSubQuestion,
				marks:          entry.Marks,
				parentMarks:    parentMarks,
				matchedText:    entry.Text,
			})
		}
	}

	for _, nq := range paper.Questions.Entries() {
		if nq.Number == shortcutKey && shortcutKey != "" {
			continue
		}
		entry := nq.Entry
		qID := ParseIdentifier(nq.Number)

		switch {
		case !hasHint:
			if entry.Text == "" {
				continue
			}
			keep(candidate{
				score:          Score(questionText, entry.Text),
				questionNumber: nq.Number,
				marks:          entry.Marks,
				parentMarks:    entry.Marks,
				matchedText:    entry.Text,
			})

		case hintID.IsSubQuestion:
			if qID.Base != hintID.Base {
				continue
			}
			for _, sub := range entry.SubQuestions {
				if sub.QuestionPart == "" {
					m.logger.Warn("skipping sub-question without part identifier",
						"paperId", paper.ID, "question", nq.Number)
					continue
				}
				if !strings.EqualFold(sub.QuestionPart, hintID.SubPart) {
					continue
				}
				number := qID.Base
				if number == "" {
					number = nq.Number
				}
				keep(candidate{
					score:          Score(questionText, sub.Text),
					questionNumber: number,
					subPart:        strings.ToLower(sub.QuestionPart),
					isSub:          true,
					marks:          sub.Marks,
					parentMarks:    entry.Marks,
					matchedText:    sub.Text,
				})
			}

		default:
			if nq.Number != hint {
				continue
			}
			if entry.Text == "" {
				continue
			}
			keep(candidate{
				score:          Score(questionText, entry.Text),
				questionNumber: nq.Number,
				marks:          entry.Marks,
				parentMarks:    entry.Marks,
				matchedText:    entry.Text,
			})
		}
	}

	return best
}

func (m *Matcher) assembleMatch(c *candidate) (*model.ExamPaperMatch, error) {
	md := c.paper.Metadata

	marks := 0
	if c.isSub {
		if c.marks == nil {
			return nil, fmt.Errorf("paper %s question %s%s: %w",
				c.paper.ID, c.questionNumber, c.subPart, ErrMissingMarks)
		}
		marks = *c.marks
	} else if c.marks != nil {
		marks = *c.marks
	}

	parentMarks := 0
	if c.parentMarks != nil {
		parentMarks = *c.parentMarks
	}

	return &model.ExamPaperMatch{
		Board:                md.Board,
		Qualification:        md.Qualification,
		PaperCode:            md.ExamCode,
		Year:                 md.Year,
		Tier:                 md.Tier,
		QuestionNumber:       c.questionNumber,
		SubQuestionNumber:    c.subPart,
		Marks:                marks,
		ParentQuestionMarks:  parentMarks,
		Confidence:           c.score,
		DatabaseQuestionText: c.matchedText,
	}, nil
}
