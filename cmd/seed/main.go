package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"markhub/internal/model"
	"markhub/internal/repository"
)

func intPtr(v int) *int { return &v }

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("markhub")
	paperRepo := repository.NewExamPaperRepo(db)
	schemeRepo := repository.NewMarkingSchemeRepo(db)

	// List-shaped paper
	aqaPaper := &model.ExamPaper{
		Metadata: model.PaperMetadata{
			Board:         "AQA",
			Qualification: "MATHEMATICS",
			ExamCode:      "1MA1/1H",
			Year:          "2023",
			Tier:          "Higher",
		},
		Questions: model.QuestionsShape{
			List: []model.QuestionEntry{
				{
					Number: "1",
					Text:   "Work out the value of 3x + 2 when x = 5.",
					Marks:  intPtr(2),
				},
				{
					Number: "2",
					Marks:  intPtr(5),
					SubQuestions: []model.SubQuestionEntry{
						{QuestionPart: "a", Text: "Find the value of x.", Marks: intPtr(2)},
						{QuestionPart: "b", Text: "Show that y = 3.", Marks: intPtr(3)},
					},
				},
				{
					Number: "3",
					Text:   "A gardener buys 4 bags of seeds. Each bag costs £6. Calculate the total cost.",
					Marks:  intPtr(3),
				},
			},
		},
	}

	// Map-shaped paper, keyed by flat question number
	edexcelPaper := &model.ExamPaper{
		Metadata: model.PaperMetadata{
			Board:         "Edexcel",
			Qualification: "MATHEMATICS",
			ExamCode:      "8300/2F",
			Year:          "2022",
			Tier:          "Foundation",
		},
		Questions: model.QuestionsShape{
			Map: map[string]model.QuestionEntry{
				"12": {
					Text:  "Draw a graph of y = x² + 4.",
					Marks: intPtr(4),
				},
				"12i": {
					Text:  "Write down the coordinates of the turning point.",
					Marks: intPtr(1),
				},
				"12ii": {
					Text:  "Solve the equation x² + 4 = 13.",
					Marks: intPtr(3),
				},
			},
		},
	}

	aqaScheme := &model.MarkingScheme{
		ExamDetails: &model.ExamDetails{
			Board:         "AQA",
			Qualification: "MATHEMATICS GCSE",
			PaperCode:     "1MA1/1H",
			Tier:          "Higher",
			Paper:         "Paper 1",
			Date:          "2023",
		},
		Questions: map[string]model.QuestionMarks{
			"1":  {Marks: 2, Answer: "17", Guidance: []string{"M1 substitution", "A1 correct value"}},
			"2a": {Marks: 2, Answer: "x = 4", Guidance: []string{"M1 rearrangement", "A1 correct value"}},
			"2b": {Marks: 3, Answer: "y = 3", Guidance: []string{"M1 substitution", "M1 simplification", "A1 conclusion shown"}},
			"3":  {Marks: 3, Answer: "£24", Guidance: []string{"M1 4 × 6", "A1 24", "B1 units"}},
		},
		TotalQuestions: 3,
		TotalMarks:     10,
	}

	edexcelScheme := &model.MarkingScheme{
		ExamDetails: &model.ExamDetails{
			Board:         "Edexcel",
			Qualification: "MATHEMATICS GCSE",
			PaperCode:     "8300/2F",
			Tier:          "Foundation",
			Paper:         "Paper 2",
			Date:          "2022",
		},
		Questions: map[string]model.QuestionMarks{
			"12":   {Marks: 4, Answer: "correct parabola through (0,4)"},
			"12i":  {Marks: 1, Answer: "(0, 4)"},
			"12ii": {Marks: 3, Answer: "x = 3 or x = -3", Guidance: []string{"M1 rearrangement", "M1 square root", "A1 both roots"}},
		},
		TotalQuestions: 1,
		TotalMarks:     8,
	}

	for _, paper := range []*model.ExamPaper{aqaPaper, edexcelPaper} {
		if err := paperRepo.Create(ctx, paper); err != nil {
			log.Fatalf("Failed to insert exam paper %s: %v", paper.Metadata.ExamCode, err)
		}
	}
	for _, scheme := range []*model.MarkingScheme{aqaScheme, edexcelScheme} {
		if err := schemeRepo.Create(ctx, scheme); err != nil {
			log.Fatalf("Failed to insert marking scheme %s: %v", scheme.ExamDetails.PaperCode, err)
		}
	}

	fmt.Println("Successfully seeded 2 exam papers and 2 marking schemes")
}
