package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"markhub/internal/repository"
	"markhub/internal/service"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var mongoURI string
	var database string

	rootCmd := &cobra.Command{
		Use:           "markctl",
		Short:         "Inspect the markhub corpus and run one-off detections",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI (defaults to MONGO_URI)")
	rootCmd.PersistentFlags().StringVar(&database, "database", "markhub", "MongoDB database name")

	rootCmd.AddCommand(newPapersCommand(&mongoURI, &database))
	rootCmd.AddCommand(newSchemesCommand(&mongoURI, &database))
	rootCmd.AddCommand(newDetectCommand(&mongoURI, &database))

	return rootCmd
}

func connect(mongoURI string) (*mongo.Client, context.Context, context.CancelFunc, error) {
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGO_URI")
	}
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	return client, ctx, cancel, nil
}

func newPapersCommand(mongoURI, database *string) *cobra.Command {
	return &cobra.Command{
		Use:   "papers",
		Short: "List exam papers in the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ctx, cancel, err := connect(*mongoURI)
			if err != nil {
				return err
			}
			defer cancel()
			defer client.Disconnect(ctx)

			repo := repository.NewExamPaperRepo(client.Database(*database))
			papers, err := repo.GetAll(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(papers))
			for _, p := range papers {
				shape := "list"
				if p.Questions.IsMap() {
					shape = "map"
				}
				rows = append(rows, []string{
					p.ID,
					p.Metadata.Board,
					p.Metadata.Qualification,
					p.Metadata.ExamCode,
					p.Metadata.Year,
					shape,
					fmt.Sprintf("%d", p.Questions.Len()),
				})
			}
			fmt.Println(renderTable(
				[]string{"ID", "Board", "Qualification", "Code", "Year", "Shape", "Questions"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newSchemesCommand(mongoURI, database *string) *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List marking schemes in the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ctx, cancel, err := connect(*mongoURI)
			if err != nil {
				return err
			}
			defer cancel()
			defer client.Disconnect(ctx)

			repo := repository.NewMarkingSchemeRepo(client.Database(*database))
			schemes, err := repo.GetAll(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(schemes))
			for _, s := range schemes {
				board, code, date := "?", "?", "?"
				if s.ExamDetails != nil {
					board = s.ExamDetails.Board
					code = s.ExamDetails.PaperCode
					date = s.ExamDetails.Date
				}
				rows = append(rows, []string{
					s.ID,
					board,
					code,
					date,
					fmt.Sprintf("%d", s.TotalQuestions),
					fmt.Sprintf("%d", s.TotalMarks),
				})
			}
			fmt.Println(renderTable(
				[]string{"ID", "Board", "Paper code", "Date", "Questions", "Marks"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newDetectCommand(mongoURI, database *string) *cobra.Command {
	var text string
	var hint string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Run a one-off question detection against the live corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ctx, cancel, err := connect(*mongoURI)
			if err != nil {
				return err
			}
			defer cancel()
			defer client.Disconnect(ctx)

			db := client.Database(*database)
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			detection := service.NewDetectionService(
				repository.NewExamPaperRepo(db),
				repository.NewMarkingSchemeRepo(db),
				logger,
			)

			result, err := detection.Detect(ctx, text, hint)
			if err != nil {
				return err
			}
			if !result.Found {
				fmt.Printf("No match: %s\n", result.Message)
				return nil
			}

			m := result.Match
			rows := [][]string{
				{"Board", m.Board},
				{"Qualification", m.Qualification},
				{"Paper code", m.PaperCode},
				{"Year", m.Year},
				{"Question", m.QuestionNumber + m.SubQuestionNumber},
				{"Marks", fmt.Sprintf("%d", m.Marks)},
				{"Parent marks", fmt.Sprintf("%d", m.ParentQuestionMarks)},
				{"Confidence", fmt.Sprintf("%.3f", m.Confidence)},
				{"Matched text", m.DatabaseQuestionText},
			}
			if m.MarkingScheme != nil {
				rows = append(rows,
					[]string{"Scheme", m.MarkingScheme.ID},
					[]string{"Scheme answer", m.MarkingScheme.QuestionMarks.Answer},
					[]string{"Scheme confidence", fmt.Sprintf("%.3f", m.MarkingScheme.Confidence)},
				)
			}
			fmt.Println(renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Extracted question text")
	cmd.Flags().StringVar(&hint, "hint", "", "Question-number hint, e.g. 2a or 12ii")
	cmd.MarkFlagRequired("text")

	return cmd
}
