package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"markhub/internal/model"
)

// ExamPaperRepo handles MongoDB operations for the exam-paper corpus.
// Detection consumes it through GetAll; the corpus is read-only from the
// matcher's perspective.
type ExamPaperRepo interface {
	GetAll(ctx context.Context) ([]*model.ExamPaper, error)
	GetByID(ctx context.Context, id string) (*model.ExamPaper, error)
	Create(ctx context.Context, paper *model.ExamPaper) error
}

type examPaperRepo struct {
	collection *mongo.Collection
}

// NewExamPaperRepo creates a new exam-paper repository.
func NewExamPaperRepo(db *mongo.Database) ExamPaperRepo {
	return &examPaperRepo{
		collection: db.Collection("examPapers"),
	}
}

func (r *examPaperRepo) GetAll(ctx context.Context) ([]*model.ExamPaper, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var papers []*model.ExamPaper
	if err := cursor.All(ctx, &papers); err != nil {
		return nil, err
	}
	return papers, nil
}

func (r *examPaperRepo) GetByID(ctx context.Context, id string) (*model.ExamPaper, error) {
	var paper model.ExamPaper
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&paper)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *examPaperRepo) Create(ctx context.Context, paper *model.ExamPaper) error {
	if paper.ID == "" {
		paper.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, paper)
	return err
}
