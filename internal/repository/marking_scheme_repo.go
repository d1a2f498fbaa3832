package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"markhub/internal/model"
)

// MarkingSchemeRepo handles MongoDB operations for the marking-scheme
// corpus.
type MarkingSchemeRepo interface {
	GetAll(ctx context.Context) ([]*model.MarkingScheme, error)
	GetByID(ctx context.Context, id string) (*model.MarkingScheme, error)
	Create(ctx context.Context, scheme *model.MarkingScheme) error
}

type markingSchemeRepo struct {
	collection *mongo.Collection
}

// NewMarkingSchemeRepo creates a new marking-scheme repository.
func NewMarkingSchemeRepo(db *mongo.Database) MarkingSchemeRepo {
	return &markingSchemeRepo{
		collection: db.Collection("markingSchemes"),
	}
}

func (r *markingSchemeRepo) GetAll(ctx context.Context) ([]*model.MarkingScheme, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schemes []*model.MarkingScheme
	if err := cursor.All(ctx, &schemes); err != nil {
		return nil, err
	}
	return schemes, nil
}

func (r *markingSchemeRepo) GetByID(ctx context.Context, id string) (*model.MarkingScheme, error) {
	var scheme model.MarkingScheme
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&scheme)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scheme, nil
}

func (r *markingSchemeRepo) Create(ctx context.Context, scheme *model.MarkingScheme) error {
	if scheme.ID == "" {
		scheme.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, scheme)
	return err
}
