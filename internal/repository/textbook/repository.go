package textbook

import (
	"context"

	"homework-bot/internal/models"
	"homework-bot/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type textbookRepository struct {
	coll *mongo.Collection
}

func NewTextbookRepository(db *mongo.Database) repository.TextbookRepository {
	return &textbookRepository{coll: db.Collection(models.TextbookCollection)}
}

func (r *textbookRepository) Create(ctx context.Context, textbook *models.Textbook) error {
	res, err := r.coll.InsertOne(ctx, textbook)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		textbook.ID = id
	}
	return nil
}

func (r *textbookRepository) GetBySubject(ctx context.Context, subject string) ([]*models.Textbook, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"subject": subject})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var textbooks []*models.Textbook
	if err := cursor.All(ctx, &textbooks); err != nil {
		return nil, err
	}
	return textbooks, nil
}
