package store

import (
	"context"

	"github.com/kevinaaaquil/library/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

func (db *DB) AuthorByID(ctx context.Context, id int64) (*models.Author, error) {
	return findOne[models.Author](ctx, db.Authors(), bson.M{"_id": id})
}

func (db *DB) AuthorsByIDs(ctx context.Context, ids []int64) ([]models.Author, error) {
	if len(ids) == 0 {
		return []models.Author{}, nil
	}
	return findMany[models.Author](ctx, db.Authors(), bson.M{"_id": bson.M{"$in": ids}})
}

func (db *DB) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return findMany[models.Author](ctx, db.Authors(), bson.M{})
}

func (db *DB) CreateAuthor(ctx context.Context, a *models.Author) error {
	return db.insert(ctx, db.Authors(), &a.ID, a)
}

func (db *DB) UpdateAuthor(ctx context.Context, a *models.Author) error {
	return replace(ctx, db.Authors(), a.ID, a)
}

func (db *DB) DeleteAuthor(ctx context.Context, id int64) error {
	return remove(ctx, db.Authors(), id)
}
