package store

import (
	"context"

	"github.com/kevinaaaquil/library/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

func (db *DB) CategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return findOne[models.Category](ctx, db.Categories(), bson.M{"_id": id})
}

func (db *DB) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return findOne[models.Category](ctx, db.Categories(), bson.M{"name": name})
}

func (db *DB) ListCategories(ctx context.Context) ([]models.Category, error) {
	return findMany[models.Category](ctx, db.Categories(), bson.M{})
}

func (db *DB) CreateCategory(ctx context.Context, c *models.Category) error {
	return db.insert(ctx, db.Categories(), &c.ID, c)
}

func (db *DB) UpdateCategory(ctx context.Context, c *models.Category) error {
	return replace(ctx, db.Categories(), c.ID, c)
}

func (db *DB) DeleteCategory(ctx context.Context, id int64) error {
	return remove(ctx, db.Categories(), id)
}
