package store

import (
	"context"

	"github.com/kevinaaaquil/library/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

func (db *DB) ReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	return findOne[models.Review](ctx, db.Reviews(), bson.M{"_id": id})
}

func (db *DB) ListReviews(ctx context.Context) ([]models.Review, error) {
	return findMany[models.Review](ctx, db.Reviews(), bson.M{})
}

func (db *DB) ListReviewsByBook(ctx context.Context, bookID int64) ([]models.Review, error) {
	return findMany[models.Review](ctx, db.Reviews(), bson.M{"bookId": bookID})
}

func (db *DB) CreateReview(ctx context.Context, r *models.Review) error {
	return db.insert(ctx, db.Reviews(), &r.ID, r)
}

func (db *DB) UpdateReview(ctx context.Context, r *models.Review) error {
	return replace(ctx, db.Reviews(), r.ID, r)
}

func (db *DB) DeleteReview(ctx context.Context, id int64) error {
	return remove(ctx, db.Reviews(), id)
}
