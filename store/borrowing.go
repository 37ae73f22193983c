package store

import (
	"context"

	"github.com/kevinaaaquil/library/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

func (db *DB) BorrowingByID(ctx context.Context, id int64) (*models.Borrowing, error) {
	return findOne[models.Borrowing](ctx, db.Borrowings(), bson.M{"_id": id})
}

func (db *DB) ListBorrowings(ctx context.Context) ([]models.Borrowing, error) {
	return findMany[models.Borrowing](ctx, db.Borrowings(), bson.M{})
}

func (db *DB) CreateBorrowing(ctx context.Context, b *models.Borrowing) error {
	return db.insert(ctx, db.Borrowings(), &b.ID, b)
}

func (db *DB) UpdateBorrowing(ctx context.Context, b *models.Borrowing) error {
	return replace(ctx, db.Borrowings(), b.ID, b)
}

func (db *DB) DeleteBorrowing(ctx context.Context, id int64) error {
	return remove(ctx, db.Borrowings(), id)
}
