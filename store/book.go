package store

import (
	"context"

	"github.com/kevinaaaquil/library/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

func (db *DB) BookByID(ctx context.Context, id int64) (*models.Book, error) {
	return findOne[models.Book](ctx, db.Books(), bson.M{"_id": id})
}

func (db *DB) ListBooks(ctx context.Context) ([]models.Book, error) {
	return findMany[models.Book](ctx, db.Books(), bson.M{})
}

// ListBooksByAuthor matches books whose authorIds array contains authorID.
func (db *DB) ListBooksByAuthor(ctx context.Context, authorID int64) ([]models.Book, error) {
	return findMany[models.Book](ctx, db.Books(), bson.M{"authorIds": authorID})
}

func (db *DB) ListBooksByBranch(ctx context.Context, branchID int64) ([]models.Book, error) {
	return findMany[models.Book](ctx, db.Books(), bson.M{"branchId": branchID})
}

func (db *DB) ListBooksByLibrary(ctx context.Context, libraryID int64) ([]models.Book, error) {
	return findMany[models.Book](ctx, db.Books(), bson.M{"libraryId": libraryID})
}

func (db *DB) CreateBook(ctx context.Context, b *models.Book) error {
	return db.insert(ctx, db.Books(), &b.ID, b)
}

func (db *DB) UpdateBook(ctx context.Context, b *models.Book) error {
	return replace(ctx, db.Books(), b.ID, b)
}

func (db *DB) DeleteBook(ctx context.Context, id int64) error {
	return remove(ctx, db.Books(), id)
}
