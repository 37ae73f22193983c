package store

import (
	"context"

	"github.com/kevinaaaquil/library/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

func (db *DB) BranchByID(ctx context.Context, id int64) (*models.Branch, error) {
	return findOne[models.Branch](ctx, db.Branches(), bson.M{"_id": id})
}

func (db *DB) BranchByName(ctx context.Context, name string) (*models.Branch, error) {
	return findOne[models.Branch](ctx, db.Branches(), bson.M{"name": name})
}

func (db *DB) ListBranches(ctx context.Context) ([]models.Branch, error) {
	return findMany[models.Branch](ctx, db.Branches(), bson.M{})
}

func (db *DB) CreateBranch(ctx context.Context, b *models.Branch) error {
	return db.insert(ctx, db.Branches(), &b.ID, b)
}

func (db *DB) UpdateBranch(ctx context.Context, b *models.Branch) error {
	return replace(ctx, db.Branches(), b.ID, b)
}

func (db *DB) DeleteBranch(ctx context.Context, id int64) error {
	return remove(ctx, db.Branches(), id)
}

func (db *DB) LibraryByID(ctx context.Context, id int64) (*models.Library, error) {
	return findOne[models.Library](ctx, db.Libraries(), bson.M{"_id": id})
}

func (db *DB) LibraryByName(ctx context.Context, name string) (*models.Library, error) {
	return findOne[models.Library](ctx, db.Libraries(), bson.M{"name": name})
}

func (db *DB) ListLibraries(ctx context.Context) ([]models.Library, error) {
	return findMany[models.Library](ctx, db.Libraries(), bson.M{})
}

func (db *DB) CreateLibrary(ctx context.Context, l *models.Library) error {
	return db.insert(ctx, db.Libraries(), &l.ID, l)
}

func (db *DB) UpdateLibrary(ctx context.Context, l *models.Library) error {
	return replace(ctx, db.Libraries(), l.ID, l)
}

func (db *DB) DeleteLibrary(ctx context.Context, id int64) error {
	return remove(ctx, db.Libraries(), id)
}
