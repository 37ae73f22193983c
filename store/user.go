package store

import (
	"context"

	"github.com/kevinaaaquil/library/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

func (db *DB) CountUsersByRole(ctx context.Context, role models.Role) (int64, error) {
	return db.Users().CountDocuments(ctx, bson.M{"role": role})
}

func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, db.Users(), bson.M{"email": email})
}

func (db *DB) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return findOne[models.User](ctx, db.Users(), bson.M{"_id": id})
}

func (db *DB) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return findMany[models.User](ctx, db.Users(), bson.M{"role": role})
}

func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	return db.insert(ctx, db.Users(), &u.ID, u)
}

func (db *DB) UpdateUser(ctx context.Context, u *models.User) error {
	return replace(ctx, db.Users(), u.ID, u)
}

func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	return remove(ctx, db.Users(), id)
}
