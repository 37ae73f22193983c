package store

import (
	"context"

	"github.com/kevinaaaquil/library/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

// InsertEmailLog records that a receipt was mailed.
func (db *DB) InsertEmailLog(ctx context.Context, log *models.EmailLog) error {
	return db.insert(ctx, db.EmailLogs(), &log.ID, log)
}

func (db *DB) ListEmailLogsByBorrowing(ctx context.Context, borrowingID int64) ([]models.EmailLog, error) {
	return findMany[models.EmailLog](ctx, db.EmailLogs(), bson.M{"borrowingId": borrowingID})
}
