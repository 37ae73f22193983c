package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB is the MongoDB implementation of Store. Documents use integer _id values
// drawn from the counters collection.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var _ Store = (*DB)(nil)

func NewMongoDB(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	slog.Info("connected to mongodb", "database", dbName)
	return &DB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (db *DB) Users() *mongo.Collection      { return db.Database.Collection("users") }
func (db *DB) Authors() *mongo.Collection    { return db.Database.Collection("authors") }
func (db *DB) Books() *mongo.Collection      { return db.Database.Collection("books") }
func (db *DB) Categories() *mongo.Collection { return db.Database.Collection("categories") }
func (db *DB) Branches() *mongo.Collection   { return db.Database.Collection("branches") }
func (db *DB) Libraries() *mongo.Collection  { return db.Database.Collection("libraries") }
func (db *DB) Borrowings() *mongo.Collection { return db.Database.Collection("borrowings") }
func (db *DB) Reviews() *mongo.Collection    { return db.Database.Collection("reviews") }
func (db *DB) EmailLogs() *mongo.Collection  { return db.Database.Collection("email_logs") }
func (db *DB) Counters() *mongo.Collection   { return db.Database.Collection("counters") }

func (db *DB) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, nil)
}

func (db *DB) Close(ctx context.Context) error {
	return db.Disconnect(ctx)
}

func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}

// Migrate ensures the unique and lookup indexes exist.
func (db *DB) Migrate(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}, Options: options.Index().SetUnique(true)}
	}
	lookup := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
	}
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		db.Users():      {unique("email"), lookup("role")},
		db.Categories(): {unique("name")},
		db.Branches():   {unique("name")},
		db.Libraries():  {unique("name")},
		db.Books():      {lookup("authorIds"), lookup("branchId"), lookup("libraryId")},
		db.Reviews():    {lookup("bookId")},
		db.EmailLogs():  {lookup("borrowingId")},
	}
	for coll, idx := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

// nextID atomically increments and returns the sequence for name.
func (db *DB) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := db.Counters().FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// insert assigns the next id for coll to *id, then inserts doc.
func (db *DB) insert(ctx context.Context, coll *mongo.Collection, id *int64, doc any) error {
	next, err := db.nextID(ctx, coll.Name())
	if err != nil {
		return err
	}
	*id = next
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var v T
	err := coll.FindOne(ctx, filter).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cur, err := coll.Find(ctx, filter, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func replace(ctx context.Context, coll *mongo.Collection, id int64, doc any) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return mapWriteError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func remove(ctx context.Context, coll *mongo.Collection, id int64) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}
