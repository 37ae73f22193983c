// Package sqlstore implements store.Store on gorm, for PostgreSQL and SQLite.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	DB *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects with the named driver ("postgres" or "sqlite") and pings.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm %s: %w", driver, err)
	}
	s := &Store{DB: db}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.DB.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Category{},
		&models.Branch{},
		&models.Library{},
		&models.Book{},
		&models.Borrowing{},
		&models.Review{},
		&models.EmailLog{},
	)
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func get[T any](ctx context.Context, db *gorm.DB, id int64) (*T, error) {
	var v T
	err := db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var v T
	err := db.WithContext(ctx).Where(query, args...).Order("id").First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// list returns rows ordered by id. An empty query matches everything.
func list[T any](ctx context.Context, db *gorm.DB, query string, args ...any) ([]T, error) {
	out := []T{}
	q := db.WithContext(ctx).Order("id")
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func create[T any](ctx context.Context, db *gorm.DB, v *T) error {
	return mapError(db.WithContext(ctx).Create(v).Error)
}

// save writes every column of v, zero values included.
func save[T any](ctx context.Context, db *gorm.DB, v *T) error {
	res := db.WithContext(ctx).Model(v).Select("*").Updates(v)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func remove[T any](ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(store.ErrDuplicate, err)
	}
	return err
}
