package store

import (
	"context"
	"errors"

	"github.com/kevinaaaquil/library/backend/models"
)

var (
	// ErrNotFound is returned by update and delete when no row matches the id.
	// Lookups return (nil, nil) instead.
	ErrNotFound = errors.New("store: record not found")

	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("store: duplicate key")
)

type UserStore interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
	CountUsersByRole(ctx context.Context, role models.Role) (int64, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type AuthorStore interface {
	AuthorByID(ctx context.Context, id int64) (*models.Author, error)
	AuthorsByIDs(ctx context.Context, ids []int64) ([]models.Author, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	CreateAuthor(ctx context.Context, a *models.Author) error
	UpdateAuthor(ctx context.Context, a *models.Author) error
	DeleteAuthor(ctx context.Context, id int64) error
}

type BookStore interface {
	BookByID(ctx context.Context, id int64) (*models.Book, error)
	ListBooks(ctx context.Context) ([]models.Book, error)
	ListBooksByAuthor(ctx context.Context, authorID int64) ([]models.Book, error)
	ListBooksByBranch(ctx context.Context, branchID int64) ([]models.Book, error)
	ListBooksByLibrary(ctx context.Context, libraryID int64) ([]models.Book, error)
	CreateBook(ctx context.Context, b *models.Book) error
	UpdateBook(ctx context.Context, b *models.Book) error
	DeleteBook(ctx context.Context, id int64) error
}

type CategoryStore interface {
	CategoryByID(ctx context.Context, id int64) (*models.Category, error)
	CategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

type BranchStore interface {
	BranchByID(ctx context.Context, id int64) (*models.Branch, error)
	BranchByName(ctx context.Context, name string) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
	CreateBranch(ctx context.Context, b *models.Branch) error
	UpdateBranch(ctx context.Context, b *models.Branch) error
	DeleteBranch(ctx context.Context, id int64) error
}

type LibraryStore interface {
	LibraryByID(ctx context.Context, id int64) (*models.Library, error)
	LibraryByName(ctx context.Context, name string) (*models.Library, error)
	ListLibraries(ctx context.Context) ([]models.Library, error)
	CreateLibrary(ctx context.Context, l *models.Library) error
	UpdateLibrary(ctx context.Context, l *models.Library) error
	DeleteLibrary(ctx context.Context, id int64) error
}

type BorrowingStore interface {
	BorrowingByID(ctx context.Context, id int64) (*models.Borrowing, error)
	ListBorrowings(ctx context.Context) ([]models.Borrowing, error)
	CreateBorrowing(ctx context.Context, b *models.Borrowing) error
	UpdateBorrowing(ctx context.Context, b *models.Borrowing) error
	DeleteBorrowing(ctx context.Context, id int64) error
}

type ReviewStore interface {
	ReviewByID(ctx context.Context, id int64) (*models.Review, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
	ListReviewsByBook(ctx context.Context, bookID int64) ([]models.Review, error)
	CreateReview(ctx context.Context, r *models.Review) error
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, id int64) error
}

type EmailLogStore interface {
	InsertEmailLog(ctx context.Context, log *models.EmailLog) error
	ListEmailLogsByBorrowing(ctx context.Context, borrowingID int64) ([]models.EmailLog, error)
}

// Store is the persistence port used by the HTTP layer. Create methods assign
// the new id to the passed record. Lists are ordered by id ascending.
type Store interface {
	UserStore
	AuthorStore
	BookStore
	CategoryStore
	BranchStore
	LibraryStore
	BorrowingStore
	ReviewStore
	EmailLogStore

	// Migrate creates indexes or tables. It is safe to run repeatedly.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
