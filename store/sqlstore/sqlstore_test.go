package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })
	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn")
	assert.Error(t, err)

	_, err = Open(context.Background(), "sqlite", "")
	assert.Error(t, err)
}

func TestMigrateIsRepeatable(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	u := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash", Role: models.RoleAdmin}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.NotZero(t, u.ID)

	err := s.CreateUser(ctx, &models.User{Name: "Copy", Email: "ada@example.com", Password: "hash", Role: models.RoleReader})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	n, err := s.CountUsersByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := s.UserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, models.RoleAdmin, got.Role)

	none, err := s.UserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)

	u.Name = "Ada L."
	require.NoError(t, s.UpdateUser(ctx, u))
	got, err = s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)

	require.NoError(t, s.DeleteUser(ctx, u.ID))
	assert.ErrorIs(t, s.DeleteUser(ctx, u.ID), store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateUser(ctx, u), store.ErrNotFound)
}

func TestBooksWithAuthorsAndBranches(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	cat := &models.Category{Name: "Fiction"}
	require.NoError(t, s.CreateCategory(ctx, cat))
	branch := &models.Branch{Name: "North", Address: "1 North St"}
	require.NoError(t, s.CreateBranch(ctx, branch))

	a1 := &models.Author{Name: "First"}
	a2 := &models.Author{Name: "Second"}
	require.NoError(t, s.CreateAuthor(ctx, a1))
	require.NoError(t, s.CreateAuthor(ctx, a2))

	published := time.Date(2001, 5, 1, 0, 0, 0, 0, time.UTC)
	b1 := &models.Book{Title: "Both", PublicationDate: published, Status: models.StatusAvailable, CategoryID: cat.ID, BranchID: &branch.ID, AuthorIDs: []int64{a1.ID, a2.ID}}
	b2 := &models.Book{Title: "Solo", PublicationDate: published, Status: models.StatusBorrowed, CategoryID: cat.ID, AuthorIDs: []int64{a2.ID}}
	require.NoError(t, s.CreateBook(ctx, b1))
	require.NoError(t, s.CreateBook(ctx, b2))

	got, err := s.BookByID(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{a1.ID, a2.ID}, got.AuthorIDs)
	assert.True(t, published.Equal(got.PublicationDate))

	byAuthor, err := s.ListBooksByAuthor(ctx, a1.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Both", byAuthor[0].Title)

	byAuthor, err = s.ListBooksByAuthor(ctx, a2.ID)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	byBranch, err := s.ListBooksByBranch(ctx, branch.ID)
	require.NoError(t, err)
	require.Len(t, byBranch, 1)
	assert.Equal(t, b1.ID, byBranch[0].ID)

	authors, err := s.AuthorsByIDs(ctx, []int64{a2.ID})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Second", authors[0].Name)

	b2.BranchID = nil
	b2.Description = ""
	b2.Status = models.StatusDamaged
	require.NoError(t, s.UpdateBook(ctx, b2))
	got, err = s.BookByID(ctx, b2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDamaged, got.Status)
}

func TestUniqueNamesAndLookups(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.CreateLibrary(ctx, &models.Library{Name: "Central", Address: "Main"}))
	err := s.CreateLibrary(ctx, &models.Library{Name: "Central", Address: "Elsewhere"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	lib, err := s.LibraryByName(ctx, "Central")
	require.NoError(t, err)
	require.NotNil(t, lib)
	assert.Equal(t, "Main", lib.Address)

	missing, err := s.CategoryByName(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBorrowingsReviewsAndLogs(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	borrowed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	b := &models.Borrowing{BookID: 1, UserID: 2, BorrowDate: borrowed}
	require.NoError(t, s.CreateBorrowing(ctx, b))

	returned := borrowed.AddDate(0, 0, 14)
	b.ReturnDate = &returned
	require.NoError(t, s.UpdateBorrowing(ctx, b))
	got, err := s.BorrowingByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReturnDate)
	assert.True(t, returned.Equal(*got.ReturnDate))

	require.NoError(t, s.CreateReview(ctx, &models.Review{Content: "Great", Rating: 4.5, BookID: 1, UserID: 2}))
	require.NoError(t, s.CreateReview(ctx, &models.Review{Content: "Meh", Rating: 2, BookID: 3, UserID: 2}))
	reviews, err := s.ListReviewsByBook(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4.5, reviews[0].Rating)

	require.NoError(t, s.InsertEmailLog(ctx, &models.EmailLog{BorrowingID: b.ID, ToEmail: "r@example.com", SentAt: time.Now()}))
	logs, err := s.ListEmailLogsByBorrowing(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	all, err := s.ListBorrowings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
