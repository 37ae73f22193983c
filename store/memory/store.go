// Package memory is an in-process Store used by tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/store"
)

type Store struct {
	mu sync.RWMutex

	users      *table[models.User]
	authors    *table[models.Author]
	books      *table[models.Book]
	categories *table[models.Category]
	branches   *table[models.Branch]
	libraries  *table[models.Library]
	borrowings *table[models.Borrowing]
	reviews    *table[models.Review]
	emailLogs  *table[models.EmailLog]
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	books := newTable(func(b *models.Book) *int64 { return &b.ID })
	books.clone = func(b models.Book) models.Book {
		b.AuthorIDs = slices.Clone(b.AuthorIDs)
		return b
	}
	return &Store{
		users:      newTable(func(u *models.User) *int64 { return &u.ID }),
		authors:    newTable(func(a *models.Author) *int64 { return &a.ID }),
		books:      books,
		categories: newTable(func(c *models.Category) *int64 { return &c.ID }),
		branches:   newTable(func(b *models.Branch) *int64 { return &b.ID }),
		libraries:  newTable(func(l *models.Library) *int64 { return &l.ID }),
		borrowings: newTable(func(b *models.Borrowing) *int64 { return &b.ID }),
		reviews:    newTable(func(r *models.Review) *int64 { return &r.ID }),
		emailLogs:  newTable(func(l *models.EmailLog) *int64 { return &l.ID }),
	}
}

func (s *Store) Migrate(context.Context) error { return nil }
func (s *Store) Ping(context.Context) error    { return nil }
func (s *Store) Close(context.Context) error   { return nil }

// Users

func (s *Store) UserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.get(id), nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.find(func(u models.User) bool { return u.Email == email }), nil
}

func (s *Store) ListUsersByRole(_ context.Context, role models.Role) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.filter(func(u models.User) bool { return u.Role == role }), nil
}

func (s *Store) CountUsersByRole(_ context.Context, role models.Role) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.count(func(u models.User) bool { return u.Role == role }), nil
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users.find(func(o models.User) bool { return o.Email == u.Email }) != nil {
		return store.ErrDuplicate
	}
	s.users.insert(u)
	return nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users.find(func(o models.User) bool { return o.Email == u.Email && o.ID != u.ID }) != nil {
		return store.ErrDuplicate
	}
	return s.users.replace(u)
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.remove(id)
}

// Authors

func (s *Store) AuthorByID(_ context.Context, id int64) (*models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authors.get(id), nil
}

func (s *Store) AuthorsByIDs(_ context.Context, ids []int64) ([]models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authors.filter(func(a models.Author) bool { return slices.Contains(ids, a.ID) }), nil
}

func (s *Store) ListAuthors(context.Context) ([]models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authors.filter(nil), nil
}

func (s *Store) CreateAuthor(_ context.Context, a *models.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors.insert(a)
	return nil
}

func (s *Store) UpdateAuthor(_ context.Context, a *models.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authors.replace(a)
}

func (s *Store) DeleteAuthor(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authors.remove(id)
}

// Books

func (s *Store) BookByID(_ context.Context, id int64) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books.get(id), nil
}

func (s *Store) ListBooks(context.Context) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books.filter(nil), nil
}

func (s *Store) ListBooksByAuthor(_ context.Context, authorID int64) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books.filter(func(b models.Book) bool { return slices.Contains(b.AuthorIDs, authorID) }), nil
}

func (s *Store) ListBooksByBranch(_ context.Context, branchID int64) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books.filter(func(b models.Book) bool { return b.BranchID != nil && *b.BranchID == branchID }), nil
}

func (s *Store) ListBooksByLibrary(_ context.Context, libraryID int64) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books.filter(func(b models.Book) bool { return b.LibraryID != nil && *b.LibraryID == libraryID }), nil
}

func (s *Store) CreateBook(_ context.Context, b *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books.insert(b)
	return nil
}

func (s *Store) UpdateBook(_ context.Context, b *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books.replace(b)
}

func (s *Store) DeleteBook(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books.remove(id)
}

// Categories

func (s *Store) CategoryByID(_ context.Context, id int64) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.get(id), nil
}

func (s *Store) CategoryByName(_ context.Context, name string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.find(func(c models.Category) bool { return c.Name == name }), nil
}

func (s *Store) ListCategories(context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.filter(nil), nil
}

func (s *Store) CreateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.categories.find(func(o models.Category) bool { return o.Name == c.Name }) != nil {
		return store.ErrDuplicate
	}
	s.categories.insert(c)
	return nil
}

func (s *Store) UpdateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.categories.find(func(o models.Category) bool { return o.Name == c.Name && o.ID != c.ID }) != nil {
		return store.ErrDuplicate
	}
	return s.categories.replace(c)
}

func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.remove(id)
}

// Branches

func (s *Store) BranchByID(_ context.Context, id int64) (*models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branches.get(id), nil
}

func (s *Store) BranchByName(_ context.Context, name string) (*models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branches.find(func(b models.Branch) bool { return b.Name == name }), nil
}

func (s *Store) ListBranches(context.Context) ([]models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branches.filter(nil), nil
}

func (s *Store) CreateBranch(_ context.Context, b *models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.branches.find(func(o models.Branch) bool { return o.Name == b.Name }) != nil {
		return store.ErrDuplicate
	}
	s.branches.insert(b)
	return nil
}

func (s *Store) UpdateBranch(_ context.Context, b *models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.branches.find(func(o models.Branch) bool { return o.Name == b.Name && o.ID != b.ID }) != nil {
		return store.ErrDuplicate
	}
	return s.branches.replace(b)
}

func (s *Store) DeleteBranch(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branches.remove(id)
}

// Libraries

func (s *Store) LibraryByID(_ context.Context, id int64) (*models.Library, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.libraries.get(id), nil
}

func (s *Store) LibraryByName(_ context.Context, name string) (*models.Library, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.libraries.find(func(l models.Library) bool { return l.Name == name }), nil
}

func (s *Store) ListLibraries(context.Context) ([]models.Library, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.libraries.filter(nil), nil
}

func (s *Store) CreateLibrary(_ context.Context, l *models.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.libraries.find(func(o models.Library) bool { return o.Name == l.Name }) != nil {
		return store.ErrDuplicate
	}
	s.libraries.insert(l)
	return nil
}

func (s *Store) UpdateLibrary(_ context.Context, l *models.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.libraries.find(func(o models.Library) bool { return o.Name == l.Name && o.ID != l.ID }) != nil {
		return store.ErrDuplicate
	}
	return s.libraries.replace(l)
}

func (s *Store) DeleteLibrary(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.libraries.remove(id)
}

// Borrowings

func (s *Store) BorrowingByID(_ context.Context, id int64) (*models.Borrowing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.borrowings.get(id), nil
}

func (s *Store) ListBorrowings(context.Context) ([]models.Borrowing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.borrowings.filter(nil), nil
}

func (s *Store) CreateBorrowing(_ context.Context, b *models.Borrowing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.borrowings.insert(b)
	return nil
}

func (s *Store) UpdateBorrowing(_ context.Context, b *models.Borrowing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.borrowings.replace(b)
}

func (s *Store) DeleteBorrowing(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.borrowings.remove(id)
}

// Reviews

func (s *Store) ReviewByID(_ context.Context, id int64) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews.get(id), nil
}

func (s *Store) ListReviews(context.Context) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews.filter(nil), nil
}

func (s *Store) ListReviewsByBook(_ context.Context, bookID int64) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews.filter(func(r models.Review) bool { return r.BookID == bookID }), nil
}

func (s *Store) CreateReview(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews.insert(r)
	return nil
}

func (s *Store) UpdateReview(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviews.replace(r)
}

func (s *Store) DeleteReview(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviews.remove(id)
}

// Email logs

func (s *Store) InsertEmailLog(_ context.Context, log *models.EmailLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emailLogs.insert(log)
	return nil
}

func (s *Store) ListEmailLogsByBorrowing(_ context.Context, borrowingID int64) ([]models.EmailLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailLogs.filter(func(l models.EmailLog) bool { return l.BorrowingID == borrowingID }), nil
}
