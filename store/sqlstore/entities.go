package sqlstore

import (
	"context"
	"slices"

	"github.com/kevinaaaquil/library/backend/models"
)

func (s *Store) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return get[models.User](ctx, s.DB, id)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](ctx, s.DB, "email = ?", email)
}

func (s *Store) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return list[models.User](ctx, s.DB, "role = ?", role)
}

func (s *Store) CountUsersByRole(ctx context.Context, role models.Role) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return create(ctx, s.DB, u)
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	return save(ctx, s.DB, u)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return remove[models.User](ctx, s.DB, id)
}

func (s *Store) AuthorByID(ctx context.Context, id int64) (*models.Author, error) {
	return get[models.Author](ctx, s.DB, id)
}

func (s *Store) AuthorsByIDs(ctx context.Context, ids []int64) ([]models.Author, error) {
	if len(ids) == 0 {
		return []models.Author{}, nil
	}
	return list[models.Author](ctx, s.DB, "id IN ?", ids)
}

func (s *Store) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return list[models.Author](ctx, s.DB, "")
}

func (s *Store) CreateAuthor(ctx context.Context, a *models.Author) error {
	return create(ctx, s.DB, a)
}

func (s *Store) UpdateAuthor(ctx context.Context, a *models.Author) error {
	return save(ctx, s.DB, a)
}

func (s *Store) DeleteAuthor(ctx context.Context, id int64) error {
	return remove[models.Author](ctx, s.DB, id)
}

func (s *Store) BookByID(ctx context.Context, id int64) (*models.Book, error) {
	return get[models.Book](ctx, s.DB, id)
}

func (s *Store) ListBooks(ctx context.Context) ([]models.Book, error) {
	return list[models.Book](ctx, s.DB, "")
}

// ListBooksByAuthor filters in Go: author ids are a serialized column and
// the two dialects query JSON differently.
func (s *Store) ListBooksByAuthor(ctx context.Context, authorID int64) ([]models.Book, error) {
	books, err := list[models.Book](ctx, s.DB, "")
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(books, func(b models.Book) bool {
		return !slices.Contains(b.AuthorIDs, authorID)
	}), nil
}

func (s *Store) ListBooksByBranch(ctx context.Context, branchID int64) ([]models.Book, error) {
	return list[models.Book](ctx, s.DB, "branch_id = ?", branchID)
}

func (s *Store) ListBooksByLibrary(ctx context.Context, libraryID int64) ([]models.Book, error) {
	return list[models.Book](ctx, s.DB, "library_id = ?", libraryID)
}

func (s *Store) CreateBook(ctx context.Context, b *models.Book) error {
	return create(ctx, s.DB, b)
}

func (s *Store) UpdateBook(ctx context.Context, b *models.Book) error {
	return save(ctx, s.DB, b)
}

func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	return remove[models.Book](ctx, s.DB, id)
}

func (s *Store) CategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return get[models.Category](ctx, s.DB, id)
}

func (s *Store) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return first[models.Category](ctx, s.DB, "name = ?", name)
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	return list[models.Category](ctx, s.DB, "")
}

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	return create(ctx, s.DB, c)
}

func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	return save(ctx, s.DB, c)
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return remove[models.Category](ctx, s.DB, id)
}

func (s *Store) BranchByID(ctx context.Context, id int64) (*models.Branch, error) {
	return get[models.Branch](ctx, s.DB, id)
}

func (s *Store) BranchByName(ctx context.Context, name string) (*models.Branch, error) {
	return first[models.Branch](ctx, s.DB, "name = ?", name)
}

func (s *Store) ListBranches(ctx context.Context) ([]models.Branch, error) {
	return list[models.Branch](ctx, s.DB, "")
}

func (s *Store) CreateBranch(ctx context.Context, b *models.Branch) error {
	return create(ctx, s.DB, b)
}

func (s *Store) UpdateBranch(ctx context.Context, b *models.Branch) error {
	return save(ctx, s.DB, b)
}

func (s *Store) DeleteBranch(ctx context.Context, id int64) error {
	return remove[models.Branch](ctx, s.DB, id)
}

func (s *Store) LibraryByID(ctx context.Context, id int64) (*models.Library, error) {
	return get[models.Library](ctx, s.DB, id)
}

func (s *Store) LibraryByName(ctx context.Context, name string) (*models.Library, error) {
	return first[models.Library](ctx, s.DB, "name = ?", name)
}

func (s *Store) ListLibraries(ctx context.Context) ([]models.Library, error) {
	return list[models.Library](ctx, s.DB, "")
}

func (s *Store) CreateLibrary(ctx context.Context, l *models.Library) error {
	return create(ctx, s.DB, l)
}

func (s *Store) UpdateLibrary(ctx context.Context, l *models.Library) error {
	return save(ctx, s.DB, l)
}

func (s *Store) DeleteLibrary(ctx context.Context, id int64) error {
	return remove[models.Library](ctx, s.DB, id)
}

func (s *Store) BorrowingByID(ctx context.Context, id int64) (*models.Borrowing, error) {
	return get[models.Borrowing](ctx, s.DB, id)
}

func (s *Store) ListBorrowings(ctx context.Context) ([]models.Borrowing, error) {
	return list[models.Borrowing](ctx, s.DB, "")
}

func (s *Store) CreateBorrowing(ctx context.Context, b *models.Borrowing) error {
	return create(ctx, s.DB, b)
}

func (s *Store) UpdateBorrowing(ctx context.Context, b *models.Borrowing) error {
	return save(ctx, s.DB, b)
}

func (s *Store) DeleteBorrowing(ctx context.Context, id int64) error {
	return remove[models.Borrowing](ctx, s.DB, id)
}

func (s *Store) ReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	return get[models.Review](ctx, s.DB, id)
}

func (s *Store) ListReviews(ctx context.Context) ([]models.Review, error) {
	return list[models.Review](ctx, s.DB, "")
}

func (s *Store) ListReviewsByBook(ctx context.Context, bookID int64) ([]models.Review, error) {
	return list[models.Review](ctx, s.DB, "book_id = ?", bookID)
}

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	return create(ctx, s.DB, r)
}

func (s *Store) UpdateReview(ctx context.Context, r *models.Review) error {
	return save(ctx, s.DB, r)
}

func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	return remove[models.Review](ctx, s.DB, id)
}

func (s *Store) InsertEmailLog(ctx context.Context, log *models.EmailLog) error {
	return create(ctx, s.DB, log)
}

func (s *Store) ListEmailLogsByBorrowing(ctx context.Context, borrowingID int64) ([]models.EmailLog, error) {
	return list[models.EmailLog](ctx, s.DB, "borrowing_id = ?", borrowingID)
}
