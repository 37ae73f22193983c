package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/respond"
	"github.com/kevinaaaquil/library/backend/store"
	"github.com/kevinaaaquil/library/backend/validate"
)

type BooksHandler struct {
	DB store.Store
	// Covers is nil when cover storage is not configured.
	Covers        CoverStorage
	MaxCoverBytes int64
	Logger        *slog.Logger
}

type bookDetail struct {
	models.Book
	Authors  []models.Author  `json:"authors"`
	Category *models.Category `json:"category"`
	Library  *models.Library  `json:"library"`
	Branch   *models.Branch   `json:"branch"`
}

type bookWithReviews struct {
	bookDetail
	Reviews []models.Review `json:"reviews"`
}

func (h *BooksHandler) schema() validate.Schema {
	return validate.Schema{Fields: []validate.Field{
		{Name: "title", Type: validate.String, Required: true, Message: "Book title must be a string"},
		{Name: "description", Type: validate.String, Required: true, Message: "Description must be a string"},
		{Name: "publicationDate", Type: validate.Date, Required: true, Message: "Publication date must be a valid date"},
		{Name: "status", Type: validate.String, Required: true, OneOf: models.BookStatusNames(),
			Message: "Status must be one of: " + strings.Join(models.BookStatusNames(), ", ")},
		{Name: "categoryId", Type: validate.Integer, Required: true, Message: "Category ID must be a number",
			Exists: exists(h.DB.CategoryByID), ExistsMessage: "Category ID does not exist"},
		{Name: "libraryId", Type: validate.Integer, Message: "Library ID must be a number",
			Exists: exists(h.DB.LibraryByID), ExistsMessage: "Library ID does not exist"},
		{Name: "branchId", Type: validate.Integer, Message: "Branch ID must be a number",
			Exists: exists(h.DB.BranchByID), ExistsMessage: "Branch ID does not exist"},
		{Name: "authorIds", Type: validate.IntegerList, Message: "Author IDs must be an array of numbers",
			Exists: exists(h.DB.AuthorByID), ExistsMessage: "Author ID %d does not exist"},
	}}
}

// withCoverFlags marks which books have a stored cover.
func withCoverFlags(books []models.Book) []models.Book {
	for i := range books {
		books[i].HasCover = books[i].CoverKey != ""
	}
	return books
}

func (h *BooksHandler) detail(ctx context.Context, b models.Book) (bookDetail, error) {
	b.HasCover = b.CoverKey != ""
	d := bookDetail{Book: b}
	var err error
	if d.Authors, err = h.DB.AuthorsByIDs(ctx, b.AuthorIDs); err != nil {
		return d, err
	}
	if d.Category, err = h.DB.CategoryByID(ctx, b.CategoryID); err != nil {
		return d, err
	}
	if b.LibraryID != nil {
		if d.Library, err = h.DB.LibraryByID(ctx, *b.LibraryID); err != nil {
			return d, err
		}
	}
	if b.BranchID != nil {
		if d.Branch, err = h.DB.BranchByID(ctx, *b.BranchID); err != nil {
			return d, err
		}
	}
	return d, nil
}

func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	books, err := h.DB.ListBooks(ctx)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch books", err))
		return
	}
	out := make([]bookDetail, 0, len(books))
	for _, b := range books {
		d, err := h.detail(ctx, b)
		if err != nil {
			respond.Error(w, logger, apperror.Unexpected("Failed to fetch books", err))
			return
		}
		out = append(out, d)
	}
	respond.Success(w, http.StatusOK, "Books fetched successfully", out)
}

func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid book ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	book, err := h.DB.BookByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch book", err))
		return
	}
	if book == nil {
		respond.Error(w, logger, apperror.NotFound("Book not found"))
		return
	}
	d, err := h.detail(ctx, *book)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch book", err))
		return
	}
	reviews, err := h.DB.ListReviewsByBook(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch book", err))
		return
	}
	respond.Success(w, http.StatusOK, "Book fetched successfully", bookWithReviews{bookDetail: d, Reviews: reviews})
}

func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, h.schema(), body, "Failed to create book"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	now := time.Now().UTC()
	book := &models.Book{
		Title:           body.String("title"),
		Description:     body.String("description"),
		PublicationDate: body.Time("publicationDate"),
		Status:          models.BookStatus(body.String("status")),
		CategoryID:      body.Int("categoryId"),
		AuthorIDs:       body.Ints("authorIds"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if book.AuthorIDs == nil {
		book.AuthorIDs = []int64{}
	}
	if body.Has("libraryId") {
		id := body.Int("libraryId")
		book.LibraryID = &id
	}
	if body.Has("branchId") {
		id := body.Int("branchId")
		book.BranchID = &id
	}
	if err := h.DB.CreateBook(ctx, book); err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create book", err))
		return
	}
	respond.Success(w, http.StatusCreated, "Book created successfully", book)
}

func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid book ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, h.schema().Partial(), body, "Failed to update book"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	book, err := h.DB.BookByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to update book", err))
		return
	}
	if book == nil {
		respond.Error(w, logger, apperror.NotFound("Book not found"))
		return
	}
	if body.Has("title") {
		book.Title = body.String("title")
	}
	if body.Has("description") {
		book.Description = body.String("description")
	}
	if body.Has("publicationDate") {
		book.PublicationDate = body.Time("publicationDate")
	}
	if body.Has("status") {
		book.Status = models.BookStatus(body.String("status"))
	}
	if body.Has("categoryId") {
		book.CategoryID = body.Int("categoryId")
	}
	if body.Has("libraryId") {
		libraryID := body.Int("libraryId")
		book.LibraryID = &libraryID
	}
	if body.Has("branchId") {
		branchID := body.Int("branchId")
		book.BranchID = &branchID
	}
	if body.Has("authorIds") {
		book.AuthorIDs = body.Ints("authorIds")
		if book.AuthorIDs == nil {
			book.AuthorIDs = []int64{}
		}
	}
	book.UpdatedAt = time.Now().UTC()
	if err := h.DB.UpdateBook(ctx, book); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to update book", "Book not found", ""))
		return
	}
	book.HasCover = book.CoverKey != ""
	respond.Success(w, http.StatusOK, "Book updated successfully", book)
}

// Delete removes the book and, when stored, its cover. Borrowings and reviews
// that reference the book are left in place.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid book ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	book, err := h.DB.BookByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to delete book", err))
		return
	}
	if book == nil {
		respond.Error(w, logger, apperror.NotFound("Book not found"))
		return
	}
	if err := h.DB.DeleteBook(ctx, id); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to delete book", "Book not found", ""))
		return
	}
	if book.CoverKey != "" && h.Covers != nil {
		if err := h.Covers.Delete(ctx, book.CoverKey); err != nil {
			logger.Warn("delete cover", "book_id", id, "key", book.CoverKey, "error", err)
		}
	}
	respond.Success(w, http.StatusOK, "Book deleted successfully", nil)
}
