package handlers

import (
	"context"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/respond"
)

const coverURLExpiry = 15 * time.Minute

var coverContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

// CoverStorage holds book cover images.
type CoverStorage interface {
	UploadCover(ctx context.Context, bookID int64, filename string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	CoverURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type coverURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

// UploadCover replaces the book's cover with the multipart "file" field.
func (h *BooksHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	if h.Covers == nil {
		respond.Error(w, logger, apperror.Unavailable("Cover storage not configured"))
		return
	}
	id, err := pathID(r, "Invalid book ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	book, err := h.DB.BookByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to upload cover", err))
		return
	}
	if book == nil {
		respond.Error(w, logger, apperror.NotFound("Book not found"))
		return
	}

	if h.MaxCoverBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxCoverBytes)
	}
	if err := r.ParseMultipartForm(h.MaxCoverBytes); err != nil {
		respond.Error(w, logger, apperror.BadRequest("Failed to parse multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, logger, apperror.BadRequest("Missing file"))
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && err != io.ErrUnexpectedEOF {
		respond.Error(w, logger, apperror.BadRequest("Missing file"))
		return
	}
	contentType := http.DetectContentType(sniff[:n])
	if !slices.Contains(coverContentTypes, contentType) {
		respond.Error(w, logger, apperror.BadRequest("Cover must be a JPEG, PNG or WebP image"))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to upload cover", err))
		return
	}

	key, err := h.Covers.UploadCover(ctx, id, header.Filename, file, contentType)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to upload cover", err))
		return
	}
	previous := book.CoverKey
	book.CoverKey = key
	book.UpdatedAt = time.Now().UTC()
	if err := h.DB.UpdateBook(ctx, book); err != nil {
		if delErr := h.Covers.Delete(ctx, key); delErr != nil {
			logger.Warn("delete orphaned cover", "key", key, "error", delErr)
		}
		respond.Error(w, logger, storeError(err, "Failed to upload cover", "Book not found", ""))
		return
	}
	if previous != "" {
		if err := h.Covers.Delete(ctx, previous); err != nil {
			logger.Warn("delete previous cover", "book_id", id, "key", previous, "error", err)
		}
	}
	book.HasCover = true
	respond.Success(w, http.StatusOK, "Cover uploaded successfully", book)
}

// Cover returns a short-lived URL for the book's cover.
func (h *BooksHandler) Cover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	if h.Covers == nil {
		respond.Error(w, logger, apperror.Unavailable("Cover storage not configured"))
		return
	}
	id, err := pathID(r, "Invalid book ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	book, err := h.DB.BookByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch cover", err))
		return
	}
	if book == nil {
		respond.Error(w, logger, apperror.NotFound("Book not found"))
		return
	}
	if book.CoverKey == "" {
		respond.Error(w, logger, apperror.NotFound("Book has no cover"))
		return
	}
	url, err := h.Covers.CoverURL(ctx, book.CoverKey, coverURLExpiry)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch cover", err))
		return
	}
	respond.Success(w, http.StatusOK, "Cover fetched successfully", coverURLResponse{URL: url, ExpiresIn: int(coverURLExpiry.Seconds())})
}
