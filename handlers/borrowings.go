package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/respond"
	"github.com/kevinaaaquil/library/backend/service"
	"github.com/kevinaaaquil/library/backend/store"
	"github.com/kevinaaaquil/library/backend/validate"
)

// ReceiptSender mails a borrowing receipt to the reader.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, r service.Receipt) error
}

type BorrowingsHandler struct {
	DB store.Store
	// Mailer is nil when SMTP is not configured.
	Mailer ReceiptSender
	Logger *slog.Logger
}

type borrowingDetail struct {
	models.Borrowing
	Receipts []models.EmailLog `json:"receipts"`
}

func (h *BorrowingsHandler) schema() validate.Schema {
	return validate.Schema{Fields: []validate.Field{
		{Name: "bookId", Type: validate.Integer, Required: true, Message: "Book ID must be a number",
			Exists: exists(h.DB.BookByID), ExistsMessage: "Book ID does not exist"},
		{Name: "userId", Type: validate.Integer, Required: true, Message: "User ID must be a number",
			Exists: exists(h.DB.UserByID), ExistsMessage: "User ID does not exist"},
		{Name: "borrowDate", Type: validate.Day, Required: true,
			Message: "Invalid borrowDate format. Expected format is YYYY-MM-DD"},
		{Name: "returnDate", Type: validate.Day,
			Message: "Invalid returnDate format. Expected format is YYYY-MM-DD"},
	}}
}

func day(body *validate.Object, key string) time.Time {
	t, _ := validate.ParseDay(body.String(key))
	return t
}

func (h *BorrowingsHandler) List(w http.ResponseWriter, r *http.Request) {
	borrowings, err := h.DB.ListBorrowings(r.Context())
	if err != nil {
		respond.Error(w, ResolveLogger(h.Logger), apperror.Unexpected("Failed to fetch borrowing records", err))
		return
	}
	respond.Success(w, http.StatusOK, "Borrowing records fetched successfully", borrowings)
}

func (h *BorrowingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	borrowing, err := h.DB.BorrowingByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch borrowing record", err))
		return
	}
	if borrowing == nil {
		respond.Error(w, logger, apperror.NotFound("Borrowing record not found"))
		return
	}
	receipts, err := h.DB.ListEmailLogsByBorrowing(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch borrowing record", err))
		return
	}
	respond.Success(w, http.StatusOK, "Borrowing record fetched successfully", borrowingDetail{Borrowing: *borrowing, Receipts: receipts})
}

func (h *BorrowingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, h.schema(), body, "Failed to create borrowing record"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	now := time.Now().UTC()
	borrowing := &models.Borrowing{
		BookID:     body.Int("bookId"),
		UserID:     body.Int("userId"),
		BorrowDate: day(body, "borrowDate"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if body.String("returnDate") != "" {
		returned := day(body, "returnDate")
		borrowing.ReturnDate = &returned
	}
	if err := h.DB.CreateBorrowing(ctx, borrowing); err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create borrowing record", err))
		return
	}
	h.sendReceipt(ctx, logger, borrowing)
	respond.Success(w, http.StatusCreated, "Borrowing created successfully", borrowing)
}

// sendReceipt mails the reader and records the delivery. Failures are logged
// and never fail the request.
func (h *BorrowingsHandler) sendReceipt(ctx context.Context, logger *slog.Logger, b *models.Borrowing) {
	if h.Mailer == nil {
		return
	}
	user, err := h.DB.UserByID(ctx, b.UserID)
	if err != nil || user == nil {
		logger.Warn("receipt: load reader", "borrowing_id", b.ID, "user_id", b.UserID, "error", err)
		return
	}
	book, err := h.DB.BookByID(ctx, b.BookID)
	if err != nil || book == nil {
		logger.Warn("receipt: load book", "borrowing_id", b.ID, "book_id", b.BookID, "error", err)
		return
	}
	receipt := service.Receipt{
		ReaderName:  user.Name,
		ReaderEmail: user.Email,
		BookTitle:   book.Title,
		BorrowDate:  b.BorrowDate,
		ReturnDate:  b.ReturnDate,
	}
	if err := h.Mailer.SendReceipt(ctx, receipt); err != nil {
		logger.Warn("receipt: send", "borrowing_id", b.ID, "error", err)
		return
	}
	entry := &models.EmailLog{
		BorrowingID: b.ID,
		BookID:      b.BookID,
		UserID:      b.UserID,
		ToEmail:     user.Email,
		Subject:     receipt.Subject(),
		SentAt:      time.Now().UTC(),
	}
	if err := h.DB.InsertEmailLog(ctx, entry); err != nil {
		logger.Warn("receipt: record", "borrowing_id", b.ID, "error", err)
	}
}

func (h *BorrowingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, h.schema().Partial(), body, "Failed to update borrowing record"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	borrowing, err := h.DB.BorrowingByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to update borrowing record", err))
		return
	}
	if borrowing == nil {
		respond.Error(w, logger, apperror.NotFound("Borrowing record not found"))
		return
	}
	if body.Has("bookId") {
		borrowing.BookID = body.Int("bookId")
	}
	if body.Has("userId") {
		borrowing.UserID = body.Int("userId")
	}
	if body.Has("borrowDate") {
		borrowing.BorrowDate = day(body, "borrowDate")
	}
	if body.String("returnDate") != "" {
		returned := day(body, "returnDate")
		borrowing.ReturnDate = &returned
	}
	borrowing.UpdatedAt = time.Now().UTC()
	if err := h.DB.UpdateBorrowing(ctx, borrowing); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to update borrowing record", "Borrowing record not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "Borrowing record updated successfully", borrowing)
}

func (h *BorrowingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	borrowing, err := h.DB.BorrowingByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to delete borrowing record", err))
		return
	}
	if borrowing == nil {
		respond.Error(w, logger, apperror.NotFound("Borrowing record not found"))
		return
	}
	if err := h.DB.DeleteBorrowing(ctx, id); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to delete borrowing record", "Borrowing record not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "Borrowing record deleted successfully", nil)
}
