package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/middleware"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/respond"
	"github.com/kevinaaaquil/library/backend/store"
	"github.com/kevinaaaquil/library/backend/validate"
)

type ReviewsHandler struct {
	DB     store.Store
	Logger *slog.Logger
}

func (h *ReviewsHandler) schema() validate.Schema {
	return validate.Schema{Fields: []validate.Field{
		{Name: "content", Type: validate.String, Required: true, Message: "Content must be a string"},
		{Name: "rating", Type: validate.Number, Required: true, Message: "Rating must be a number"},
		{Name: "bookId", Type: validate.Integer, Required: true, Message: "Book ID must be a number",
			Exists: exists(h.DB.BookByID), ExistsMessage: "Book ID does not exist"},
		{Name: "userId", Type: validate.Integer, Required: true, Message: "User ID must be a number",
			Exists: exists(h.DB.UserByID), ExistsMessage: "User ID does not exist"},
	}}
}

// updateSchema drops bookId: a review stays attached to the book it was
// written for.
func (h *ReviewsHandler) updateSchema() validate.Schema {
	s := h.schema()
	s.Fields = slices.DeleteFunc(s.Fields, func(f validate.Field) bool { return f.Name == "bookId" })
	return s.Partial()
}

// owned loads the review and reports whether the supplied userId, the stored
// owner and the caller all agree. A missing review is reported as not owned.
func (h *ReviewsHandler) owned(r *http.Request, id int64, body *validate.Object) (*models.Review, bool, error) {
	review, err := h.DB.ReviewByID(r.Context(), id)
	if err != nil || review == nil {
		return nil, false, err
	}
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return review, false, nil
	}
	supplied := body.Int("userId")
	return review, supplied != 0 && supplied == review.UserID && supplied == caller.ID, nil
}

func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.DB.ListReviews(r.Context())
	if err != nil {
		respond.Error(w, ResolveLogger(h.Logger), apperror.Unexpected("Failed to fetch reviews", err))
		return
	}
	respond.Success(w, http.StatusOK, "Reviews fetched successfully", reviews)
}

func (h *ReviewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := ResolveLogger(h.Logger)
	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	review, err := h.DB.ReviewByID(r.Context(), id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch review", err))
		return
	}
	if review == nil {
		respond.Error(w, logger, apperror.NotFound("Review not found"))
		return
	}
	respond.Success(w, http.StatusOK, "Review fetched successfully", review)
}

func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, h.schema(), body, "Failed to create review"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	now := time.Now().UTC()
	review := &models.Review{
		Content:   body.String("content"),
		Rating:    body.Float("rating"),
		BookID:    body.Int("bookId"),
		UserID:    body.Int("userId"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.DB.CreateReview(ctx, review); err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create review", err))
		return
	}
	respond.Success(w, http.StatusCreated, "Review created successfully", review)
}

func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	review, ok, err := h.owned(r, id, body)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to update review", err))
		return
	}
	if !ok {
		respond.Error(w, logger, apperror.Forbidden("You can only update your own reviews"))
		return
	}
	if err := checkBody(ctx, h.updateSchema(), body, "Failed to update review"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	if body.Has("content") {
		review.Content = body.String("content")
	}
	if body.Has("rating") {
		review.Rating = body.Float("rating")
	}
	review.UpdatedAt = time.Now().UTC()
	if err := h.DB.UpdateReview(ctx, review); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to update review", "Review not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "Review updated successfully", review)
}

func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	_, ok, err := h.owned(r, id, body)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to delete review", err))
		return
	}
	if !ok {
		respond.Error(w, logger, apperror.Forbidden("You can only delete your own reviews"))
		return
	}
	if err := h.DB.DeleteReview(ctx, id); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to delete review", "Review not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "Review deleted successfully", nil)
}
