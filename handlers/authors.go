package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/respond"
	"github.com/kevinaaaquil/library/backend/store"
	"github.com/kevinaaaquil/library/backend/validate"
)

type AuthorsHandler struct {
	DB     store.Store
	Logger *slog.Logger
}

var authorSchema = validate.Schema{Fields: []validate.Field{
	{Name: "name", Type: validate.String, Required: true, Message: "Author name must be a string"},
	{Name: "biography", Type: validate.String, Message: "Author biography must be a string"},
	{Name: "birthDate", Type: validate.Date, Message: "Author birthDate must be a valid date"},
}}

type authorDetail struct {
	models.Author
	Books []models.Book `json:"books"`
}

func (h *AuthorsHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.DB.ListAuthors(r.Context())
	if err != nil {
		respond.Error(w, ResolveLogger(h.Logger), apperror.Unexpected("Failed to fetch authors", err))
		return
	}
	respond.Success(w, http.StatusOK, "Authors fetched successfully", authors)
}

func (h *AuthorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid author ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	author, err := h.DB.AuthorByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch author", err))
		return
	}
	if author == nil {
		respond.Error(w, logger, apperror.NotFound("Author not found"))
		return
	}
	books, err := h.DB.ListBooksByAuthor(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch author", err))
		return
	}
	respond.Success(w, http.StatusOK, "Author fetched successfully", authorDetail{Author: *author, Books: withCoverFlags(books)})
}

func (h *AuthorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, authorSchema, body, "Failed to create author"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	now := time.Now().UTC()
	author := &models.Author{
		Name:      body.String("name"),
		Biography: body.String("biography"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if body.String("birthDate") != "" {
		birth := body.Time("birthDate")
		author.BirthDate = &birth
	}
	if err := h.DB.CreateAuthor(ctx, author); err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create author", err))
		return
	}
	respond.Success(w, http.StatusCreated, "Author created successfully", author)
}

func (h *AuthorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid author ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, authorSchema.Partial(), body, "Failed to update author"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	author, err := h.DB.AuthorByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to update author", err))
		return
	}
	if author == nil {
		respond.Error(w, logger, apperror.NotFound("Author not found"))
		return
	}
	if body.Has("name") {
		author.Name = body.String("name")
	}
	if body.Has("biography") {
		author.Biography = body.String("biography")
	}
	if body.String("birthDate") != "" {
		birth := body.Time("birthDate")
		author.BirthDate = &birth
	}
	author.UpdatedAt = time.Now().UTC()
	if err := h.DB.UpdateAuthor(ctx, author); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to update author", "Author not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "Author updated successfully", author)
}

func (h *AuthorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid author ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	author, err := h.DB.AuthorByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to delete author", err))
		return
	}
	if author == nil {
		respond.Error(w, logger, apperror.NotFound("Author not found"))
		return
	}
	if err := h.DB.DeleteAuthor(ctx, id); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to delete author", "Author not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "Author deleted successfully", nil)
}
