package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/respond"
	"github.com/kevinaaaquil/library/backend/store"
)

type LibrariesHandler struct {
	DB     store.Store
	Logger *slog.Logger
}

type libraryDetail struct {
	models.Library
	Books []models.Book `json:"books"`
}

func (h *LibrariesHandler) detail(r *http.Request, l models.Library) (libraryDetail, error) {
	books, err := h.DB.ListBooksByLibrary(r.Context(), l.ID)
	if err != nil {
		return libraryDetail{}, err
	}
	return libraryDetail{Library: l, Books: withCoverFlags(books)}, nil
}

func (h *LibrariesHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := ResolveLogger(h.Logger)
	libraries, err := h.DB.ListLibraries(r.Context())
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch libraries", err))
		return
	}
	out := make([]libraryDetail, 0, len(libraries))
	for _, l := range libraries {
		d, err := h.detail(r, l)
		if err != nil {
			respond.Error(w, logger, apperror.Unexpected("Failed to fetch libraries", err))
			return
		}
		out = append(out, d)
	}
	respond.Success(w, http.StatusOK, "Libraries fetched successfully", out)
}

func (h *LibrariesHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := ResolveLogger(h.Logger)
	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	library, err := h.DB.LibraryByID(r.Context(), id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch library", err))
		return
	}
	if library == nil {
		respond.Error(w, logger, apperror.NotFound("Library not found"))
		return
	}
	d, err := h.detail(r, *library)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch library", err))
		return
	}
	respond.Success(w, http.StatusOK, "Library fetched successfully", d)
}

func (h *LibrariesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, siteCreateSchema, body, "Failed to create library"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	existing, err := h.DB.LibraryByName(ctx, body.String("name"))
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create library", err))
		return
	}
	if existing != nil {
		respond.Error(w, logger, apperror.BadRequest("Library with this name already exists"))
		return
	}
	now := time.Now().UTC()
	library := &models.Library{Name: body.String("name"), Address: body.String("address"), CreatedAt: now, UpdatedAt: now}
	if err := h.DB.CreateLibrary(ctx, library); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to create library", "", "Library with this name already exists"))
		return
	}
	respond.Success(w, http.StatusCreated, "Library created successfully", library)
}

func (h *LibrariesHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	if err := checkBody(ctx, siteUpdateSchema, body, "Failed to update library"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	library, err := h.DB.LibraryByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to update library", err))
		return
	}
	if library == nil {
		respond.Error(w, logger, apperror.NotFound("Library not found"))
		return
	}
	if name := body.String("name"); name != "" && name != library.Name {
		existing, err := h.DB.LibraryByName(ctx, name)
		if err != nil {
			respond.Error(w, logger, apperror.Unexpected("Failed to update library", err))
			return
		}
		if existing != nil {
			respond.Error(w, logger, apperror.BadRequest("Library with this name already exists"))
			return
		}
		library.Name = name
	}
	if address := body.String("address"); address != "" {
		library.Address = address
	}
	library.UpdatedAt = time.Now().UTC()
	if err := h.DB.UpdateLibrary(ctx, library); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to update library", "Library not found", "Library with this name already exists"))
		return
	}
	respond.Success(w, http.StatusOK, "Library updated successfully", library)
}

func (h *LibrariesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	library, err := h.DB.LibraryByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to delete library", err))
		return
	}
	if library == nil {
		respond.Error(w, logger, apperror.NotFound("Library not found"))
		return
	}
	if err := h.DB.DeleteLibrary(ctx, id); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to delete library", "Library not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "Library deleted successfully", nil)
}
