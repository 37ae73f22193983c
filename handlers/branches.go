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

// Branches and libraries accept exactly name and address.
var (
	siteCreateSchema = validate.Schema{Strict: true, Fields: []validate.Field{
		{Name: "name", Type: validate.String, Required: true,
			Message: "Name is required and must be a string", RequiredMessage: "Name is required and must be a string"},
		{Name: "address", Type: validate.String, Required: true,
			Message: "Address is required and must be a string", RequiredMessage: "Address is required and must be a string"},
	}}
	siteUpdateSchema = validate.Schema{Strict: true, Fields: []validate.Field{
		{Name: "name", Type: validate.String, Message: "Name must be a string"},
		{Name: "address", Type: validate.String, Message: "Address must be a string"},
	}}
)

type BranchesHandler struct {
	DB     store.Store
	Logger *slog.Logger
}

type branchDetail struct {
	models.Branch
	Books []models.Book `json:"books"`
}

func (h *BranchesHandler) detail(r *http.Request, b models.Branch) (branchDetail, error) {
	books, err := h.DB.ListBooksByBranch(r.Context(), b.ID)
	if err != nil {
		return branchDetail{}, err
	}
	return branchDetail{Branch: b, Books: withCoverFlags(books)}, nil
}

func (h *BranchesHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := ResolveLogger(h.Logger)
	branches, err := h.DB.ListBranches(r.Context())
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch branches", err))
		return
	}
	out := make([]branchDetail, 0, len(branches))
	for _, b := range branches {
		d, err := h.detail(r, b)
		if err != nil {
			respond.Error(w, logger, apperror.Unexpected("Failed to fetch branches", err))
			return
		}
		out = append(out, d)
	}
	respond.Success(w, http.StatusOK, "Branches fetched successfully", out)
}

func (h *BranchesHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := ResolveLogger(h.Logger)
	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	branch, err := h.DB.BranchByID(r.Context(), id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch branch", err))
		return
	}
	if branch == nil {
		respond.Error(w, logger, apperror.NotFound("Branch not found"))
		return
	}
	d, err := h.detail(r, *branch)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch branch", err))
		return
	}
	respond.Success(w, http.StatusOK, "Branch fetched successfully", d)
}

func (h *BranchesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, siteCreateSchema, body, "Failed to create branch"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	existing, err := h.DB.BranchByName(ctx, body.String("name"))
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create branch", err))
		return
	}
	if existing != nil {
		respond.Error(w, logger, apperror.BadRequest("Branch with this name already exists"))
		return
	}
	now := time.Now().UTC()
	branch := &models.Branch{Name: body.String("name"), Address: body.String("address"), CreatedAt: now, UpdatedAt: now}
	if err := h.DB.CreateBranch(ctx, branch); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to create branch", "", "Branch with this name already exists"))
		return
	}
	respond.Success(w, http.StatusCreated, "Branch created successfully", branch)
}

func (h *BranchesHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	if err := checkBody(ctx, siteUpdateSchema, body, "Failed to update branch"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	branch, err := h.DB.BranchByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to update branch", err))
		return
	}
	if branch == nil {
		respond.Error(w, logger, apperror.NotFound("Branch not found"))
		return
	}
	if name := body.String("name"); name != "" && name != branch.Name {
		existing, err := h.DB.BranchByName(ctx, name)
		if err != nil {
			respond.Error(w, logger, apperror.Unexpected("Failed to update branch", err))
			return
		}
		if existing != nil {
			respond.Error(w, logger, apperror.BadRequest("Branch with this name already exists"))
			return
		}
		branch.Name = name
	}
	if address := body.String("address"); address != "" {
		branch.Address = address
	}
	branch.UpdatedAt = time.Now().UTC()
	if err := h.DB.UpdateBranch(ctx, branch); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to update branch", "Branch not found", "Branch with this name already exists"))
		return
	}
	respond.Success(w, http.StatusOK, "Branch updated successfully", branch)
}

func (h *BranchesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	branch, err := h.DB.BranchByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to delete branch", err))
		return
	}
	if branch == nil {
		respond.Error(w, logger, apperror.NotFound("Branch not found"))
		return
	}
	if err := h.DB.DeleteBranch(ctx, id); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to delete branch", "Branch not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "Branch deleted successfully", nil)
}
