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

type CategoriesHandler struct {
	DB     store.CategoryStore
	Logger *slog.Logger
}

var categorySchema = validate.Schema{Fields: []validate.Field{
	{Name: "name", Type: validate.String, Required: true, Message: "Category name must be a string"},
}}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.DB.ListCategories(r.Context())
	if err != nil {
		respond.Error(w, ResolveLogger(h.Logger), apperror.Unexpected("Failed to fetch categories", err))
		return
	}
	respond.Success(w, http.StatusOK, "Categories fetched successfully", categories)
}

func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := ResolveLogger(h.Logger)
	id, err := pathID(r, "Invalid category ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	category, err := h.DB.CategoryByID(r.Context(), id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch category", err))
		return
	}
	if category == nil {
		respond.Error(w, logger, apperror.NotFound("Category not found"))
		return
	}
	respond.Success(w, http.StatusOK, "Category fetched successfully", category)
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, categorySchema, body, "Failed to create category"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	name := body.String("name")
	existing, err := h.DB.CategoryByName(ctx, name)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create category", err))
		return
	}
	if existing != nil {
		respond.Error(w, logger, apperror.BadRequest("Category name already exists"))
		return
	}
	now := time.Now().UTC()
	category := &models.Category{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := h.DB.CreateCategory(ctx, category); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to create category", "", "Category name already exists"))
		return
	}
	respond.Success(w, http.StatusCreated, "Category created successfully", category)
}

func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid category ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, categorySchema.Partial(), body, "Failed to update category"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	category, err := h.DB.CategoryByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to update category", err))
		return
	}
	if category == nil {
		respond.Error(w, logger, apperror.NotFound("Category not found"))
		return
	}
	if body.Has("name") && body.String("name") != category.Name {
		existing, err := h.DB.CategoryByName(ctx, body.String("name"))
		if err != nil {
			respond.Error(w, logger, apperror.Unexpected("Failed to update category", err))
			return
		}
		if existing != nil {
			respond.Error(w, logger, apperror.BadRequest("Category name already exists"))
			return
		}
		category.Name = body.String("name")
	}
	category.UpdatedAt = time.Now().UTC()
	if err := h.DB.UpdateCategory(ctx, category); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to update category", "Category not found", "Category name already exists"))
		return
	}
	respond.Success(w, http.StatusOK, "Category updated successfully", category)
}

func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid category ID")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	category, err := h.DB.CategoryByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to delete category", err))
		return
	}
	if category == nil {
		respond.Error(w, logger, apperror.NotFound("Category not found"))
		return
	}
	if err := h.DB.DeleteCategory(ctx, id); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to delete category", "Category not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "Category deleted successfully", nil)
}
