package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/respond"
	"github.com/kevinaaaquil/library/backend/store"
	"github.com/kevinaaaquil/library/backend/utils"
	"github.com/kevinaaaquil/library/backend/validate"
)

var userSchema = validate.Schema{Fields: []validate.Field{
	{Name: "name", Type: validate.String, Required: true, Message: "Name must be a string"},
	{Name: "email", Type: validate.String, Required: true, Message: "Email must be a string"},
	{Name: "password", Type: validate.String, Required: true, Message: "Password must be a string"},
	{Name: "role", Type: validate.String, Required: true, OneOf: models.RoleNames(),
		Message: "Role must be one of: " + strings.Join(models.RoleNames(), ", ")},
}}

// userUpdater applies a partial user update shared by the admin and
// librarian paths.
type userUpdater struct {
	db         store.UserStore
	bcryptCost int
	adminLock  *sync.Mutex
}

func (u userUpdater) apply(ctx context.Context, user *models.User, body *validate.Object) error {
	if body.Has("name") {
		user.Name = body.String("name")
	}
	if body.Has("email") {
		email := normalizeEmail(body.String("email"))
		if email != user.Email {
			other, err := u.db.UserByEmail(ctx, email)
			if err != nil {
				return apperror.Unexpected("Failed to update user", err)
			}
			if other != nil && other.ID != user.ID {
				return apperror.BadRequest("Email is already in use")
			}
			user.Email = email
		}
	}
	if body.Has("password") {
		hash, err := utils.HashPassword(body.String("password"), u.bcryptCost)
		if err != nil {
			return apperror.Unexpected("Failed to update user", err)
		}
		user.Password = hash
	}
	user.UpdatedAt = time.Now().UTC()

	role := user.Role
	if body.Has("role") {
		role = models.Role(body.String("role"))
	}
	if role == models.RoleAdmin && user.Role != models.RoleAdmin {
		u.adminLock.Lock()
		defer u.adminLock.Unlock()
		admins, err := u.db.CountUsersByRole(ctx, models.RoleAdmin)
		if err != nil {
			return apperror.Unexpected("Failed to update user", err)
		}
		if admins > 0 {
			return apperror.BadRequest("Admin already exists. Only one admin can be created.")
		}
	}
	user.Role = role

	if err := u.db.UpdateUser(ctx, user); err != nil {
		return storeError(err, "Failed to update user", "User not found", "Email is already in use")
	}
	return nil
}

// LibrariansHandler is the ADMIN-only management of LIBRARIAN accounts.
type LibrariansHandler struct {
	DB         store.UserStore
	BcryptCost int
	AdminLock  *sync.Mutex
	Logger     *slog.Logger
}

func (h *LibrariansHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.DB.ListUsersByRole(r.Context(), models.RoleLibrarian)
	if err != nil {
		respond.Error(w, ResolveLogger(h.Logger), apperror.Unexpected("Failed to fetch librarians", err))
		return
	}
	respond.Success(w, http.StatusOK, "Librarians fetched successfully", users)
}

func (h *LibrariansHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := ResolveLogger(h.Logger)
	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	user, err := h.DB.UserByID(r.Context(), id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch librarian", err))
		return
	}
	if user == nil || user.Role != models.RoleLibrarian {
		respond.Error(w, logger, apperror.NotFound("User not found"))
		return
	}
	respond.Success(w, http.StatusOK, "Librarian fetched successfully", user)
}

func (h *LibrariansHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	if err := checkBody(ctx, userSchema, body, "Failed to create user"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	if models.Role(body.String("role")) != models.RoleLibrarian {
		respond.Error(w, logger, apperror.Forbidden("Admins can only create Librarian users"))
		return
	}
	admins, err := h.DB.CountUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create user", err))
		return
	}
	if admins > 1 {
		respond.Error(w, logger, apperror.Forbidden("Admin already exists"))
		return
	}

	email := normalizeEmail(body.String("email"))
	existing, err := h.DB.UserByEmail(ctx, email)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create user", err))
		return
	}
	if existing != nil {
		respond.Error(w, logger, apperror.BadRequest("User with this email already exists"))
		return
	}
	hash, err := utils.HashPassword(body.String("password"), h.BcryptCost)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to create user", err))
		return
	}
	now := time.Now().UTC()
	user := &models.User{
		Name:      body.String("name"),
		Email:     email,
		Password:  hash,
		Role:      models.RoleLibrarian,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.DB.CreateUser(ctx, user); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to create user", "", "User with this email already exists"))
		return
	}
	respond.Success(w, http.StatusCreated, "User created successfully", user)
}

func (h *LibrariansHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	if err := checkBody(ctx, userSchema.Partial(), body, "Failed to update user"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	user, err := h.DB.UserByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to update user", err))
		return
	}
	if user == nil {
		respond.Error(w, logger, apperror.NotFound("User not found"))
		return
	}
	if user.Role != models.RoleLibrarian {
		respond.Error(w, logger, apperror.Forbidden("Admins can only update Librarian users"))
		return
	}
	updater := userUpdater{db: h.DB, bcryptCost: h.BcryptCost, adminLock: h.AdminLock}
	if err := updater.apply(ctx, user, body); err != nil {
		respond.Error(w, logger, err)
		return
	}
	respond.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *LibrariansHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	user, err := h.DB.UserByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to delete user", err))
		return
	}
	if user == nil {
		respond.Error(w, logger, apperror.NotFound("User not found"))
		return
	}
	if user.Role != models.RoleLibrarian {
		respond.Error(w, logger, apperror.Forbidden("Admins can only delete Librarian users"))
		return
	}
	if err := h.DB.DeleteUser(ctx, id); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to delete user", "User not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "User deleted successfully", nil)
}

// ReadersHandler is the LIBRARIAN-only management of reader accounts. ADMIN
// and AUTHOR accounts are out of its reach.
type ReadersHandler struct {
	DB         store.UserStore
	BcryptCost int
	AdminLock  *sync.Mutex
	Logger     *slog.Logger
}

func protectedFromLibrarians(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleAuthor
}

func (h *ReadersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.DB.ListUsersByRole(r.Context(), models.RoleReader)
	if err != nil {
		respond.Error(w, ResolveLogger(h.Logger), apperror.Unexpected("Failed to fetch readers", err))
		return
	}
	respond.Success(w, http.StatusOK, "Readers fetched successfully", users)
}

func (h *ReadersHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := ResolveLogger(h.Logger)
	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	user, err := h.DB.UserByID(r.Context(), id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to fetch reader", err))
		return
	}
	if user == nil || user.Role != models.RoleReader {
		respond.Error(w, logger, apperror.NotFound("reader not found"))
		return
	}
	respond.Success(w, http.StatusOK, "Reader fetched successfully", user)
}

func (h *ReadersHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	if err := checkBody(ctx, userSchema.Partial(), body, "Failed to update user"); err != nil {
		respond.Error(w, logger, err)
		return
	}
	user, err := h.DB.UserByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to update user", err))
		return
	}
	if user == nil {
		respond.Error(w, logger, apperror.NotFound("User not found"))
		return
	}
	if protectedFromLibrarians(user.Role) {
		respond.Error(w, logger, apperror.Forbidden("Cannot update Admin or Author users"))
		return
	}
	updater := userUpdater{db: h.DB, bcryptCost: h.BcryptCost, adminLock: h.AdminLock}
	if err := updater.apply(ctx, user, body); err != nil {
		respond.Error(w, logger, err)
		return
	}
	respond.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *ReadersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	id, err := pathID(r, "Invalid ID format")
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	user, err := h.DB.UserByID(ctx, id)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to delete user", err))
		return
	}
	if user == nil {
		respond.Error(w, logger, apperror.NotFound("reader not found"))
		return
	}
	if protectedFromLibrarians(user.Role) {
		respond.Error(w, logger, apperror.Forbidden("Cannot delete Admin or Author users"))
		return
	}
	if err := h.DB.DeleteUser(ctx, id); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to delete user", "reader not found", ""))
		return
	}
	respond.Success(w, http.StatusOK, "User deleted successfully", nil)
}
