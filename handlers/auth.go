package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/auth"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/respond"
	"github.com/kevinaaaquil/library/backend/store"
	"github.com/kevinaaaquil/library/backend/utils"
	"github.com/kevinaaaquil/library/backend/validate"
)

type AuthHandler struct {
	DB         store.UserStore
	Tokens     *auth.Tokens
	BcryptCost int
	// AdminLock serialises every write that can create an ADMIN.
	AdminLock *sync.Mutex
	Logger    *slog.Logger
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type registerResponse struct {
	User *models.User `json:"user"`
	tokenPair
}

var (
	registerSchema = validate.Schema{Fields: []validate.Field{
		{Name: "name", Type: validate.String, Required: true, Message: "Name must be a string"},
		{Name: "email", Type: validate.String, Required: true, Message: "Email must be a string"},
		{Name: "password", Type: validate.String, Required: true, Message: "Password must be a string"},
		{Name: "role", Type: validate.String, Required: true, Message: "Role must be a string"},
	}}
	loginSchema = validate.Schema{Fields: []validate.Field{
		{Name: "email", Type: validate.String, Required: true, Message: "Email must be a string"},
		{Name: "password", Type: validate.String, Required: true, Message: "Password must be a string"},
	}}
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a READER or the single ADMIN and returns a token pair.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	res, _ := registerSchema.Check(ctx, body)
	role := models.Role(body.String("role"))
	// A role that is not one of the known names, of any JSON type, is
	// reported ahead of the other type errors.
	if len(res.MissingFields) == 0 && !role.Valid() {
		respond.Error(w, logger, apperror.BadRequest("Select a valid role: "+strings.Join(models.RoleNames(), ", ")))
		return
	}
	if !res.OK() {
		respond.Error(w, logger, validationError("All fields are required: ", res))
		return
	}
	if role == models.RoleLibrarian || role == models.RoleAuthor {
		respond.Error(w, logger, apperror.BadRequest("Librarians and authors cannot register."))
		return
	}
	if role == models.RoleAdmin {
		h.AdminLock.Lock()
		defer h.AdminLock.Unlock()
		admins, err := h.DB.CountUsersByRole(ctx, models.RoleAdmin)
		if err != nil {
			respond.Error(w, logger, apperror.Unexpected("Failed to register user", err))
			return
		}
		if admins > 0 {
			respond.Error(w, logger, apperror.BadRequest("Admin already exists. Only one admin can be created."))
			return
		}
	}

	email := normalizeEmail(body.String("email"))
	existing, err := h.DB.UserByEmail(ctx, email)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to register user", err))
		return
	}
	if existing != nil {
		respond.Error(w, logger, apperror.BadRequest("A user with this email already exists."))
		return
	}
	hash, err := utils.HashPassword(body.String("password"), h.BcryptCost)
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to register user", err))
		return
	}
	now := time.Now().UTC()
	user := &models.User{
		Name:      body.String("name"),
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.DB.CreateUser(ctx, user); err != nil {
		respond.Error(w, logger, storeError(err, "Failed to register user", "", "A user with this email already exists."))
		return
	}

	access, refresh, err := h.Tokens.IssuePair(identityOf(user))
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to issue tokens", err))
		return
	}
	logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	respond.Success(w, http.StatusCreated, "User successfully registered", registerResponse{
		User:      user,
		tokenPair: tokenPair{AccessToken: access, RefreshToken: refresh},
	})
}

// Login answers unknown emails and wrong passwords identically.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	res, _ := loginSchema.Check(ctx, body)
	if !res.OK() {
		respond.Error(w, logger, validationError("Email and password are required: ", res))
		return
	}

	user, err := h.DB.UserByEmail(ctx, normalizeEmail(body.String("email")))
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to log in", err))
		return
	}
	hash := ""
	if user != nil {
		hash = user.Password
	}
	ok, err := utils.CheckPassword(hash, body.String("password"))
	if err != nil {
		logger.Warn("password check failed", "error", err)
	}
	if !ok || user == nil {
		respond.Error(w, logger, apperror.BadRequest("Incorrect email or password"))
		return
	}

	access, refresh, err := h.Tokens.IssuePair(identityOf(user))
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to issue tokens", err))
		return
	}
	respond.Success(w, http.StatusOK, "Login successful", tokenPair{AccessToken: access, RefreshToken: refresh})
}

// RefreshToken exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	logger := ResolveLogger(h.Logger)

	body, err := decodeBody(r)
	if err != nil {
		respond.Error(w, logger, err)
		return
	}
	raw := body.String("refreshToken")
	if raw == "" {
		respond.Error(w, logger, apperror.BadRequest("Refresh token is required"))
		return
	}
	claims, err := h.Tokens.VerifyRefresh(raw)
	if err != nil {
		respond.Error(w, logger, apperror.Unauthenticated("Invalid refresh token"))
		return
	}
	access, err := h.Tokens.IssueAccess(claims.Identity())
	if err != nil {
		respond.Error(w, logger, apperror.Unexpected("Failed to issue tokens", err))
		return
	}
	respond.Success(w, http.StatusOK, "Access token refreshed", map[string]string{"accessToken": access})
}

func identityOf(u *models.User) auth.Identity {
	return auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}
