package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/auth"
	"github.com/kevinaaaquil/library/backend/middleware"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/respond"
	"github.com/kevinaaaquil/library/backend/store"
)

// Deps carries everything the HTTP layer needs. Covers and Mailer may be nil.
type Deps struct {
	Store              store.Store
	Tokens             *auth.Tokens
	Covers             CoverStorage
	Mailer             ReceiptSender
	BcryptCost         int
	MaxUploadBytes     int64
	CORSAllowedOrigins []string
	Logger             *slog.Logger
	// RequestLog enables chi's access log. Tests leave it off.
	RequestLog bool
}

// crud is the uniform route set mounted under every resource prefix.
type crud interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func mountCRUD(r chi.Router, h crud) {
	r.Get("/getAll", h.List)
	r.Get("/get/{id}", h.Get)
	r.Post("/create", h.Create)
	r.Patch("/update/{id}", h.Update)
	r.Delete("/delete/{id}", h.Delete)
}

func NewRouter(d Deps) http.Handler {
	logger := ResolveLogger(d.Logger)
	adminLock := &sync.Mutex{}

	authHandler := &AuthHandler{DB: d.Store, Tokens: d.Tokens, BcryptCost: d.BcryptCost, AdminLock: adminLock, Logger: logger}
	librarians := &LibrariansHandler{DB: d.Store, BcryptCost: d.BcryptCost, AdminLock: adminLock, Logger: logger}
	readers := &ReadersHandler{DB: d.Store, BcryptCost: d.BcryptCost, AdminLock: adminLock, Logger: logger}
	categories := &CategoriesHandler{DB: d.Store, Logger: logger}
	authors := &AuthorsHandler{DB: d.Store, Logger: logger}
	books := &BooksHandler{DB: d.Store, Covers: d.Covers, MaxCoverBytes: d.MaxUploadBytes, Logger: logger}
	borrowings := &BorrowingsHandler{DB: d.Store, Mailer: d.Mailer, Logger: logger}
	libraries := &LibrariesHandler{DB: d.Store, Logger: logger}
	branches := &BranchesHandler{DB: d.Store, Logger: logger}
	reviews := &ReviewsHandler{DB: d.Store, Logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if d.RequestLog {
		r.Use(chimw.Logger)
	}
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(d.CORSAllowedOrigins))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"message": "welcome to the library."})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			logger.Warn("health: store ping", "error", err)
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/refresh_token", authHandler.RefreshToken)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(d.Tokens))

		r.Route("/librarian", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			mountCRUD(r, librarians)
		})
		r.Route("/reader", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleLibrarian))
			r.Get("/getAll", readers.List)
			r.Get("/get/{id}", readers.Get)
			r.Patch("/update/{id}", readers.Update)
			r.Delete("/delete/{id}", readers.Delete)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleLibrarian))
			mountCRUD(r, categories)
		})
		r.Route("/author", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleLibrarian))
			mountCRUD(r, authors)
		})
		r.Route("/book", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleLibrarian))
			mountCRUD(r, books)
			r.Put("/cover/{id}", books.UploadCover)
			r.Get("/cover/{id}", books.Cover)
		})
		r.Route("/borrowing", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleLibrarian))
			mountCRUD(r, borrowings)
		})
		r.Route("/library", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			mountCRUD(r, libraries)
		})
		r.Route("/branch", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			mountCRUD(r, branches)
		})
		r.Route("/review", func(r chi.Router) {
			r.With(middleware.RequireRole(models.RoleLibrarian)).Get("/getAll", reviews.List)
			r.With(middleware.RequireRole(models.RoleLibrarian)).Get("/get/{id}", reviews.Get)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleReader))
				r.Post("/create", reviews.Create)
				r.Patch("/update/{id}", reviews.Update)
				r.Delete("/delete/{id}", reviews.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, nil, apperror.NotFound("Route not found"))
	})
	return r
}
