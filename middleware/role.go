package middleware

import (
	"net/http"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/respond"
)

// RequireRole admits only callers whose role is exactly role. It must run
// after Auth.
func RequireRole(role models.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok || id.Role == "" {
				respond.Error(w, nil, apperror.Unauthenticated("User role is not defined"))
				return
			}
			if id.Role != role {
				respond.Error(w, nil, apperror.Forbidden("Forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
