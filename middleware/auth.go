package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/auth"
	"github.com/kevinaaaquil/library/backend/respond"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier validates an access token.
type TokenVerifier interface {
	VerifyAccess(token string) (*auth.Claims, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header and stores the
// caller's identity on the request context.
func Auth(tokens TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
				respond.Error(w, nil, apperror.Unauthenticated("token not provided"))
				return
			}
			claims, err := tokens.VerifyAccess(strings.TrimSpace(parts[1]))
			if err != nil {
				respond.Error(w, nil, apperror.Unauthenticated("invalid token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims.Identity())))
		})
	}
}

func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}
