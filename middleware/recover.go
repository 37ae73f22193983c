package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/kevinaaaquil/library/backend/respond"
)

// Recover turns a panic into a 500 envelope and logs the stack.
func Recover(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						"panic", fmt.Sprint(rec),
						"request_id", middleware.GetReqID(r.Context()),
						"stack", string(debug.Stack()),
					)
					respond.JSON(w, http.StatusInternalServerError, respond.Envelope{Success: false, Message: "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
