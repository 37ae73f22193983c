// Package respond writes the JSON envelope shared by every endpoint:
// {"success": bool, "message": string, "data": any}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kevinaaaquil/library/backend/apperror"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success writes a successful envelope. A nil data is omitted.
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failed envelope for err. Unexpected failures are logged.
func Error(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := apperror.StatusCode(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable && logger != nil {
		logger.Error("request failed", "error", err)
	}
	JSON(w, status, Envelope{Success: false, Message: apperror.Message(err), Data: apperror.DataOf(err)})
}
