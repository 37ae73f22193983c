// Package apperror classifies request failures so a single shaper can turn
// them into HTTP responses.
package apperror

import (
	"errors"
	"net/http"
)

// Sentinel kinds. Every *Error carries exactly one of them.
var (
	// ErrBadRequest is returned for malformed input, failed validation and
	// uniqueness conflicts.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthenticated is returned when credentials are missing or invalid.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when the caller is known but not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when an optional backing service is not configured.
	ErrUnavailable = errors.New("unavailable")

	// ErrUnexpected is returned for store or infrastructure failures.
	ErrUnexpected = errors.New("unexpected")
)

// Error pairs a sentinel kind with the client-facing message and optional
// structured payload.
type Error struct {
	Kind    error
	Message string
	Data    any
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and, for unexpected failures, the cause.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// WithData attaches a payload that is returned to the client as "data".
func (e *Error) WithData(data any) *Error {
	e.Data = data
	return e
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func BadRequest(message string) *Error      { return New(ErrBadRequest, message) }
func Unauthenticated(message string) *Error { return New(ErrUnauthenticated, message) }
func Forbidden(message string) *Error       { return New(ErrForbidden, message) }
func NotFound(message string) *Error        { return New(ErrNotFound, message) }
func Unavailable(message string) *Error     { return New(ErrUnavailable, message) }

// Unexpected wraps an infrastructure error as "<prefix>: <err>".
func Unexpected(prefix string, err error) *Error {
	return &Error{Kind: ErrUnexpected, Message: prefix + ": " + err.Error(), cause: err}
}

// StatusCode maps an error to its HTTP status. Errors without a known kind
// are treated as unexpected.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// DataOf returns the payload attached to err, if any.
func DataOf(err error) any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Data
	}
	return nil
}
