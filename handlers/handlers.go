package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/library/backend/apperror"
	"github.com/kevinaaaquil/library/backend/store"
	"github.com/kevinaaaquil/library/backend/validate"
)

// ResolveLogger returns logger, or the process default when nil.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func pathID(r *http.Request, message string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest(message)
	}
	return id, nil
}

func decodeBody(r *http.Request) (*validate.Object, error) {
	body, err := validate.Decode(r.Body)
	if err != nil {
		return nil, apperror.BadRequest("Invalid JSON body")
	}
	return body, nil
}

// checkBody runs schema against body. failPrefix names the operation when a
// reference lookup fails.
func checkBody(ctx context.Context, schema validate.Schema, body *validate.Object, failPrefix string) error {
	res, err := schema.Check(ctx, body)
	if err != nil {
		return apperror.Unexpected(failPrefix, err)
	}
	if res.OK() {
		return nil
	}
	return validationError("Missing required fields: ", res)
}

func validationError(missingPrefix string, res validate.Result) *apperror.Error {
	if len(res.MissingFields) > 0 {
		return apperror.BadRequest(missingPrefix + strings.Join(res.MissingFields, ", ")).WithData(res)
	}
	return apperror.BadRequest("Validation error: " + strings.Join(res.Errors, ", ")).WithData(res)
}

// exists adapts a store lookup to a schema reference check.
func exists[T any](lookup func(context.Context, int64) (*T, error)) validate.ExistsFunc {
	return func(ctx context.Context, id int64) (bool, error) {
		v, err := lookup(ctx, id)
		return v != nil, err
	}
}

// storeError maps a failed write. Empty messages leave that case to the
// generic 500.
func storeError(err error, failPrefix, notFound, duplicate string) error {
	switch {
	case notFound != "" && errors.Is(err, store.ErrNotFound):
		return apperror.NotFound(notFound)
	case duplicate != "" && errors.Is(err, store.ErrDuplicate):
		return apperror.BadRequest(duplicate)
	default:
		return apperror.Unexpected(failPrefix, err)
	}
}
