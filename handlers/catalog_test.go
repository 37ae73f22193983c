package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinaaaquil/library/backend/models"
)

func TestCategories(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)
	_, librarian := s.seedUser(t, models.RoleLibrarian, "lib@x.com")

	w := s.doRequest(http.MethodPost, "/categories/create", librarian, map[string]any{"name": "Fiction"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Category created successfully", message(t, w))
	id := int64(data(t, w)["id"].(float64))

	w = s.doRequest(http.MethodPost, "/categories/create", librarian, map[string]any{"name": "Fiction"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category name already exists", message(t, w))

	w = s.doRequest(http.MethodPost, "/categories/create", librarian, map[string]any{"name": 12})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation error: Category name must be a string", message(t, w))

	w = s.doRequest(http.MethodPost, "/categories/create", librarian, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: name", message(t, w))

	w = s.doRequest(http.MethodPatch, fmt.Sprintf("/categories/update/%d", id), librarian, map[string]any{"name": "Fantasy"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Fantasy", data(t, w)["name"])

	w = s.doRequest(http.MethodGet, "/categories/get/x", librarian, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid category ID", message(t, w))

	w = s.doRequest(http.MethodDelete, fmt.Sprintf("/categories/delete/%d", id), librarian, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.doRequest(http.MethodDelete, fmt.Sprintf("/categories/delete/%d", id), librarian, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", message(t, w))
}

func TestAuthors(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)
	_, librarian := s.seedUser(t, models.RoleLibrarian, "lib@x.com")

	w := s.doRequest(http.MethodPost, "/author/create", librarian, map[string]any{
		"name": "Ursula", "biography": "Wrote Earthsea", "birthDate": "1929-10-21",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Author created successfully", message(t, w))
	id := int64(data(t, w)["id"].(float64))

	t.Run("invalid birth date", func(t *testing.T) {
		w := s.doRequest(http.MethodPost, "/author/create", librarian, map[string]any{"name": "X", "birthDate": "yesterday"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation error: Author birthDate must be a valid date", message(t, w))
	})

	t.Run("get includes books", func(t *testing.T) {
		w := s.doRequest(http.MethodGet, fmt.Sprintf("/author/get/%d", id), librarian, nil)
		require.Equal(t, http.StatusOK, w.Code)
		d := data(t, w)
		assert.Equal(t, "Ursula", d["name"])
		assert.Equal(t, []any{}, d["books"])
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		w := s.doRequest(http.MethodPatch, fmt.Sprintf("/author/update/%d", id), librarian, map[string]any{"biography": "Earthsea and more"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		d := data(t, w)
		assert.Equal(t, "Ursula", d["name"])
		assert.Equal(t, "Earthsea and more", d["biography"])
	})

	t.Run("malformed and missing ids", func(t *testing.T) {
		w := s.doRequest(http.MethodGet, "/author/get/abc", librarian, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid author ID", message(t, w))

		w = s.doRequest(http.MethodDelete, "/author/delete/404", librarian, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Author not found", message(t, w))
	})
}

func TestBranchesAndLibraries(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		prefix   string
		resource string
	}{
		{prefix: "/branch", resource: "Branch"},
		{prefix: "/library", resource: "Library"},
	} {
		t.Run(tc.resource, func(t *testing.T) {
			t.Parallel()
			s := setupTestServer(t)
			_, admin := s.seedUser(t, models.RoleAdmin, "admin@x.com")

			w := s.doRequest(http.MethodPost, tc.prefix+"/create", admin, map[string]any{"name": "Central", "address": "1 Main St"})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			assert.Equal(t, tc.resource+" created successfully", message(t, w))
			id := int64(data(t, w)["id"].(float64))

			w = s.doRequest(http.MethodPost, tc.prefix+"/create", admin, map[string]any{"name": "Central", "address": "2 Side St"})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.resource+" with this name already exists", message(t, w))

			w = s.doRequest(http.MethodPost, tc.prefix+"/create", admin, map[string]any{"name": "East", "city": "X", "zip": "1"})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Validation error: Address is required and must be a string, Unexpected fields provided: city, zip", message(t, w))

			w = s.doRequest(http.MethodPatch, fmt.Sprintf("%s/update/%d", tc.prefix, id), admin, map[string]any{"address": 5})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Validation error: Address must be a string", message(t, w))

			w = s.doRequest(http.MethodPatch, fmt.Sprintf("%s/update/%d", tc.prefix, id), admin, map[string]any{"address": "3 New St"})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "Central", data(t, w)["name"])
			assert.Equal(t, "3 New St", data(t, w)["address"])

			w = s.doRequest(http.MethodGet, fmt.Sprintf("%s/get/%d", tc.prefix, id), admin, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, []any{}, data(t, w)["books"])

			w = s.doRequest(http.MethodDelete, fmt.Sprintf("%s/delete/%d", tc.prefix, id), admin, nil)
			require.Equal(t, http.StatusOK, w.Code)

			w = s.doRequest(http.MethodGet, fmt.Sprintf("%s/get/%d", tc.prefix, id), admin, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, tc.resource+" not found", message(t, w))
		})
	}
}
