package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinaaaquil/library/backend/models"
)

func TestReviews(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)
	_, librarian := s.seedUser(t, models.RoleLibrarian, "lib@x.com")
	alice, aliceToken := s.seedUser(t, models.RoleReader, "alice@x.com")
	bob, bobToken := s.seedUser(t, models.RoleReader, "bob@x.com")
	book := s.seedBook(t, "Lilith's Brood")

	w := s.doRequest(http.MethodPost, "/review/create", aliceToken, map[string]any{
		"content": "Unsettling", "rating": 4.5, "bookId": book.ID, "userId": alice.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Review created successfully", message(t, w))
	id := int64(data(t, w)["id"].(float64))

	t.Run("librarians read, readers write", func(t *testing.T) {
		w := s.doRequest(http.MethodGet, "/review/getAll", librarian, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, dataList(t, w), 1)

		w = s.doRequest(http.MethodGet, "/review/getAll", aliceToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.doRequest(http.MethodPost, "/review/create", librarian, map[string]any{})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("create validation", func(t *testing.T) {
		w := s.doRequest(http.MethodPost, "/review/create", aliceToken, map[string]any{
			"content": "x", "rating": "five", "bookId": book.ID, "userId": 999,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation error: Rating must be a number, User ID does not exist", message(t, w))
	})

	t.Run("owner updates", func(t *testing.T) {
		w := s.doRequest(http.MethodPatch, fmt.Sprintf("/review/update/%d", id), aliceToken, map[string]any{
			"userId": alice.ID, "rating": 5,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		d := data(t, w)
		assert.EqualValues(t, 5, d["rating"])
		assert.Equal(t, "Unsettling", d["content"])
	})

	t.Run("update keeps the reviewed book", func(t *testing.T) {
		other := s.seedBook(t, "Wild Seed")
		w := s.doRequest(http.MethodPatch, fmt.Sprintf("/review/update/%d", id), aliceToken, map[string]any{
			"userId": alice.ID, "bookId": other.ID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.EqualValues(t, book.ID, data(t, w)["bookId"])

		stored, err := s.db.ReviewByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, book.ID, stored.BookID)
	})

	t.Run("another reader is forbidden", func(t *testing.T) {
		w := s.doRequest(http.MethodPatch, fmt.Sprintf("/review/update/%d", id), bobToken, map[string]any{
			"userId": bob.ID, "content": "mine now",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You can only update your own reviews", message(t, w))

		// Claiming the owner's id does not help either.
		w = s.doRequest(http.MethodDelete, fmt.Sprintf("/review/delete/%d", id), bobToken, map[string]any{"userId": alice.ID})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You can only delete your own reviews", message(t, w))
	})

	t.Run("missing review looks forbidden", func(t *testing.T) {
		w := s.doRequest(http.MethodPatch, "/review/update/999", aliceToken, map[string]any{"userId": alice.ID})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You can only update your own reviews", message(t, w))

		w = s.doRequest(http.MethodDelete, "/review/delete/999", aliceToken, map[string]any{"userId": alice.ID})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		w := s.doRequest(http.MethodDelete, fmt.Sprintf("/review/delete/%d", id), aliceToken, map[string]any{"userId": alice.ID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Review deleted successfully", message(t, w))

		w = s.doRequest(http.MethodGet, fmt.Sprintf("/review/get/%d", id), librarian, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
