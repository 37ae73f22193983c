package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/service"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []service.Receipt
	err  error
}

func (m *fakeMailer) SendReceipt(_ context.Context, r service.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, r)
	return nil
}

func (s *testServer) seedBook(t *testing.T, title string) *models.Book {
	t.Helper()
	ctx := context.Background()
	c, err := s.db.CategoryByName(ctx, "General")
	require.NoError(t, err)
	if c == nil {
		c = &models.Category{Name: "General"}
		require.NoError(t, s.db.CreateCategory(ctx, c))
	}
	b := &models.Book{Title: title, Description: "d", Status: models.StatusAvailable, CategoryID: c.ID, AuthorIDs: []int64{}}
	require.NoError(t, s.db.CreateBook(ctx, b))
	return b
}

func TestBorrowings(t *testing.T) {
	t.Parallel()
	mailer := &fakeMailer{}
	s := setupTestServer(t, func(d *Deps) { d.Mailer = mailer })
	_, librarian := s.seedUser(t, models.RoleLibrarian, "lib@x.com")
	reader, _ := s.seedUser(t, models.RoleReader, "reader@x.com")
	book := s.seedBook(t, "Parable of the Sower")

	w := s.doRequest(http.MethodPost, "/borrowing/create", librarian, map[string]any{
		"bookId": book.ID, "userId": reader.ID, "borrowDate": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Borrowing created successfully", message(t, w))
	created := data(t, w)
	assert.Nil(t, created["returnDate"])
	id := int64(created["id"].(float64))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "reader@x.com", mailer.sent[0].ReaderEmail)
	assert.Equal(t, "Parable of the Sower", mailer.sent[0].BookTitle)

	t.Run("get includes receipts", func(t *testing.T) {
		w := s.doRequest(http.MethodGet, fmt.Sprintf("/borrowing/get/%d", id), librarian, nil)
		require.Equal(t, http.StatusOK, w.Code)
		receipts := data(t, w)["receipts"].([]any)
		require.Len(t, receipts, 1)
		assert.Equal(t, "Borrowing receipt: Parable of the Sower", receipts[0].(map[string]any)["subject"])
	})

	t.Run("date format is enforced", func(t *testing.T) {
		w := s.doRequest(http.MethodPost, "/borrowing/create", librarian, map[string]any{
			"bookId": book.ID, "userId": reader.ID, "borrowDate": "01/02/2024", "returnDate": "2024-1-9",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation error: Invalid borrowDate format. Expected format is YYYY-MM-DD, "+
			"Invalid returnDate format. Expected format is YYYY-MM-DD", message(t, w))
	})

	t.Run("references must exist", func(t *testing.T) {
		w := s.doRequest(http.MethodPost, "/borrowing/create", librarian, map[string]any{
			"bookId": 404, "userId": "me", "borrowDate": "2024-01-01",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation error: Book ID does not exist, User ID must be a number", message(t, w))
	})

	t.Run("return the book", func(t *testing.T) {
		w := s.doRequest(http.MethodPatch, fmt.Sprintf("/borrowing/update/%d", id), librarian, map[string]any{"returnDate": "2024-01-15"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		d := data(t, w)
		assert.Equal(t, "2024-01-15T00:00:00Z", d["returnDate"])
		assert.Equal(t, "2024-01-01T00:00:00Z", d["borrowDate"])
	})

	t.Run("delete", func(t *testing.T) {
		w := s.doRequest(http.MethodDelete, fmt.Sprintf("/borrowing/delete/%d", id), librarian, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Borrowing record deleted successfully", message(t, w))

		w = s.doRequest(http.MethodGet, fmt.Sprintf("/borrowing/get/%d", id), librarian, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Borrowing record not found", message(t, w))

		w = s.doRequest(http.MethodGet, "/borrowing/get/one", librarian, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid ID format", message(t, w))
	})
}

func TestBorrowingReceiptFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()
	mailer := &fakeMailer{err: errors.New("smtp down")}
	s := setupTestServer(t, func(d *Deps) { d.Mailer = mailer })
	_, librarian := s.seedUser(t, models.RoleLibrarian, "lib@x.com")
	reader, _ := s.seedUser(t, models.RoleReader, "reader@x.com")
	book := s.seedBook(t, "Wild Seed")

	w := s.doRequest(http.MethodPost, "/borrowing/create", librarian, map[string]any{
		"bookId": book.ID, "userId": reader.ID, "borrowDate": "2024-03-01", "returnDate": "2024-03-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	logs, err := s.db.ListEmailLogsByBorrowing(context.Background(), int64(data(t, w)["id"].(float64)))
	require.NoError(t, err)
	assert.Empty(t, logs)
}
