package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kevinaaaquil/library/backend/auth"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/kevinaaaquil/library/backend/store/memory"
	"github.com/kevinaaaquil/library/backend/utils"
)

type testServer struct {
	router http.Handler
	db     *memory.Store
	tokens *auth.Tokens
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestServer(t *testing.T, opts ...func(*Deps)) *testServer {
	t.Helper()

	db := memory.NewStore()
	tokens := auth.NewTokens("test-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
	deps := Deps{
		Store:          db,
		Tokens:         tokens,
		BcryptCost:     bcrypt.MinCost,
		MaxUploadBytes: 1 << 20,
		Logger:         discardLogger(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return &testServer{router: NewRouter(deps), db: db, tokens: tokens}
}

// seedUser stores a user with password "secret" and returns it with an
// access token.
func (s *testServer) seedUser(t *testing.T, role models.Role, email string) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Name: string(role) + " user", Email: email, Password: hash, Role: role}
	require.NoError(t, s.db.CreateUser(context.Background(), u))

	token, err := s.tokens.IssueAccess(auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role})
	require.NoError(t, err)
	return u, token
}

// doRequest sends body as JSON. A string body is sent verbatim.
func (s *testServer) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "body=%s", w.Body.String())
	return result
}

// data returns the envelope's data object.
func data(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	d, ok := parseJSON(t, w)["data"].(map[string]any)
	require.True(t, ok, "body=%s", w.Body.String())
	return d
}

func dataList(t *testing.T, w *httptest.ResponseRecorder) []any {
	t.Helper()
	d, ok := parseJSON(t, w)["data"].([]any)
	require.True(t, ok, "body=%s", w.Body.String())
	return d
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	m, _ := parseJSON(t, w)["message"].(string)
	return m
}
