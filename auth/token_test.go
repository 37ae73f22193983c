package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kevinaaaquil/library/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *Tokens {
	return NewTokens("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour)
}

func TestIssueAndVerify(t *testing.T) {
	tokens := newTestTokens()
	id := Identity{ID: 42, Email: "reader@example.com", Role: models.RoleReader}

	access, refresh, err := tokens.IssuePair(id)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, err := tokens.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
	assert.Equal(t, "42", claims.Subject)

	claims, err = tokens.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	tokens := newTestTokens()
	id := Identity{ID: 1, Email: "a@example.com", Role: models.RoleAdmin}

	access, err := tokens.IssueAccess(id)
	require.NoError(t, err)
	refresh, err := tokens.IssueRefresh(id)
	require.NoError(t, err)

	_, err = tokens.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tokens.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejects(t *testing.T) {
	tokens := newTestTokens()

	t.Run("expired", func(t *testing.T) {
		expired := NewTokens("access-secret", "refresh-secret", -time.Minute, -time.Minute)
		raw, err := expired.IssueAccess(Identity{ID: 1, Role: models.RoleReader})
		require.NoError(t, err)

		_, err = tokens.VerifyAccess(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.VerifyAccess("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered", func(t *testing.T) {
		raw, err := tokens.IssueAccess(Identity{ID: 1, Role: models.RoleReader})
		require.NoError(t, err)
		parts := strings.Split(raw, ".")
		parts[2] = strings.Repeat("A", len(parts[2]))

		_, err = tokens.VerifyAccess(strings.Join(parts, "."))
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		claims := &Claims{UserID: 1, Role: models.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("access-secret"))
		require.NoError(t, err)

		_, err = tokens.VerifyAccess(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1}).SignedString([]byte("access-secret"))
		require.NoError(t, err)

		_, err = tokens.VerifyAccess(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestIDIsEncodedAsString(t *testing.T) {
	raw, err := newTestTokens().IssueAccess(Identity{ID: 7, Role: models.RoleLibrarian})
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "7", claims["id"])
	assert.Equal(t, "LIBRARIAN", claims["role"])
}
