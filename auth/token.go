// Package auth issues and verifies the signed access and refresh credentials.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kevinaaaquil/library/backend/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller as carried by a token.
type Identity struct {
	ID    int64
	Email string
	Role  models.Role
}

// Claims is the token payload. The user id travels as a string.
type Claims struct {
	UserID int64       `json:"id,string"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Email: c.Email, Role: c.Role}
}

// Tokens signs access and refresh credentials with independent HS256 secrets.
type Tokens struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokens(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (t *Tokens) IssueAccess(id Identity) (string, error) {
	return sign(id, t.accessSecret, t.accessTTL)
}

func (t *Tokens) IssueRefresh(id Identity) (string, error) {
	return sign(id, t.refreshSecret, t.refreshTTL)
}

// IssuePair returns a fresh access and refresh token for id.
func (t *Tokens) IssuePair(id Identity) (access, refresh string, err error) {
	if access, err = t.IssueAccess(id); err != nil {
		return "", "", err
	}
	if refresh, err = t.IssueRefresh(id); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *Tokens) VerifyAccess(token string) (*Claims, error) {
	return verify(token, t.accessSecret)
}

func (t *Tokens) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, t.refreshSecret)
}

func sign(id Identity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: id.ID,
		Email:  id.Email,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(id.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(raw string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
