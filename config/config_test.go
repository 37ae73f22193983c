package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "SECRET_KEY", "REFRESH_SECRET_KEY", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
	"BCRYPT_COST", "STORE_DRIVER", "MONGODB_URI", "MONGODB_DB", "DATABASE_URL",
	"CORS_ALLOWED_ORIGINS", "AWS_S3_BUCKET", "AWS_REGION", "AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY", "MAX_UPLOAD_MB", "SMTP_HOST", "SMTP_PORT",
	"SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultSecretKey, cfg.SecretKey)
	assert.Equal(t, DefaultRefreshSecretKey, cfg.RefreshSecretKey)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "library", cfg.DBName)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(5), cfg.MaxUploadMB)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)

	warnings := cfg.Warnings()
	assert.Contains(t, warnings, "SECRET_KEY is not set; using the built-in default")
	assert.Contains(t, warnings, "AWS_S3_BUCKET is not set; cover uploads are disabled")
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "s1")
	t.Setenv("REFRESH_SECRET_KEY", "s2")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AWS_S3_BUCKET", "covers")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Empty(t, cfg.Warnings())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	for key, value := range map[string]string{
		"ACCESS_TOKEN_TTL":  "soon",
		"REFRESH_TOKEN_TTL": "-1h",
		"BCRYPT_COST":       "ten",
		"MAX_UPLOAD_MB":     "0",
		"SMTP_PORT":         "smtp",
		"STORE_DRIVER":      "redis",
		"LOG_LEVEL":         "loud",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
