package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultSecretKey        = "default_secret"
	DefaultRefreshSecretKey = "default_refresh_secret"
)

type Config struct {
	Port string

	SecretKey        string
	RefreshSecretKey string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	BcryptCost       int

	StoreDriver string // mongo, postgres, sqlite or memory
	MongoURI    string
	DBName      string
	DatabaseURL string

	CORSAllowedOrigins []string

	S3Bucket      string
	S3Region      string
	S3AccessKeyID string
	S3SecretKey   string
	MaxUploadMB   int64

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	LogLevel slog.Level
}

// Load reads the configuration from the environment. Malformed values are
// errors; absent values take their defaults.
func Load() (*Config, error) {
	accessTTL, err := getDuration("ACCESS_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	bcryptCost, err := getInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	maxMB, err := getInt("MAX_UPLOAD_MB", 5)
	if err != nil {
		return nil, err
	}
	if maxMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	smtpPort, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	driver := strings.ToLower(getEnv("STORE_DRIVER", "mongo"))
	switch driver {
	case "mongo", "postgres", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be one of mongo, postgres, sqlite, memory (got %q)", driver)
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		SecretKey:          getEnv("SECRET_KEY", DefaultSecretKey),
		RefreshSecretKey:   getEnv("REFRESH_SECRET_KEY", DefaultRefreshSecretKey),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		BcryptCost:         bcryptCost,
		StoreDriver:        driver,
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:             getEnv("MONGODB_DB", "library"),
		DatabaseURL:        getEnv("DATABASE_URL", "library.db"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		S3Bucket:           getEnv("AWS_S3_BUCKET", ""),
		S3Region:           getEnv("AWS_REGION", "us-east-1"),
		S3AccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:        getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MaxUploadMB:        int64(maxMB),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           smtpPort,
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:           getEnv("SMTP_FROM", ""),
		LogLevel:           level,
	}, nil
}

// Warnings lists configuration that works but should not reach production.
func (c *Config) Warnings() []string {
	var w []string
	if c.SecretKey == DefaultSecretKey {
		w = append(w, "SECRET_KEY is not set; using the built-in default")
	}
	if c.RefreshSecretKey == DefaultRefreshSecretKey {
		w = append(w, "REFRESH_SECRET_KEY is not set; using the built-in default")
	}
	if c.S3Bucket == "" {
		w = append(w, "AWS_S3_BUCKET is not set; cover uploads are disabled")
	}
	if c.SMTPHost == "" {
		w = append(w, "SMTP_HOST is not set; borrowing receipts are disabled")
	}
	if c.StoreDriver == "memory" {
		w = append(w, "STORE_DRIVER=memory; data is lost on restart")
	}
	return w
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
