package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Storage                string
	DatabaseURL            string
	JWTSecret              string
	JWTIssuer              string
	AccessTTLSeconds       int64
	PasswordHash           string
	BcryptCost             int
	DBTimeoutSeconds       int
	CorsOrigins            []string
	Port                   string
	LogDir                 string
	LogRetentionDays       int
	LogLevel               string
	AuthRateLimitPerMinute int
	HealthDiskPath         string
}

func Load() Config {
	storage := strings.ToLower(envOr("STORAGE", StoragePostgres))
	databaseURL := envOr("DATABASE_URL", "")
	if storage == StoragePostgres {
		databaseURL = DatabaseURL()
	}
	return Config{
		Storage:                storage,
		DatabaseURL:            databaseURL,
		JWTSecret:              mustEnv("JWT_SECRET"),
		JWTIssuer:              envOr("JWT_ISSUER", "coursetrack"),
		AccessTTLSeconds:       int64(envOrInt("ACCESS_TTL_SECONDS", 604800)),
		PasswordHash:           strings.ToLower(envOr("PASSWORD_HASH", "bcrypt")),
		BcryptCost:             envOrInt("BCRYPT_COST", 10),
		DBTimeoutSeconds:       envOrInt("DB_TIMEOUT_SECONDS", 5),
		CorsOrigins:            parseCSV(envOr("CORS_ORIGINS", "*")),
		Port:                   envOr("PORT", "8080"),
		LogDir:                 envOr("LOG_DIR", "storage/logs"),
		LogRetentionDays:       clamp(envOrInt("LOG_RETENTION_DAYS", 7), 1, 7),
		LogLevel:               envOr("LOG_LEVEL", "info"),
		AuthRateLimitPerMinute: envOrInt("AUTH_RATE_LIMIT_PER_MINUTE", 20),
		HealthDiskPath:         envOr("HEALTH_DISK_PATH", "/"),
	}
}

// DatabaseURL is the only setting the seed tool needs.
func DatabaseURL() string {
	return mustEnv("DATABASE_URL")
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLSeconds) * time.Second
}

func (c Config) DBTimeout() time.Duration {
	return time.Duration(c.DBTimeoutSeconds) * time.Second
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
