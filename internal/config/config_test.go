package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/coursetrack")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("LOG_RETENTION_DAYS", "")

	cfg := Load()

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "postgres://localhost/coursetrack", cfg.DatabaseURL)
	assert.Equal(t, "coursetrack", cfg.JWTIssuer)
	assert.Equal(t, 7*24*time.Hour, cfg.AccessTTL())
	assert.Equal(t, 5*time.Second, cfg.DBTimeout())
	assert.Equal(t, "bcrypt", cfg.PasswordHash)
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.Equal(t, 7, cfg.LogRetentionDays)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE", "")
	t.Setenv("DATABASE_URL", "postgres://db/x")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TTL_SECONDS", "60")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("LOG_RETENTION_DAYS", "30")
	t.Setenv("DB_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("PASSWORD_HASH", "ARGON2ID")

	cfg := Load()

	assert.Equal(t, time.Minute, cfg.AccessTTL())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
	assert.Equal(t, 7, cfg.LogRetentionDays)
	assert.Equal(t, 5, cfg.DBTimeoutSeconds)
	assert.Equal(t, "argon2id", cfg.PasswordHash)
}

func TestLoadMemoryStorageSkipsDatabaseURL(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadPanicsWithoutSecret(t *testing.T) {
	t.Setenv("STORAGE", "")
	t.Setenv("DATABASE_URL", "postgres://db/x")
	t.Setenv("JWT_SECRET", "")

	require.PanicsWithValue(t, "missing env var: JWT_SECRET", func() { Load() })
}
