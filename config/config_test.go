package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CI", "ENV", "SECRETS_DIR", "SERVER_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "SQLITE_PATH", "JWT_SECRET", "REDIS_URL",
		"PAGE_SIZE", "TOKEN_TTL", "LOG_FORMAT", "S3_BUCKET_NAME", "TEST_DB_PASSWORD", "TEST_JWT_SECRET",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	// keep the secrets lookup away from the host's /run/secrets
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "foodgram")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "foodgram", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, Test, cfg.Env)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "dev-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "foodgram.db", cfg.SQLitePath)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, defaultPageSize, cfg.PageSize)
	assert.Equal(t, defaultTokenTTL, cfg.TokenTTL)
	assert.Equal(t, "/media/", cfg.MediaURL)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("DB_DRIVER", "sqlite")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestValidateConfigReportsAllMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "test")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateConfigRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	cfg := &Config{DBDriver: "mysql", JWTSecret: "x"}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		ci, env string
		want    Environment
		mode    string
	}{
		{"", "", Development, gin.DebugMode},
		{"", "production", Production, gin.ReleaseMode},
		{"", " PROD ", Production, gin.ReleaseMode},
		{"", "test", Test, gin.TestMode},
		{"true", "production", CI, gin.TestMode},
		{"false", "staging", Development, gin.DebugMode},
	}
	for _, tt := range tests {
		got := ParseEnvironment(tt.ci, tt.env)
		assert.Equal(t, tt.want, got, "CI=%q ENV=%q", tt.ci, tt.env)
		assert.Equal(t, tt.mode, got.GinMode(), "CI=%q ENV=%q", tt.ci, tt.env)
	}
}
