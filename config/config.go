package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Token configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Image storage
	S3Bucket  string
	AWSRegion string
	MediaRoot string
	MediaURL  string

	// Logging
	LogLevel  string
	LogFormat string

	// Pagination
	PageSize int

	// HTTP policy
	CORSOrigins     []string
	RecipeRateLimit int
}

const (
	defaultPageSize = 6
	defaultTokenTTL = 24 * time.Hour

	defaultRecipeRateLimit = 30
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Env: env}

	// Load configuration based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI using environment variables only
func loadCIConfig(cfg *Config) {
	loadFromEnv(cfg, os.Getenv)
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
}

// loadDevConfig loads configuration for development. A .env file in the working
// directory is applied first; docker secrets fill in whatever the environment leaves empty.
func loadDevConfig(cfg *Config) {
	_ = godotenv.Load()
	loadFromEnv(cfg, func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return readSecret(strings.ToLower(key))
	})
}

// loadProdConfig loads configuration for production from docker secrets,
// falling back to plain environment variables for non-sensitive values.
func loadProdConfig(cfg *Config) {
	loadFromEnv(cfg, func(key string) string {
		if v := readSecret(strings.ToLower(key)); v != "" {
			return v
		}
		if isSensitive(key) {
			return ""
		}
		return os.Getenv(key)
	})
}

func loadFromEnv(cfg *Config, get func(string) string) {
	cfg.ServerPort = get("SERVER_PORT")
	cfg.ServerHost = get("SERVER_HOST")
	cfg.DBDriver = get("DB_DRIVER")
	cfg.DBHost = get("DB_HOST")
	cfg.DBPort = get("DB_PORT")
	cfg.DBUser = get("DB_USER")
	cfg.DBPassword = get("DB_PASSWORD")
	cfg.DBName = get("DB_NAME")
	cfg.DBSSLMode = get("DB_SSL_MODE")
	cfg.SQLitePath = get("SQLITE_PATH")
	cfg.RedisHost = get("REDIS_HOST")
	cfg.RedisPort = get("REDIS_PORT")
	cfg.RedisPassword = get("REDIS_PASSWORD")
	cfg.RedisURL = get("REDIS_URL")
	cfg.RedisDB = atoiDefault(get("REDIS_DB"), 0)
	cfg.JWTSecret = get("JWT_SECRET")
	cfg.S3Bucket = get("S3_BUCKET_NAME")
	cfg.AWSRegion = get("AWS_REGION")
	cfg.MediaRoot = get("MEDIA_ROOT")
	cfg.MediaURL = get("MEDIA_URL")
	cfg.LogLevel = get("LOG_LEVEL")
	cfg.LogFormat = get("LOG_FORMAT")
	cfg.PageSize = atoiDefault(get("PAGE_SIZE"), 0)
	cfg.RecipeRateLimit = atoiDefault(get("RATE_LIMIT_RECIPES_PER_HOUR"), 0)
	if origins := get("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	if ttl, err := time.ParseDuration(get("TOKEN_TTL")); err == nil {
		cfg.TokenTTL = ttl
	}
}

func applyDefaults(cfg *Config) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "foodgram.db"
	}
	if cfg.MediaRoot == "" {
		cfg.MediaRoot = "media"
	}
	if cfg.MediaURL == "" {
		cfg.MediaURL = "/media/"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		if cfg.Env == Production {
			cfg.LogFormat = "json"
		} else {
			cfg.LogFormat = "console"
		}
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.RecipeRateLimit <= 0 {
		cfg.RecipeRateLimit = defaultRecipeRateLimit
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func isSensitive(key string) bool {
	switch key {
	case "DB_PASSWORD", "JWT_SECRET", "REDIS_PASSWORD", "DB_USER":
		return true
	}
	return false
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
