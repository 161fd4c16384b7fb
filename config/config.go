package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Port          string
	Env           string
	DBUrl         string
	StorageDriver string
	FrontendURL   string
	// Token signing
	JWTSecret   string
	JWTIssuer   string
	JWTTTLHours int
	BcryptCost  int
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds  int
	RateLimitAuthThreshold  int
	FailedLoginBlockMinutes int
	FailedLoginMaxAttempts  int
	// Seed admin (cmd/createadmin)
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// ErrMissingJWTSecret is fatal: the process cannot issue or verify tokens without it.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required")

func LoadConfig() (*Config, error) {
	// .env only matters for local runs; a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("APP_ENV", "development"),
		DBUrl:         getEnv("DATABASE_URL", ""),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		FrontendURL:   strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "scm-career-bridge"),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 7*24),
		BcryptCost:  getEnvInt("BCRYPT_COST", 10),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:  getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 20),
		FailedLoginBlockMinutes: getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:  getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),

		AdminName:     getEnv("ADMIN_NAME", "System Administrator"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	if cfg.StorageDriver == StorageDriverPostgres && cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Login lockout is disabled and rate limiting is in-memory.")
	}

	return cfg, nil
}

// TokenTTL is the validity window of issued tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
