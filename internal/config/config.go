package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	HTTPAddr      string
	Storage       string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	Location      *time.Location
	LogLevel      string
	LogFormat     string
	AdminID       string
	AdminPassword string
	CORSOrigins   []string
	CookieDomain  string
}

// Load reads an optional .env file and then builds the configuration from
// the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPAddr:      valueOr(getenv("HTTP_ADDR"), ":8080"),
		Storage:       strings.ToLower(valueOr(getenv("STORAGE"), StoragePostgres)),
		JWTSecret:     getenv("JWT_SECRET"),
		LogLevel:      valueOr(getenv("LOG_LEVEL"), "info"),
		LogFormat:     valueOr(getenv("LOG_FORMAT"), "json"),
		AdminID:       getenv("ADMIN_NATIONAL_ID"),
		AdminPassword: getenv("ADMIN_PASSWORD"),
		CookieDomain:  getenv("COOKIE_DOMAIN"),
		CORSOrigins:   splitList(valueOr(getenv("CORS_ORIGINS"), "*")),
	}

	switch cfg.Storage {
	case StoragePostgres:
		cfg.DatabaseURL = getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = PostgresURL(getenv)
		}
		if cfg.JWTSecret == "" {
			return Config{}, errors.New("JWT_SECRET is required with postgres storage")
		}
	case StorageMemory:
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = devJWTSecret
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}

	ttl, err := time.ParseDuration(valueOr(getenv("TOKEN_TTL"), "8h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL %q", getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	loc, err := time.LoadLocation(valueOr(getenv("TIMEZONE"), "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if (cfg.AdminID == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_NATIONAL_ID and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

// PostgresURL assembles a connection string from the POSTGRES_* variables.
func PostgresURL(getenv func(string) string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getenv("POSTGRES_USER"),
		getenv("POSTGRES_PASSWORD"),
		valueOr(getenv("POSTGRES_HOST"), "localhost"),
		valueOr(getenv("POSTGRES_PORT"), "5432"),
		getenv("POSTGRES_DB"),
	)
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
