package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	AdminEmails []string
	BcryptCost  int
	CORSOrigins []string
	LogLevel    slog.Level

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	PlatformCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:             fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AdminEmails:      parseList(os.Getenv("ADMIN_EMAILS")),
		BcryptCost:       intOr("BCRYPT_COST", 10),
		CORSOrigins:      parseList(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:         parseLevel(os.Getenv("LOG_LEVEL")),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          intOr("REDIS_DB", 0),
		PlatformCacheTTL: time.Duration(intOr("PLATFORM_CACHE_TTL_SECONDS", 300)) * time.Second,
		KafkaBrokers:     parseList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:       fallback(os.Getenv("KAFKA_TOPIC"), "user.events"),
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// CacheEnabled reports whether a Redis address was configured.
func (c Config) CacheEnabled() bool { return c.RedisAddr != "" }

// EventsEnabled reports whether Kafka brokers were configured.
func (c Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func intOr(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		slog.Warn("invalid integer in environment; using default", "key", key, "value", raw, "default", def)
		return def
	}
	return parsed
}

func parseList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
