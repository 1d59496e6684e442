package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURLAndSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "s")
	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is required")

	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("JWT_SECRET", "  ")
	_, err = Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("JWT_SECRET", "secret")
	for _, key := range []string{"PORT", "ADMIN_EMAILS", "BCRYPT_COST", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
		"REDIS_ADDR", "REDIS_DB", "PLATFORM_CACHE_TTL_SECONDS", "KAFKA_BROKERS", "KAFKA_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Empty(t, cfg.AdminEmails)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.PlatformCacheTTL)
	assert.Equal(t, "user.events", cfg.KafkaTopic)
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.EventsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "5000")
	t.Setenv("ADMIN_EMAILS", " owner@example.com, ,ops@example.com ")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PLATFORM_CACHE_TTL_SECONDS", "60")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.HTTPAddress())
	assert.Equal(t, []string{"owner@example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.PlatformCacheTTL)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.EventsEnabled())
}

func TestLoadIgnoresMalformedIntegers(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BCRYPT_COST", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BcryptCost)
}
