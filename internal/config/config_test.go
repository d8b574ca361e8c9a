package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("STORAGE", "memory")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, AuthModeHeader, cfg.AuthMode)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Zero(t, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.True(t, cfg.DBMigrate)
	assert.False(t, cfg.IsProduction)
}

func TestFromEnvPostgresRequiresDSN(t *testing.T) {
	t.Setenv("STORAGE", "postgres")
	t.Setenv("DB_DSN", "")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "DB_DSN")
}

func TestFromEnvJWTRequiresSecret(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PROD_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("STORAGE", "postgres")
	t.Setenv("DB_DSN", "postgres://localhost/shareit")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.ProdOrigins)
	assert.False(t, cfg.DBMigrate)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"STORAGE":          "mongo",
		"AUTH_MODE":        "oauth",
		"SHUTDOWN_TIMEOUT": "soon",
		"RATE_LIMIT_BURST": "lots",
		"DB_MIGRATE":       "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("STORAGE", "memory")
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
