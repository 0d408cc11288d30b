package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/postbot/backend/internal/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "CORS_ORIGINS", "STORAGE_BACKEND", "DATABASE_URL", "REDIS_URL",
		"SUBMIT_DELAY", "SUBMIT_TIMEOUT", "MAX_BODY_BYTES", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"SESSION_TTL", "SESSION_SWEEP_INTERVAL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.Equal(t, config.BackendMemory, cfg.StorageBackend)
	require.Equal(t, 2*time.Second, cfg.SubmitDelay)
	require.Equal(t, 10*time.Second, cfg.SubmitTimeout)
	require.EqualValues(t, 1<<20, cfg.MaxBodyBytes)
	require.Equal(t, 5.0, cfg.RateLimitRPS)
	require.Equal(t, 10, cfg.RateLimitBurst)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10*time.Minute, cfg.SessionSweepInterval)
}

func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/postbot")
	t.Setenv("SUBMIT_DELAY", "0s")
	t.Setenv("SUBMIT_TIMEOUT", "1m")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("SESSION_TTL", "0s")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, config.BackendPostgres, cfg.StorageBackend)
	require.Equal(t, "postgres://user:pass@db:5432/postbot", cfg.DatabaseURL)
	require.Zero(t, cfg.SubmitDelay)
	require.Equal(t, time.Minute, cfg.SubmitTimeout)
	require.Equal(t, 0.5, cfg.RateLimitRPS)
	require.Zero(t, cfg.SessionTTL, "zero keeps sessions for the process lifetime")
}

func TestLoad_backendRequirements(t *testing.T) {
	tests := map[string]string{
		config.BackendPostgres: "DATABASE_URL",
		config.BackendRedis:    "REDIS_URL",
	}
	for backend, missing := range tests {
		t.Run(backend, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STORAGE_BACKEND", backend)

			_, err := config.Load()

			require.Error(t, err)
			require.ErrorContains(t, err, missing)
		})
	}
}

func TestLoad_unknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "cassandra")

	_, err := config.Load()

	require.ErrorContains(t, err, "STORAGE_BACKEND")
}

func TestLoad_malformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUBMIT_DELAY", "soon")
	t.Setenv("RATE_LIMIT_BURST", "many")

	_, err := config.Load()

	require.ErrorContains(t, err, "SUBMIT_DELAY")
	require.ErrorContains(t, err, "RATE_LIMIT_BURST")
}
