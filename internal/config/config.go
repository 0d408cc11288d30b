// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (Next.js dev server).
	CORSOrigins []string

	// StorageBackend selects where campaign slots live: memory, redis, or postgres.
	StorageBackend string

	// DatabaseURL is the Postgres connection string. Required for the postgres backend.
	DatabaseURL string

	// RedisURL is the Redis connection URL. Required for the redis backend.
	RedisURL string

	// SubmitDelay is how long the simulated generate/publish call takes.
	SubmitDelay time.Duration

	// SubmitTimeout bounds a single generate/publish call. Zero disables it.
	SubmitTimeout time.Duration

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64

	// RateLimitRPS and RateLimitBurst shape the token bucket in front of
	// generate and publish.
	RateLimitRPS   float64
	RateLimitBurst int

	// SessionTTL is how long an idle session survives. Zero keeps sessions
	// for the life of the process.
	SessionTTL time.Duration

	// SessionSweepInterval is how often idle sessions are looked for.
	SessionSweepInterval time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every missing or malformed variable.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
	}

	var problems []string
	parse := func(key, fallback string, set func(string) error) {
		if err := set(getEnv(key, fallback)); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", key, err))
		}
	}

	parse("SUBMIT_DELAY", "2s", func(v string) (err error) {
		cfg.SubmitDelay, err = time.ParseDuration(v)
		return err
	})
	parse("SUBMIT_TIMEOUT", "10s", func(v string) (err error) {
		cfg.SubmitTimeout, err = time.ParseDuration(v)
		return err
	})
	parse("MAX_BODY_BYTES", "1048576", func(v string) (err error) {
		cfg.MaxBodyBytes, err = strconv.ParseInt(v, 10, 64)
		return err
	})
	parse("RATE_LIMIT_RPS", "5", func(v string) (err error) {
		cfg.RateLimitRPS, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("RATE_LIMIT_BURST", "10", func(v string) (err error) {
		cfg.RateLimitBurst, err = strconv.Atoi(v)
		return err
	})

	parse("SESSION_TTL", "24h", func(v string) (err error) {
		cfg.SessionTTL, err = time.ParseDuration(v)
		return err
	})
	parse("SESSION_SWEEP_INTERVAL", "10m", func(v string) (err error) {
		cfg.SessionSweepInterval, err = time.ParseDuration(v)
		return err
	})

	var missing []string
	switch cfg.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case BackendRedis:
		if cfg.RedisURL == "" {
			missing = append(missing, "REDIS_URL")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_BACKEND: unknown backend %q", cfg.StorageBackend))
	}

	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
