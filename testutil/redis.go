package testutil

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to TEST_REDIS_URL (e.g. redis://localhost:6379/15).
// The test is skipped when the variable is unset. Keys written by the test
// are the test's responsibility; the client is closed on cleanup.
func NewRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	opts, err := redis.ParseURL(requireEnv(t, "TEST_REDIS_URL"))
	if err != nil {
		t.Fatalf("testutil.NewRedisClient: parse url: %v", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("testutil.NewRedisClient: ping: %v", err)
	}

	t.Cleanup(func() { _ = client.Close() })
	return client
}
