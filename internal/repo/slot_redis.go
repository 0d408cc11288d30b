package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/postbot/backend/internal/domain"
)

// redisSlotStore stores each slot as a plain Redis string without expiry.
type redisSlotStore struct {
	client redis.Cmdable
}

// NewRedisSlotStore constructs a SlotStore backed by the provided client.
// Accepts redis.Cmdable so tests can pass a pipeline or a cluster client.
func NewRedisSlotStore(client redis.Cmdable) SlotStore {
	return &redisSlotStore{client: client}
}

func (r *redisSlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repo.redisSlotStore.Get: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return v, true, nil
}

func (r *redisSlotStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("repo.redisSlotStore.Set: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// NewRedisClient parses url, opens a client, and verifies it with PING.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("repo.NewRedisClient: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("repo.NewRedisClient: ping: %w", err)
	}
	return client, nil
}
