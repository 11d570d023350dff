package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "taskforge:apikey:"

// RedisRegistry stores active API keys in Redis so revocation state is
// shared between instances and survives a process restart. Entries carry
// the same TTL as the key's expiry claim.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRegistry constructs a Redis-backed registry.
func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, ttl: ttl}
}

func (r *RedisRegistry) Activate(ctx context.Context, apiKey string) error {
	return r.client.Set(ctx, redisKeyPrefix+apiKey, "1", r.ttl).Err()
}

func (r *RedisRegistry) IsActive(ctx context.Context, apiKey string) (bool, error) {
	n, err := r.client.Exists(ctx, redisKeyPrefix+apiKey).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisRegistry) Revoke(ctx context.Context, apiKey string) (bool, error) {
	n, err := r.client.Del(ctx, redisKeyPrefix+apiKey).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ Registry = (*RedisRegistry)(nil)
