package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists the token pair in Redis under a single hash key.
// Intended for server-hosted console deployments where several replicas
// share one session.
type RedisStorage struct {
	client *redis.Client
	key    string
}

const (
	redisFieldAccess  = "access"
	redisFieldRefresh = "refresh"
)

// NewRedisStorage creates a [RedisStorage] keyed by prefix. The prefix
// namespaces deployments sharing one Redis instance.
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "aula"
	}
	return &RedisStorage{
		client: client,
		key:    prefix + ":tokens",
	}
}

// Load reads the persisted pair. An absent or empty hash maps to [ErrNoTokens].
func (r *RedisStorage) Load(ctx context.Context) (TokenPair, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return TokenPair{}, ErrNoTokens
		}
		return TokenPair{}, fmt.Errorf("redis load tokens: %w", err)
	}

	pair := TokenPair{
		Access:  values[redisFieldAccess],
		Refresh: values[redisFieldRefresh],
	}
	if pair.Empty() {
		return TokenPair{}, ErrNoTokens
	}
	return pair, nil
}

// Save replaces both fields in one round-trip.
func (r *RedisStorage) Save(ctx context.Context, pair TokenPair) error {
	err := r.client.HSet(ctx, r.key,
		redisFieldAccess, pair.Access,
		redisFieldRefresh, pair.Refresh,
	).Err()
	if err != nil {
		return fmt.Errorf("redis save tokens: %w", err)
	}
	return nil
}

// Clear deletes the hash. Deleting an absent key is not an error.
func (r *RedisStorage) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis clear tokens: %w", err)
	}
	return nil
}
