package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/go-featurize/internal/domain"
)

// DefaultRedisKey is the key used when none is configured.
const DefaultRedisKey = "featurize:fitted-state"

// RedisStore persists fitted state in Redis, for deployments where
// several serving replicas share one fitted state. A single SET replaces
// the value atomically; readers see the old payload or the new one.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store on the given client.
// An empty key falls back to DefaultRedisKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Save publishes the state under the configured key with no expiry;
// fitted state is only ever replaced by a newer fit, never aged out.
func (s *RedisStore) Save(ctx context.Context, state *domain.FittedState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("publish state to redis: %w", err)
	}
	return nil
}

// Load reads back the published state.
func (s *RedisStore) Load(ctx context.Context) (*domain.FittedState, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: key %q", domain.ErrStateNotFound, s.key)
		}
		return nil, fmt.Errorf("read state from redis: %w", err)
	}
	return decodeState(data)
}
