package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/planner/internal/domain"
)

// redisBindingStore keeps each binding as a plain string key. Keys are
// prefixed so the planner can share a Redis instance.
type redisBindingStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisBindingStore constructs a BindingStore over a go-redis client.
// An empty prefix defaults to "planner".
func NewRedisBindingStore(client redis.Cmdable, prefix string) BindingStore {
	if prefix == "" {
		prefix = "planner"
	}
	return &redisBindingStore{client: client, prefix: prefix}
}

func (s *redisBindingStore) key(k string) string {
	return s.prefix + ":binding:" + k
}

func (s *redisBindingStore) Load(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("repo.redisBindingStore.Load: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.redisBindingStore.Load: %w", err)
	}
	return v, nil
}

// Store writes without expiry; a binding lives until it is removed.
func (s *redisBindingStore) Store(ctx context.Context, key, tripID string) error {
	if err := s.client.Set(ctx, s.key(key), tripID, 0).Err(); err != nil {
		return fmt.Errorf("repo.redisBindingStore.Store: %w", err)
	}
	return nil
}

func (s *redisBindingStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("repo.redisBindingStore.Delete: %w", err)
	}
	return nil
}
