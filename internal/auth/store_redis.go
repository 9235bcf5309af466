package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"stockdeck/internal/domain"
)

// Redis key prefix for live sessions.
const sessionKeyPrefix = "sess:"

// RedisSessionStore is the production session store: session liveness is
// shared across instances and TTL expiry is handled by Redis itself.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, session domain.Session) error {
	key := sessionKeyPrefix + session.ID
	// Store the owning user ID as the value; key existence is what matters
	// for liveness checks.
	return s.client.Set(ctx, key, session.UserID, s.ttl).Err()
}

func (s *RedisSessionStore) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}
