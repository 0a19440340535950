package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps revoked token ids as expiring keys and flashes as short-lived lists.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore { return &RedisStore{Client: client} }

func revokedKey(tokenID string) string { return "revoked:" + tokenID }

func flashKey(key string) string { return "flash:" + key }

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, revokedKey(tokenID), 1, ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.Client.Get(ctx, revokedKey(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) AddFlash(ctx context.Context, key, msg string) error {
	pipe := s.Client.TxPipeline()
	pipe.RPush(ctx, flashKey(key), msg)
	pipe.Expire(ctx, flashKey(key), flashTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) PopFlashes(ctx context.Context, key string) ([]string, error) {
	pipe := s.Client.TxPipeline()
	rng := pipe.LRange(ctx, flashKey(key), 0, -1)
	pipe.Del(ctx, flashKey(key))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return rng.Val(), nil
}
