package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OnceStore keeps one-time values (OAuth states, exchange codes) in Redis so
// every API instance sees them. Put is SET NX EX and Take is GETDEL, so a
// value is handed out at most once across the cluster.
type OnceStore struct {
	client redis.UniversalClient
	prefix string
}

func NewOnceStore(client redis.UniversalClient, prefix string) *OnceStore {
	return &OnceStore{client: client, prefix: prefix}
}

func (s *OnceStore) Put(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: put one-time value: %w", err)
	}
	return ok, nil
}

func (s *OnceStore) Take(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.GetDel(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: take one-time value: %w", err)
	}
	return value, true, nil
}
