package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
)

const kvPrefix = "nirvor:kv:"

// redisKV keeps the same key/value contract as sqliteKV on a shared Redis,
// so several API instances see one cache.
type redisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *redisKV {
	return &redisKV{client: client}
}

func (s *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, kvPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewNotFoundError(fmt.Sprintf("key %q not found", key))
	}
	if err != nil {
		return nil, errs.NewDatabaseError("kv.get", "failed to read key", err)
	}
	return value, nil
}

func (s *redisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, kvPrefix+key, value, 0).Err(); err != nil {
		return errs.NewDatabaseError("kv.set", "failed to write key", err)
	}
	return nil
}

func (s *redisKV) Close() error {
	return s.client.Close()
}
