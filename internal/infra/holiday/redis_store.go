package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps holiday flags in Redis so every replica shares one upstream call per day.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (s *RedisStore) GetFlag(ctx context.Context, key string) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, ErrMiss
	} else if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var flag bool
	if err := json.Unmarshal(data, &flag); err != nil {
		return false, fmt.Errorf("redis value for %s: %w", key, err)
	}
	return flag, nil
}

func (s *RedisStore) SetFlag(ctx context.Context, key string, value bool, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal flag: %w", err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
