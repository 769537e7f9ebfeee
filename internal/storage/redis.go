package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sethvargo/go-retry"
)

// RedisKV хранит сериализованные коллекции в Redis.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV создаёт хранилище и проверяет соединение с Redis.
func NewRedisKV(addr string) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	backoff := retry.WithMaxRetries(3, retry.NewConstant(1*time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisKV{client: client}, nil
}

// Get возвращает значение по ключу либо ErrNotFound.
func (s *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get value: %w", err)
	}
	return value, nil
}

// Set сохраняет значение по ключу без срока жизни.
func (s *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set value: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *RedisKV) Close() error {
	return s.client.Close()
}
