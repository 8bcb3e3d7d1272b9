package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// RedisBlobs reads catalog documents stored as plain string values
type RedisBlobs struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBlobs reads keys of the form prefix+key
func NewRedisBlobs(rdb *redis.Client, prefix string) *RedisBlobs {
	return &RedisBlobs{rdb: rdb, prefix: prefix}
}

// ReadBlob returns the value stored under key
func (b *RedisBlobs) ReadBlob(ctx context.Context, key string) ([]byte, error) {
	data, err := b.rdb.Get(ctx, b.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis key %s: %w", b.prefix+key, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("failed to read redis key %s: %w", b.prefix+key, err)
	}
	return data, nil
}

// WriteBlob stores data under key without expiration
func (b *RedisBlobs) WriteBlob(ctx context.Context, key string, data []byte) error {
	if err := b.rdb.Set(ctx, b.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write redis key %s: %w", b.prefix+key, err)
	}
	return nil
}
