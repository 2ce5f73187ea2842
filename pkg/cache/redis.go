package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache - кэш на основе Redis
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration

	hits   int64
	misses int64
}

// NewRedisCache создаёт Redis кэш и проверяет соединение
func NewRedisCache(opts *Options) (*RedisCache, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
		PoolSize: opts.RedisPoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.RedisAddr, err)
	}

	return &RedisCache{
		client:     client,
		defaultTTL: opts.DefaultTTL,
	}, nil
}

// Get возвращает значение по ключу
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.misses++
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	c.hits++
	return value, nil
}

// Set сохраняет значение с TTL (ttl <= 0 использует значение по умолчанию)
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete удаляет запись
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Exists проверяет наличие ключа
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Stats возвращает статистику кэша
func (c *RedisCache) Stats(ctx context.Context) (*Stats, error) {
	size, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return &Stats{
		TotalKeys: size,
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   hitRate,
		Backend:   BackendRedis,
	}, nil
}

// Clear удаляет все ключи текущей базы
func (c *RedisCache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

// Close закрывает клиент
func (c *RedisCache) Close() error {
	return c.client.Close()
}
