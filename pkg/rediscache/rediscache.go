package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss возвращается, когда ключ отсутствует в кэше
var ErrCacheMiss = errors.New("rediscache: cache miss")

// Cache тонкая обёртка над go-redis для кэширования JSON-значений.
// Используется интеграционными клиентами: резолвер доступности перечитывает
// одни и те же справочные данные на каждый день lookahead-цикла.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кэш и проверяет соединение с redis
func New(addr string, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("rediscache: failed to connect to redis at %s: %w", addr, err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// Get читает значение по ключу и десериализует его в dest
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("rediscache: get %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("rediscache: unmarshal %s: %w", key, err)
	}

	return nil
}

// Set сериализует значение в JSON и сохраняет с TTL кэша
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("rediscache: marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("rediscache: set %s: %w", key, err)
	}

	return nil
}

// Close закрывает соединение с redis
func (c *Cache) Close() error {
	return c.client.Close()
}
