package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-redis/redis/v8"
	"github.com/nikolayk812/storefront/internal/port"
	"time"
)

const defaultRedisPrefix = "storefront:"

type redisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(client *redis.Client, prefix string) port.KeyValueStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	return &redisKV{
		client: client,
		prefix: prefix,
	}
}

// NewRedisClient accepts either a redis:// URL or a bare host:port address.
func NewRedisClient(addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}

	return redis.NewClient(opts), nil
}

func (r *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("client.Get", err)
	}

	return value, true, nil
}

func (r *redisKV) Set(ctx context.Context, key string, value string) error {
	if key == "" {
		return errEmptyKey
	}

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return unavailable("client.Set", err)
	}

	return nil
}

func (r *redisKV) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return unavailable("client.Del", err)
	}

	return nil
}
