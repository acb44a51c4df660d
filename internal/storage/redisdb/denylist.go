package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"react-golang/internal/config"
)

const denylistPrefix = "denylist:"

// Denylist хранит jti отозванных токенов с TTL до конца их срока жизни.
type Denylist struct {
	client *redis.Client
}

func New(ctx context.Context, cfg config.Redis) (*Denylist, error) {
	const op = "storage.redisdb.New"

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Denylist{client: client}, nil
}

func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	const op = "storage.redisdb.Revoke"

	if err := d.client.Set(ctx, denylistPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const op = "storage.redisdb.IsRevoked"

	n, err := d.client.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

func (d *Denylist) Close() error {
	return d.client.Close()
}
