package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mamadbah2/foodtracker/internal/config"
	"github.com/mamadbah2/foodtracker/internal/repository/slot"
)

// Slot persists slots as plain redis strings under a common prefix.
type Slot struct {
	client *goredis.Client
	prefix string
}

// NewSlot connects to redis and verifies the connection.
func NewSlot(ctx context.Context, cfg config.RedisConfig) (*Slot, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewSlotWithClient(client, cfg.KeyPrefix), nil
}

// NewSlotWithClient wraps an existing client.
func NewSlotWithClient(client *goredis.Client, prefix string) *Slot {
	return &Slot{client: client, prefix: prefix}
}

// Get returns the stored value or slot.ErrNotFound.
func (s *Slot) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", slot.ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Set overwrites the stored value without expiry.
func (s *Slot) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Slot) Close() error {
	return s.client.Close()
}
