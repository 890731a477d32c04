package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/StudioBookingService/internal/config"
)

// NewRedisClient создает клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if client == nil {
		return ErrNilClient
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrRedis, err)
	}
	return nil
}
