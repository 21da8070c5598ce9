package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/raminsh/filmlog/internal/platform/config"
)

// InitRedis connects to the Redis server backing the rating-events queue.
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error verifying Redis connection: %w", err)
	}

	return client, nil
}
