package cache

import (
	"context"
	"fmt"
	"time"

	"gatherly-api/core/constants"
	"gatherly-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Nil is returned by Get when the key does not exist.
const Nil = redis.Nil

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

var client *redis.Client

func InitRedis(config RedisConfig) error {
	logger.Info("Initializing redis...")

	client = redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis initialized successfully", "addr", config.Addr, "db", config.DB)
	return nil
}

func GetClient() *redis.Client {
	return client
}

func Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return client.Set(ctx, key, value, ttl).Err()
}

func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

func Delete(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}
