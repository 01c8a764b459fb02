package services

import (
	"context"
	"fmt"

	"encuentros/config"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

func InitRedis(redisConfig config.RedisConfig) error {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisConfig.Host, redisConfig.Port),
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	// fail fast, callers fall back to NopCounter
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	RedisClient = client
	return nil
}

func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}
