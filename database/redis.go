package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tatertot/apartmentsapi/config"
	"github.com/tatertot/apartmentsapi/shared/zaplogger"
)

// ConnectRedis connects to Redis when a URL is configured. Used for the
// Redis session store.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	zaplogger.Info(config.SingleLine)
	zaplogger.Info("Connecting to Redis")

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	redisClient := redis.NewClient(redisOpts)

	// Check Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	zaplogger.Info("  * connected")

	return redisClient, nil
}
