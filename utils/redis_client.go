package utils

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/animeinsights/blog/config"
)

var redisClient *redis.Client

// InitRedis configures the response-cache client. Called once during boot;
// when no Redis host is configured, caching stays disabled.
func InitRedis(cfg config.AppConfig) {
	if cfg.RedisHost == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil && Sugar != nil {
		Sugar.Warnf("redis unreachable, response caching degraded: %v", err)
	}
}

// GetRedis returns the cache client, or nil when caching is disabled.
// Callers must treat a nil client as "caching disabled".
func GetRedis() *redis.Client {
	return redisClient
}
