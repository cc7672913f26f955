// Package cache owns the process-wide redis client. Only the performance
// board reads go through it; losing redis degrades those reads to direct
// ledger queries, nothing else.
package cache

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Client is nil until InitRedis runs.
var Client *redis.Client

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// InitRedis connects using REDIS_URL, which may be a bare host:port or a
// redis:// / rediss:// URL carrying credentials and a database index.
func InitRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	opts, err := redisOptions(addr)
	if err != nil {
		log.Fatalf("failed to parse REDIS_URL: %v", err)
	}

	Client = newRedisClient(opts)
	if err := pingRedis(ctx, Client); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")
}

func redisOptions(addr string) (*redis.Options, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		return parseRedisURL(addr)
	}
	return &redis.Options{Addr: addr}, nil
}
