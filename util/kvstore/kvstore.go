package kvstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// New builds the shared Redis client. Reconnects are bounded with backoff
// at the connection layer so in-flight commands fail fast instead of
// hanging; callers decide how to surface the error.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            addr,
		DB:              0,
		MaxRetries:      5,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 3 * time.Second,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})
}

// Ping checks connectivity once, for startup logging.
func Ping(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return rdb.Ping(ctx).Err()
}
