package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects the shared Redis client backing the idempotency
// store and the sweep scheduler lock. Connectivity is verified up front
// so a misconfigured deployment fails at boot rather than on the first
// mutating request.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return r, nil
}
