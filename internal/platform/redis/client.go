// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package redis manages the Redis client lifecycle.

Redis backs two concerns in SafeCampus:

  - Session snapshots (auth:session:<id>), stored WITHOUT a TTL because
    session expiry is evaluated lazily at read time.
  - The campus-wide active alert banner (alert:active).
*/
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// NewClient creates a Redis client from a redis:// URL and verifies
// connectivity with a ping.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis_parse_url_failed: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis_ping_failed: %w", err)
	}

	return client, nil
}

// Ping verifies client connectivity. Used by the readiness probe.
func Ping(ctx context.Context, client *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return client.Ping(pingCtx).Err()
}
