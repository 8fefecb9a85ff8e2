// Copyright (c) 2026 SafeCampus. All rights reserved.

package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/constants"
)

// RedisBannerStore implements [BannerStore] on a single Redis key.
//
// The banner has no TTL: it stays up until a responder closes it or a newer
// alert replaces it.
type RedisBannerStore struct {
	client *redis.Client
}

// NewBannerStore creates a new Redis-backed [BannerStore].
func NewBannerStore(client *redis.Client) *RedisBannerStore {
	return &RedisBannerStore{client: client}
}

/*
Publish makes the alert the active campus banner, replacing any previous one.

Parameters:
  - ctx: context.Context
  - alert: *Alert

Returns:
  - error: Storage failures
*/
func (store *RedisBannerStore) Publish(ctx context.Context, alert *Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("redis_banner_marshal_failed: %w", err)
	}

	if err := store.client.Set(ctx, constants.RedisKeyActiveAlert, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis_banner_publish_failed: %w", err)
	}

	return nil
}

/*
Active returns the current banner.

Parameters:
  - ctx: context.Context

Returns:
  - *Alert: Active banner
  - error: apperr.NotFound when no banner is up, or storage failures
*/
func (store *RedisBannerStore) Active(ctx context.Context) (*Alert, error) {
	payload, err := store.client.Get(ctx, constants.RedisKeyActiveAlert).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Active alert")
		}
		return nil, fmt.Errorf("redis_banner_get_failed: %w", err)
	}

	banner := &Alert{}
	if err := json.Unmarshal(payload, banner); err != nil {
		return nil, fmt.Errorf("redis_banner_unmarshal_failed: %w", err)
	}

	return banner, nil
}

/*
Clear removes the banner. Clearing an absent banner succeeds.

Parameters:
  - ctx: context.Context

Returns:
  - error: Storage failures
*/
func (store *RedisBannerStore) Clear(ctx context.Context) error {
	if err := store.client.Del(ctx, constants.RedisKeyActiveAlert).Err(); err != nil {
		return fmt.Errorf("redis_banner_clear_failed: %w", err)
	}
	return nil
}
