// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/constants"
)

// RedisSessionStore implements [SessionStore] using Redis.
//
// # No TTL, on purpose
//
// Snapshots are written WITHOUT a Redis TTL. Session expiry is a domain rule
// evaluated lazily by the [SessionManager] at read time, so an expired
// session remains observable until its next access cleans it up.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed [SessionStore].
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// sessionKey builds the Redis key for a session ID.
func sessionKey(id string) string {
	return constants.RedisPrefixSession + id
}

/*
Save writes the session snapshot, overwriting any previous state.

Description: Rejects unredacted snapshots. A credential hash must never be
serialized into the session store, even though the JSON tags would drop it,
because presence of the hash means a raw Identity leaked past the service layer.

Parameters:
  - ctx: context.Context
  - session: *Session

Returns:
  - error: Guard violations or storage failures
*/
func (store *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	if session.User.CredentialHash != "" {
		return fmt.Errorf("redis_session_unredacted_snapshot: session %s", session.ID)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	if err := store.client.Set(ctx, sessionKey(session.ID), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return nil
}

/*
Get loads a session snapshot by ID.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *Session: The stored snapshot
  - error: apperr.NotFound or storage failures
*/
func (store *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := store.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}

	return session, nil
}

/*
Delete removes the session snapshot.

Description: Deleting a missing session succeeds. Logout is idempotent.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - error: Storage failures
*/
func (store *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := store.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
