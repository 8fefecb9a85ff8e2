// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/pkg/uuid"
)

// # Contracts & Types

// TokenSigner defines the contract for issuing and verifying session tokens.
type TokenSigner interface {
	// GenerateSessionToken creates a signed bearer token referencing a session ID.
	GenerateSessionToken(sessionID string, expiresAt time.Time) (string, error)

	// VerifySessionToken validates the token signature and returns the session ID.
	VerifySessionToken(tokenString string) (string, error)
}

// SessionManager owns the session lifecycle: creation, lazy expiry,
// snapshot refresh, and destruction.
//
// # Design
//
// The bearer token carries only the session ID. All mutable state (the
// identity snapshot, the deadline) lives in the [SessionStore], so a profile
// refresh is visible immediately without re-issuing the token, and a
// destroyed session dies even while its token signature is still valid.
type SessionManager struct {
	store  SessionStore
	signer TokenSigner
}

// NewSessionManager constructs a [SessionManager] with its dependencies.
func NewSessionManager(store SessionStore, signer TokenSigner) *SessionManager {
	return &SessionManager{store: store, signer: signer}
}

// # Lifecycle

/*
Create establishes a new session for the given identity.

Description: Snapshots the redacted identity and sets the deadline from the
rememberMe flag: 30 days when set, 2 hours otherwise.

Parameters:
  - ctx: context.Context
  - identity: *Identity (unredacted; snapshot is redacted here)
  - rememberMe: bool

Returns:
  - *Session: The established session
  - string: Signed bearer token for the client
  - error: Signing or storage failures
*/
func (manager *SessionManager) Create(ctx context.Context, identity *Identity, rememberMe bool) (*Session, string, error) {
	now := time.Now()

	ttl := SessionTTL
	if rememberMe {
		ttl = RememberMeTTL
	}

	session := &Session{
		ID:         uuid.New(),
		User:       identity.Redacted(),
		RememberMe: rememberMe,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}

	token, err := manager.signer.GenerateSessionToken(session.ID, session.ExpiresAt)
	if err != nil {
		return nil, "", fmt.Errorf("session_token_sign_failed: %w", err)
	}

	if err := manager.store.Save(ctx, session); err != nil {
		return nil, "", fmt.Errorf("session_create_save_failed: %w", err)
	}

	return session, token, nil
}

/*
Validate loads the session for a bearer token and enforces lazy expiry.

Description: An expired session is deleted on discovery and reported as
"no active session". This is the ONLY expiry mechanism; there is no TTL and
no background sweeper.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - *Session: The live session
  - error: apperr.Unauthorized for bad tokens, missing or expired sessions
*/
func (manager *SessionManager) Validate(ctx context.Context, token string) (*Session, error) {
	sessionID, err := manager.signer.VerifySessionToken(token)
	if err != nil {
		return nil, apperr.Unauthorized("No active session")
	}

	session, err := manager.store.Get(ctx, sessionID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("No active session")
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		// Best effort cleanup; a failed delete just means the next read
		// repeats this branch.
		_ = manager.store.Delete(ctx, session.ID)
		return nil, apperr.Unauthorized("No active session")
	}

	return session, nil
}

/*
Refresh overwrites the session's identity snapshot after a profile change.

Description: The deadline is never touched. Refreshing a session must not
extend (or shorten) its lifetime. If persistence fails, the updated session
is still returned: the in-memory view stays authoritative for this request
and the stale snapshot heals on the next successful save.

Parameters:
  - ctx: context.Context
  - sessionID: string
  - identity: *Identity (unredacted; snapshot is redacted here)

Returns:
  - *Session: Session with the fresh snapshot (also returned on save failure)
  - error: Missing session or storage failures
*/
func (manager *SessionManager) Refresh(ctx context.Context, sessionID string, identity *Identity) (*Session, error) {
	session, err := manager.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.User = identity.Redacted()

	if err := manager.store.Save(ctx, session); err != nil {
		return session, fmt.Errorf("session_refresh_save_failed: %w", err)
	}

	return session, nil
}

/*
Destroy removes the session. Destroying an already-gone session succeeds.

Parameters:
  - ctx: context.Context
  - sessionID: string

Returns:
  - error: Storage failures
*/
func (manager *SessionManager) Destroy(ctx context.Context, sessionID string) error {
	if err := manager.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("session_destroy_failed: %w", err)
	}
	return nil
}

// # Middleware Integration

// Resolve implements the middleware's SessionResolver contract: it turns a
// bearer token into transport-safe claims.
func (manager *SessionManager) Resolve(ctx context.Context, token string) (*sec.SessionClaims, error) {
	session, err := manager.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	return session.Claims(), nil
}
