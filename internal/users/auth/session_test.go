// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/internal/users/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, store auth.SessionStore) *auth.SessionManager {
	t.Helper()

	signer, err := sec.NewTokenService(testSecret, "safecampus.test")
	require.NoError(t, err)

	return auth.NewSessionManager(store, signer)
}

func testIdentity() *auth.Identity {
	return &auth.Identity{
		ID:             "user-1",
		Name:           "Alex Johnson",
		Email:          "alex@campus.edu",
		Phone:          "+1-555-0100",
		CredentialHash: "$2a$10$fakehash",
		Role:           sec.RoleStudent,
		MemberSince:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EmergencyContacts: []auth.EmergencyContact{
			{ID: "c1", Name: "Sam Johnson", Phone: "+1-555-0101", Relationship: "parent"},
		},
	}
}

/*
TestSessionManager_CreateAndValidate verifies the token round trip and that
the stored snapshot is redacted.
*/
func TestSessionManager_CreateAndValidate(t *testing.T) {
	ctx := context.Background()
	store := newMemSessionStore()
	manager := newTestManager(t, store)

	session, token, err := manager.Create(ctx, testIdentity(), false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Empty(t, session.User.CredentialHash)
	assert.Equal(t, "alex@campus.edu", session.User.Email)

	loaded, err := manager.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Empty(t, loaded.User.CredentialHash)
}

/*
TestSessionManager_Lifetimes verifies the 2 hour default and the 30 day
remember-me extension.
*/
func TestSessionManager_Lifetimes(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, newMemSessionStore())

	standard, _, err := manager.Create(ctx, testIdentity(), false)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, standard.ExpiresAt.Sub(standard.CreatedAt))
	assert.False(t, standard.RememberMe)

	extended, _, err := manager.Create(ctx, testIdentity(), true)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, extended.ExpiresAt.Sub(extended.CreatedAt))
	assert.True(t, extended.RememberMe)
}

/*
TestSessionManager_LazyExpiry verifies that presenting an expired token
deletes the expired snapshot and reports no active session.

The token's exp claim and the snapshot's deadline expire together, so the
token must still resolve to its session ID after expiry or the cleanup could
never run.
*/
func TestSessionManager_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	store := newMemSessionStore()
	signer, err := sec.NewTokenService(testSecret, "safecampus.test")
	require.NoError(t, err)
	manager := auth.NewSessionManager(store, signer)

	session, _, err := manager.Create(ctx, testIdentity(), false)
	require.NoError(t, err)

	// Age the session past its deadline, token included, exactly as a
	// long-idle client would present it.
	deadline := time.Now().Add(-time.Minute)
	expired, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	expired.ExpiresAt = deadline
	require.NoError(t, store.Save(ctx, expired))

	staleToken, err := signer.GenerateSessionToken(session.ID, deadline)
	require.NoError(t, err)

	_, err = manager.Validate(ctx, staleToken)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	// The expired snapshot was cleaned up on discovery.
	assert.Equal(t, 0, store.len())
}

/*
TestSessionManager_Refresh verifies the snapshot is overwritten while the
deadline stays untouched.
*/
func TestSessionManager_Refresh(t *testing.T) {
	ctx := context.Background()
	store := newMemSessionStore()
	manager := newTestManager(t, store)

	session, _, err := manager.Create(ctx, testIdentity(), true)
	require.NoError(t, err)
	originalDeadline := session.ExpiresAt

	updated := testIdentity()
	updated.Name = "Alex J. Johnson"
	updated.Stats.SOSActivations = 3

	refreshed, err := manager.Refresh(ctx, session.ID, updated)
	require.NoError(t, err)

	assert.Equal(t, "Alex J. Johnson", refreshed.User.Name)
	assert.Equal(t, 3, refreshed.User.Stats.SOSActivations)
	assert.Empty(t, refreshed.User.CredentialHash)
	assert.True(t, refreshed.ExpiresAt.Equal(originalDeadline))

	persisted, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alex J. Johnson", persisted.User.Name)
}

/*
TestSessionManager_Refresh_PersistenceFailure verifies that a failed save
still yields the updated in-memory session.
*/
func TestSessionManager_Refresh_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	store := newMemSessionStore()
	manager := newTestManager(t, store)

	session, _, err := manager.Create(ctx, testIdentity(), false)
	require.NoError(t, err)

	store.failSave = true

	updated := testIdentity()
	updated.Name = "New Name"

	refreshed, err := manager.Refresh(ctx, session.ID, updated)
	require.Error(t, err)
	require.NotNil(t, refreshed)
	assert.Equal(t, "New Name", refreshed.User.Name)
}

/*
TestSessionManager_Destroy verifies destruction and its idempotence.
*/
func TestSessionManager_Destroy(t *testing.T) {
	ctx := context.Background()
	store := newMemSessionStore()
	manager := newTestManager(t, store)

	session, token, err := manager.Create(ctx, testIdentity(), false)
	require.NoError(t, err)

	require.NoError(t, manager.Destroy(ctx, session.ID))
	require.NoError(t, manager.Destroy(ctx, session.ID))

	_, err = manager.Validate(ctx, token)
	assert.Error(t, err)
}

/*
TestSessionManager_Resolve verifies the middleware integration path.
*/
func TestSessionManager_Resolve(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, newMemSessionStore())

	session, token, err := manager.Create(ctx, testIdentity(), false)
	require.NoError(t, err)

	claims, err := manager.Resolve(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, session.ID, claims.SessionID)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, sec.RoleStudent, claims.Role)

	_, err = manager.Resolve(ctx, "not-a-token")
	assert.Error(t, err)
}
