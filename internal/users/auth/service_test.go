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

type serviceFixture struct {
	identities *memIdentityRepo
	sessions   *memSessionStore
	service    *auth.Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	identities := newMemIdentityRepo()
	sessions := newMemSessionStore()

	return &serviceFixture{
		identities: identities,
		sessions:   sessions,
		service:    auth.NewService(identities, newTestManager(t, sessions)),
	}
}

func (f *serviceFixture) signup(t *testing.T, email string, role sec.Role) *auth.AuthResult {
	t.Helper()

	result, err := f.service.Signup(context.Background(), auth.SignupInput{
		Name:     "Alex Johnson",
		Email:    email,
		Phone:    "+1-555-0100",
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)
	return result
}

/*
TestSignup verifies enrollment: hashed credentials, defaulted role, and a
standard 2 hour session regardless of any remember-me intent.
*/
func TestSignup(t *testing.T) {
	ctx := context.Background()
	fixture := newServiceFixture(t)

	result := fixture.signup(t, "alex@campus.edu", "")
	session := result.Session

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, sec.RoleStudent, session.User.Role)
	assert.Empty(t, session.User.CredentialHash)
	assert.NotNil(t, session.User.EmergencyContacts)
	assert.Equal(t, 2*time.Hour, session.ExpiresAt.Sub(session.CreatedAt))

	// The stored identity carries a real bcrypt hash, never the plain text.
	stored, err := fixture.identities.FindByEmail(ctx, "alex@campus.edu")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.CredentialHash)
	assert.NotEqual(t, "password123", stored.CredentialHash)
	assert.True(t, sec.CheckPasswordHash("password123", stored.CredentialHash))
}

/*
TestSignup_DuplicateEmail verifies the 409 conflict path.
*/
func TestSignup_DuplicateEmail(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.signup(t, "alex@campus.edu", "")

	_, err := fixture.service.Signup(context.Background(), auth.SignupInput{
		Name:     "Another Alex",
		Email:    "alex@campus.edu",
		Password: "different456",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

/*
TestLogin verifies credential checks and session lifetimes.
*/
func TestLogin(t *testing.T) {
	ctx := context.Background()
	fixture := newServiceFixture(t)
	fixture.signup(t, "alex@campus.edu", sec.RoleSecurity)

	t.Run("standard_session", func(t *testing.T) {
		result, err := fixture.service.Login(ctx, auth.LoginInput{
			Email:    "alex@campus.edu",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, result.Session.ExpiresAt.Sub(result.Session.CreatedAt))
		assert.Equal(t, sec.RoleSecurity, result.Session.User.Role)
	})

	t.Run("remember_me_session", func(t *testing.T) {
		result, err := fixture.service.Login(ctx, auth.LoginInput{
			Email:      "alex@campus.edu",
			Password:   "password123",
			RememberMe: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, result.Session.ExpiresAt.Sub(result.Session.CreatedAt))
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := fixture.service.Login(ctx, auth.LoginInput{
			Email:    "alex@campus.edu",
			Password: "wrong-password",
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", err.Error())
	})

	t.Run("unknown_email_same_message", func(t *testing.T) {
		_, err := fixture.service.Login(ctx, auth.LoginInput{
			Email:    "nobody@campus.edu",
			Password: "password123",
		})
		require.Error(t, err)
		// Same generic message as a wrong password, to prevent enumeration.
		assert.Equal(t, "Invalid login credentials", err.Error())
	})

	t.Run("email_is_case_sensitive", func(t *testing.T) {
		_, err := fixture.service.Login(ctx, auth.LoginInput{
			Email:    "ALEX@campus.edu",
			Password: "password123",
		})
		assert.Error(t, err)
	})
}

/*
TestLogout verifies destruction and the anonymous no-op.
*/
func TestLogout(t *testing.T) {
	ctx := context.Background()
	fixture := newServiceFixture(t)
	result := fixture.signup(t, "alex@campus.edu", "")

	// Anonymous logout succeeds silently.
	require.NoError(t, fixture.service.Logout(ctx, nil))

	claims := result.Session.Claims()
	require.NoError(t, fixture.service.Logout(ctx, claims))
	assert.Equal(t, 0, fixture.sessions.len())

	// Repeating the logout is still a success.
	require.NoError(t, fixture.service.Logout(ctx, claims))
}

/*
TestCurrentSession verifies session reads including lazy expiry cleanup.
*/
func TestCurrentSession(t *testing.T) {
	ctx := context.Background()
	fixture := newServiceFixture(t)
	result := fixture.signup(t, "alex@campus.edu", "")

	t.Run("live_session", func(t *testing.T) {
		session, err := fixture.service.CurrentSession(ctx, result.Session.Claims())
		require.NoError(t, err)
		assert.Equal(t, result.Session.ID, session.ID)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := fixture.service.CurrentSession(ctx, nil)
		require.Error(t, err)
		assert.Equal(t, "No active session", err.Error())
	})

	t.Run("expired_is_deleted", func(t *testing.T) {
		stale, err := fixture.sessions.Get(ctx, result.Session.ID)
		require.NoError(t, err)
		stale.ExpiresAt = time.Now().Add(-time.Second)
		require.NoError(t, fixture.sessions.Save(ctx, stale))

		_, err = fixture.service.CurrentSession(ctx, result.Session.Claims())
		require.Error(t, err)
		assert.Equal(t, "No active session", err.Error())
		assert.Equal(t, 0, fixture.sessions.len())
	})
}

/*
TestStatsHooks verifies the safety bookkeeping: silent no-ops for anonymous
callers, persisted counters and refreshed snapshots for members.
*/
func TestStatsHooks(t *testing.T) {
	ctx := context.Background()
	fixture := newServiceFixture(t)
	result := fixture.signup(t, "alex@campus.edu", "")
	claims := result.Session.Claims()

	t.Run("anonymous_noop", func(t *testing.T) {
		fixture.service.RecordSOSActivation(ctx, nil)
		fixture.service.RecordAlertSent(ctx, nil)
		fixture.service.RecordResponseTime(ctx, nil, time.Minute)

		stored, err := fixture.identities.FindByID(ctx, claims.UserID)
		require.NoError(t, err)
		assert.Zero(t, stored.Stats.SOSActivations)
		assert.Zero(t, stored.Stats.AlertsSent)
	})

	t.Run("counters_persist_and_refresh_session", func(t *testing.T) {
		fixture.service.RecordSOSActivation(ctx, claims)
		fixture.service.RecordAlertSent(ctx, claims)
		fixture.service.RecordAlertSent(ctx, claims)

		stored, err := fixture.identities.FindByID(ctx, claims.UserID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Stats.SOSActivations)
		assert.Equal(t, 2, stored.Stats.AlertsSent)

		session, err := fixture.service.CurrentSession(ctx, claims)
		require.NoError(t, err)
		assert.Equal(t, 1, session.User.Stats.SOSActivations)
		assert.Equal(t, 2, session.User.Stats.AlertsSent)
	})

	t.Run("response_time_running_average", func(t *testing.T) {
		fixture.service.RecordResponseTime(ctx, claims, 2*time.Minute)
		fixture.service.RecordResponseTime(ctx, claims, 4*time.Minute)

		stored, err := fixture.identities.FindByID(ctx, claims.UserID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Stats.ResponseSamples)
		assert.InDelta(t, float64((3 * time.Minute).Milliseconds()), stored.Stats.AvgResponseMs, 0.001)
	})

	t.Run("storage_failure_is_swallowed", func(t *testing.T) {
		fixture.identities.failUpdate = true
		defer func() { fixture.identities.failUpdate = false }()

		// Must not panic or surface an error to the safety flow.
		fixture.service.RecordSOSActivation(ctx, claims)
	})
}
