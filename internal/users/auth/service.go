// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package auth implements the campus identity and session system.

It handles account enrollment, credential verification, and the full session
lifecycle (lazy expiry, snapshot refresh, idempotent logout).

Architecture:

  - Service: Orchestrates business logic (Signup, Login, safety stats hooks).
  - SessionManager: Owns session state in Redis behind signed bearer tokens.
  - Repository: Abstracted interfaces for Postgres (identities) and Redis (sessions).
  - Security: Bcrypt credential hashing and HMAC-signed session tokens.

The package ensures that identity data remains consistent and that credential
hashes never leave the storage boundary.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/ctxutil"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/pkg/uuid"
)

// Service implements identity and session use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, signup, or
// login logic must be reviewed before merge.
type Service struct {
	identities IdentityRepository
	sessions   *SessionManager
}

// NewService constructs a new [Service] with its dependencies.
func NewService(identities IdentityRepository, sessions *SessionManager) *Service {
	return &Service{identities: identities, sessions: sessions}
}

// # Enrollment Flow

// SignupInput holds the data required to enroll a new campus member.
type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     sec.Role
}

// AuthResult is a successfully established sign-in: the session plus the
// bearer token the client presents on subsequent requests.
type AuthResult struct {
	Session *Session
	Token   string
}

/*
Signup validates, hashes, and persists a brand new campus identity, then
signs the member in.

Description: New accounts always receive a standard 2 hour session. The
rememberMe option applies to logins only.

Parameters:
  - ctx: context.Context
  - input: SignupInput

Returns:
  - *AuthResult: Session and bearer token
  - error: apperr.Conflict (duplicate email) or storage failures
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {

	// Verify email uniqueness up front for a client-safe Conflict message.
	// The unique constraint still backstops concurrent signups.
	if _, err := service.identities.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost balances security
	// and CPU utilization during enrollment spikes.
	credentialHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	role := input.Role
	if role == "" {
		role = sec.RoleStudent
	}

	// Time-sortable ID to prevent PG index fragmentation.
	identity := &Identity{
		ID:                uuid.New(),
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		CredentialHash:    credentialHash,
		Role:              role,
		MemberSince:       time.Now(),
		EmergencyContacts: []EmergencyContact{},
	}

	if err := service.identities.Insert(ctx, identity); err != nil {
		return nil, err
	}

	session, token, err := service.sessions.Create(ctx, identity, false)
	if err != nil {
		return nil, fmt.Errorf("auth_service_signup_session_failed: %w", err)
	}

	return &AuthResult{Session: session, Token: token}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

/*
Login validates member credentials and establishes a session.

Description: Email lookup is exact. Unknown email and wrong password both
return the same generic message to prevent account enumeration.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *AuthResult: Session and bearer token
  - error: apperr.Unauthorized or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	identity, err := service.identities.FindByEmail(ctx, input.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	// Constant-time comparison inside bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(input.Password, identity.CredentialHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, token, err := service.sessions.Create(ctx, identity, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("auth_service_login_session_failed: %w", err)
	}

	return &AuthResult{Session: session, Token: token}, nil
}

/*
Logout destroys the member's active session.

Description: Logging out without a session is a successful no-op.

Parameters:
  - ctx: context.Context
  - claims: *sec.SessionClaims (nil for anonymous requests)

Returns:
  - error: Storage failures
*/
func (service *Service) Logout(ctx context.Context, claims *sec.SessionClaims) error {
	if claims == nil {
		return nil
	}
	return service.sessions.Destroy(ctx, claims.SessionID)
}

/*
CurrentSession returns the live session behind the given claims.

Parameters:
  - ctx: context.Context
  - claims: *sec.SessionClaims

Returns:
  - *Session: The live session snapshot
  - error: apperr.Unauthorized if the session has meanwhile expired or gone
*/
func (service *Service) CurrentSession(ctx context.Context, claims *sec.SessionClaims) (*Session, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("No active session")
	}

	session, err := service.sessions.store.Get(ctx, claims.SessionID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("No active session")
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		_ = service.sessions.store.Delete(ctx, session.ID)
		return nil, apperr.Unauthorized("No active session")
	}

	return session, nil
}

// # Safety Stats Hooks

// RecordSOSActivation increments the member's SOS counter.
//
// Silent no-op for anonymous callers: safety features must never fail just
// because nobody is signed in.
func (service *Service) RecordSOSActivation(ctx context.Context, claims *sec.SessionClaims) {
	service.recordStat(ctx, claims, "sos_activation", func(stats *Stats) {
		stats.SOSActivations++
	})
}

// RecordAlertSent increments the member's broadcast counter.
// Silent no-op for anonymous callers.
func (service *Service) RecordAlertSent(ctx context.Context, claims *sec.SessionClaims) {
	service.recordStat(ctx, claims, "alert_sent", func(stats *Stats) {
		stats.AlertsSent++
	})
}

// RecordResponseTime folds a response time into the member's running average.
// Silent no-op for anonymous callers.
func (service *Service) RecordResponseTime(ctx context.Context, claims *sec.SessionClaims, elapsed time.Duration) {
	service.recordStat(ctx, claims, "response_time", func(stats *Stats) {
		stats.RecordResponse(elapsed)
	})
}

// recordStat applies a stats mutation to the member's identity and refreshes
// the session snapshot so the change is visible on the next session read.
//
// Failures are logged, never returned: stats are best-effort bookkeeping and
// must not fail the safety operation that triggered them.
func (service *Service) recordStat(ctx context.Context, claims *sec.SessionClaims, name string, mutate func(*Stats)) {
	if claims == nil {
		return
	}

	logger := ctxutil.GetLogger(ctx)

	identity, err := service.identities.FindByID(ctx, claims.UserID)
	if err != nil {
		logger.Warn("auth_stat_lookup_failed", "stat", name, "user_id", claims.UserID, "error", err)
		return
	}

	mutate(&identity.Stats)

	if err := service.identities.Update(ctx, identity); err != nil {
		logger.Warn("auth_stat_update_failed", "stat", name, "user_id", claims.UserID, "error", err)
		return
	}

	if _, err := service.sessions.Refresh(ctx, claims.SessionID, identity); err != nil {
		logger.Warn("auth_stat_session_refresh_failed", "stat", name, "user_id", claims.UserID, "error", err)
	}
}
