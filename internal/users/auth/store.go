// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth

import "context"

// # Storage Contracts

// IdentityRepository abstracts persistent storage of campus identities.
//
// Implementations translate storage-specific failures into [apperr.AppError]
// values so the service layer stays driver-agnostic.
type IdentityRepository interface {
	// FindByEmail looks up an identity by exact email match.
	//
	// # Returns
	//   - The identity (including credential hash) for credential checks.
	//   - apperr.NotFound if no account uses the email.
	FindByEmail(ctx context.Context, email string) (*Identity, error)

	// FindByID looks up an identity by its primary key.
	FindByID(ctx context.Context, id string) (*Identity, error)

	// Insert persists a brand new identity.
	//
	// # Returns
	//   - apperr.Conflict if the email is already registered.
	Insert(ctx context.Context, identity *Identity) error

	// Update persists profile, contact, and stats changes.
	//
	// The credential hash column is deliberately NOT part of the update;
	// profile edits can never alter a member's password.
	Update(ctx context.Context, identity *Identity) error

	// Count returns the total number of registered identities. Used to
	// report broadcast recipient counts.
	Count(ctx context.Context) (int, error)
}

// SessionStore abstracts storage of active session snapshots.
type SessionStore interface {
	// Save writes the session snapshot, overwriting any previous state.
	//
	// # Invariant
	//
	// The snapshot must be redacted; implementations reject sessions whose
	// identity still carries a credential hash.
	Save(ctx context.Context, session *Session) error

	// Get loads a session snapshot by ID.
	//
	// # Returns
	//   - apperr.NotFound if the session does not exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session snapshot. Deleting a missing session is
	// not an error (logout is idempotent).
	Delete(ctx context.Context, id string) error
}
