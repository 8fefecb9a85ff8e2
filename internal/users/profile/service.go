// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package profile implements member profile and emergency contact management.

Every mutation follows the same shape: load the identity, apply the change,
persist it, then refresh the session snapshot so the signed-in view matches
storage immediately.
*/
package profile

import (
	"context"
	"strings"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/ctxutil"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/internal/users/auth"
	"github.com/Sachin2501/safecampus/pkg/uuid"
)

// Service implements profile use cases on top of the auth domain's storage.
type Service struct {
	identities auth.IdentityRepository
	sessions   *auth.SessionManager
}

// NewService constructs a new [Service] with its dependencies.
func NewService(identities auth.IdentityRepository, sessions *auth.SessionManager) *Service {
	return &Service{identities: identities, sessions: sessions}
}

// # Profile Updates

// UpdateInput holds the editable profile fields.
type UpdateInput struct {
	Name  string
	Phone string
}

/*
UpdateProfile replaces the member's name and phone.

Description: Both fields are required. Email and credentials are immutable
through this path. After persisting, the session snapshot is refreshed; a
failed refresh does not roll back the update (the snapshot heals on the next
successful write).

Parameters:
  - ctx: context.Context
  - claims: *sec.SessionClaims
  - input: UpdateInput

Returns:
  - *auth.Identity: The updated, redacted identity
  - error: apperr.Unauthorized, apperr.ValidationError, or storage failures
*/
func (service *Service) UpdateProfile(ctx context.Context, claims *sec.SessionClaims, input UpdateInput) (*auth.Identity, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("No active session")
	}

	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, apperr.ValidationError("Name and phone are required")
	}

	identity, err := service.identities.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	identity.Name = name
	identity.Phone = phone

	if err := service.identities.Update(ctx, identity); err != nil {
		return nil, err
	}

	service.refreshSession(ctx, claims, identity)

	redacted := identity.Redacted()
	return &redacted, nil
}

// # Emergency Contacts

// ContactInput holds the fields for a new emergency contact.
type ContactInput struct {
	Name         string
	Phone        string
	Relationship string
}

/*
AddContact appends an emergency contact to the member's list.

Description: All three fields are required. Contact IDs are time-sortable so
the JSONB array keeps insertion order even if re-sorted by ID.

Parameters:
  - ctx: context.Context
  - claims: *sec.SessionClaims
  - input: ContactInput

Returns:
  - *auth.EmergencyContact: The stored contact with its assigned ID
  - error: apperr.Unauthorized, apperr.ValidationError, or storage failures
*/
func (service *Service) AddContact(ctx context.Context, claims *sec.SessionClaims, input ContactInput) (*auth.EmergencyContact, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("No active session")
	}

	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	relationship := strings.TrimSpace(input.Relationship)
	if name == "" || phone == "" || relationship == "" {
		return nil, apperr.ValidationError("Name, phone, and relationship are required")
	}

	identity, err := service.identities.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	contact := auth.EmergencyContact{
		ID:           uuid.New(),
		Name:         name,
		Phone:        phone,
		Relationship: relationship,
	}
	identity.EmergencyContacts = append(identity.EmergencyContacts, contact)

	if err := service.identities.Update(ctx, identity); err != nil {
		return nil, err
	}

	service.refreshSession(ctx, claims, identity)

	return &contact, nil
}

/*
RemoveContact removes the first contact matching the given ID or name.

Description: Removal is idempotent. Asking to remove a contact that does not
exist is a success, matching the forgiving semantics of the rest of the
session lifecycle (logout, expiry cleanup).

Parameters:
  - ctx: context.Context
  - claims: *sec.SessionClaims
  - idOrName: string

Returns:
  - error: apperr.Unauthorized or storage failures
*/
func (service *Service) RemoveContact(ctx context.Context, claims *sec.SessionClaims, idOrName string) error {
	if claims == nil {
		return apperr.Unauthorized("No active session")
	}

	identity, err := service.identities.FindByID(ctx, claims.UserID)
	if err != nil {
		return err
	}

	kept := identity.EmergencyContacts[:0]
	removed := false
	for _, contact := range identity.EmergencyContacts {
		if !removed && (contact.ID == idOrName || contact.Name == idOrName) {
			removed = true
			continue
		}
		kept = append(kept, contact)
	}

	// Nothing matched: the desired end state already holds.
	if !removed {
		return nil
	}

	identity.EmergencyContacts = kept

	if err := service.identities.Update(ctx, identity); err != nil {
		return err
	}

	service.refreshSession(ctx, claims, identity)

	return nil
}

// refreshSession pushes the updated identity into the session snapshot.
// Failures are logged, never returned: the persisted identity is already
// authoritative and the snapshot converges on the next successful save.
func (service *Service) refreshSession(ctx context.Context, claims *sec.SessionClaims, identity *auth.Identity) {
	if _, err := service.sessions.Refresh(ctx, claims.SessionID, identity); err != nil {
		ctxutil.GetLogger(ctx).Warn("profile_session_refresh_failed",
			"user_id", claims.UserID,
			"error", err,
		)
	}
}
