// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/pkg/uuid"
)

// Demo account credentials for development environments.
const (
	demoEmail    = "student@campus.edu"
	demoPassword = "password123"
)

// EnsureDemoAccount creates the development demo account if it is absent.
//
// Only called in development mode; the hash is computed at startup so no
// credential material is baked into migrations.
func EnsureDemoAccount(ctx context.Context, identities IdentityRepository, logger *slog.Logger) error {
	if _, err := identities.FindByEmail(ctx, demoEmail); err == nil {
		return nil
	} else if !apperr.IsNotFound(err) {
		return err
	}

	credentialHash, err := sec.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	identity := &Identity{
		ID:             uuid.New(),
		Name:           "Demo Student",
		Email:          demoEmail,
		Phone:          "+1-555-0100",
		CredentialHash: credentialHash,
		Role:           sec.RoleStudent,
		MemberSince:    time.Now(),
		EmergencyContacts: []EmergencyContact{
			{ID: uuid.New(), Name: "Sam Johnson", Phone: "+1-555-0101", Relationship: "parent"},
		},
	}

	if err := identities.Insert(ctx, identity); err != nil {
		// A concurrent boot may have won the race; that is fine.
		if apperr.IsConflict(err) {
			return nil
		}
		return err
	}

	logger.Info("demo_account_seeded", "email", demoEmail)
	return nil
}
