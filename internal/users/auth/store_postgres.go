// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sachin2501/safecampus/internal/platform/dberr"
)

// PostgresIdentityRepository implements [IdentityRepository] using PostgreSQL.
type PostgresIdentityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository creates a new Postgres-backed [IdentityRepository].
func NewIdentityRepository(pool *pgxpool.Pool) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{pool: pool}
}

// identityColumns is the canonical SELECT column list for scanning an Identity.
const identityColumns = `
	id, name, email, phone, credential_hash, role, member_since,
	emergency_contacts, sos_activations, alerts_sent, avg_response_ms, response_samples`

/*
FindByEmail looks up an identity by exact, case-sensitive email match.

Description: Case sensitivity is intentional. Accounts are keyed by the email
exactly as entered at signup.

Parameters:
  - ctx: context.Context
  - email: string

Returns:
  - *Identity: Full entity including credential hash
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresIdentityRepository) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM users.account WHERE email = $1`

	identity, err := repository.scanOne(ctx, query, email)
	if err != nil {
		return nil, dberr.Translate(err, "Account")
	}

	return identity, nil
}

/*
FindByID looks up an identity by its primary key.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *Identity: Full entity
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresIdentityRepository) FindByID(ctx context.Context, id string) (*Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM users.account WHERE id = $1`

	identity, err := repository.scanOne(ctx, query, id)
	if err != nil {
		return nil, dberr.Translate(err, "Account")
	}

	return identity, nil
}

/*
Insert persists a brand new identity.

Description: The unique constraint on email surfaces as apperr.Conflict via
the dberr translation layer.

Parameters:
  - ctx: context.Context
  - identity: *Identity

Returns:
  - error: apperr.Conflict or storage failures
*/
func (repository *PostgresIdentityRepository) Insert(ctx context.Context, identity *Identity) error {
	query := `
		INSERT INTO users.account (
			id, name, email, phone, credential_hash, role, member_since,
			emergency_contacts, sos_activations, alerts_sent, avg_response_ms, response_samples
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := repository.pool.Exec(ctx, query,
		identity.ID,
		identity.Name,
		identity.Email,
		identity.Phone,
		identity.CredentialHash,
		identity.Role,
		identity.MemberSince,
		identity.EmergencyContacts,
		identity.Stats.SOSActivations,
		identity.Stats.AlertsSent,
		identity.Stats.AvgResponseMs,
		identity.Stats.ResponseSamples,
	)

	return dberr.Translate(err, "Account")
}

/*
Update persists profile, contact, and stats changes.

Description: credential_hash is deliberately absent from the column list.
Profile edits can never alter a member's password.

Parameters:
  - ctx: context.Context
  - identity: *Identity

Returns:
  - error: apperr.NotFound (unknown ID) or storage failures
*/
func (repository *PostgresIdentityRepository) Update(ctx context.Context, identity *Identity) error {
	query := `
		UPDATE users.account
		SET name = $2, email = $3, phone = $4, emergency_contacts = $5,
		    sos_activations = $6, alerts_sent = $7, avg_response_ms = $8, response_samples = $9
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query,
		identity.ID,
		identity.Name,
		identity.Email,
		identity.Phone,
		identity.EmergencyContacts,
		identity.Stats.SOSActivations,
		identity.Stats.AlertsSent,
		identity.Stats.AvgResponseMs,
		identity.Stats.ResponseSamples,
	)
	if err != nil {
		return dberr.Translate(err, "Account")
	}

	if tag.RowsAffected() == 0 {
		return dberr.Translate(pgx.ErrNoRows, "Account")
	}

	return nil
}

/*
Count returns the total number of registered identities.

Parameters:
  - ctx: context.Context

Returns:
  - int: Total accounts
  - error: Storage failures
*/
func (repository *PostgresIdentityRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := repository.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users.account`).Scan(&total)
	if err != nil {
		return 0, dberr.Translate(err, "Account")
	}
	return total, nil
}

// scanOne executes a single-row identity query and scans the result.
func (repository *PostgresIdentityRepository) scanOne(ctx context.Context, query string, args ...any) (*Identity, error) {
	identity := &Identity{}

	err := repository.pool.QueryRow(ctx, query, args...).Scan(
		&identity.ID,
		&identity.Name,
		&identity.Email,
		&identity.Phone,
		&identity.CredentialHash,
		&identity.Role,
		&identity.MemberSince,
		&identity.EmergencyContacts,
		&identity.Stats.SOSActivations,
		&identity.Stats.AlertsSent,
		&identity.Stats.AvgResponseMs,
		&identity.Stats.ResponseSamples,
	)
	if err != nil {
		return nil, err
	}

	return identity, nil
}
