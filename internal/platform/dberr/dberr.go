// Copyright (c) 2026 SafeCampus. All rights reserved.

// Package dberr translates low-level PostgreSQL driver errors into
// domain-neutral [apperr.AppError] values.
//
// Storage implementations call [Translate] on every write path so that
// constraint violations surface as 409s instead of opaque 500s.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
)

// PostgreSQL error codes. See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Translate maps a pgx error to an [apperr.AppError].
//
// Parameters:
//   - err: The raw error from a pgx query or exec call.
//   - resource: Human-readable resource name used in NOT_FOUND messages.
//
// Returns:
//   - nil if err is nil.
//   - A 404 for [pgx.ErrNoRows].
//   - A 409 for unique-constraint violations.
//   - A 500 wrapping the cause for everything else.
func Translate(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case codeForeignKeyViolation, codeCheckViolation:
			return apperr.ValidationError(resource + " violates a data constraint")
		}
	}

	return apperr.Internal(err)
}
