// Copyright (c) 2026 SafeCampus. All rights reserved.

package sos

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sachin2501/safecampus/internal/platform/dberr"
)

// PostgresStore implements [Store] using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Postgres-backed SOS [Store].
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
Insert persists an activation.

Parameters:
  - ctx: context.Context
  - activation: *Activation

Returns:
  - error: Storage failures
*/
func (store *PostgresStore) Insert(ctx context.Context, activation *Activation) error {
	query := `
		INSERT INTO safety.sos_activation (id, user_id, lat, lng, accuracy, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := store.pool.Exec(ctx, query,
		activation.ID,
		activation.UserID,
		activation.Lat,
		activation.Lng,
		activation.Accuracy,
		activation.Note,
		activation.CreatedAt,
	)

	return dberr.Translate(err, "SOS activation")
}

/*
ListByUser returns the member's activations newest-first plus their total.

Parameters:
  - ctx: context.Context
  - userID: string
  - limit: int
  - offset: int

Returns:
  - []Activation: Page of activations
  - int: The member's total activation count
  - error: Storage failures
*/
func (store *PostgresStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Activation, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM safety.sos_activation WHERE user_id = $1`
	if err := store.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Translate(err, "SOS activation")
	}

	query := `
		SELECT id, user_id, lat, lng, accuracy, note, created_at
		FROM safety.sos_activation
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := store.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Translate(err, "SOS activation")
	}
	defer rows.Close()

	activations := make([]Activation, 0, limit)
	for rows.Next() {
		var item Activation
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Lat,
			&item.Lng,
			&item.Accuracy,
			&item.Note,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Translate(err, "SOS activation")
		}
		activations = append(activations, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Translate(err, "SOS activation")
	}

	return activations, total, nil
}
