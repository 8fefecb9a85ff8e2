// Copyright (c) 2026 SafeCampus. All rights reserved.

package alert

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sachin2501/safecampus/internal/platform/dberr"
)

// PostgresStore implements [Store] using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Postgres-backed alert [Store].
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
Insert persists a broadcast alert.

Parameters:
  - ctx: context.Context
  - alert: *Alert

Returns:
  - error: Storage failures
*/
func (store *PostgresStore) Insert(ctx context.Context, alert *Alert) error {
	query := `
		INSERT INTO safety.alert (id, type, title, message, author_id, author_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := store.pool.Exec(ctx, query,
		alert.ID,
		alert.Type,
		alert.Title,
		alert.Message,
		alert.AuthorID,
		alert.AuthorName,
		alert.CreatedAt,
	)

	return dberr.Translate(err, "Alert")
}

/*
List returns alerts newest-first plus the total count.

Parameters:
  - ctx: context.Context
  - limit: int
  - offset: int

Returns:
  - []Alert: Page of alerts
  - int: Total alert count
  - error: Storage failures
*/
func (store *PostgresStore) List(ctx context.Context, limit, offset int) ([]Alert, int, error) {
	var total int
	if err := store.pool.QueryRow(ctx, `SELECT COUNT(*) FROM safety.alert`).Scan(&total); err != nil {
		return nil, 0, dberr.Translate(err, "Alert")
	}

	query := `
		SELECT id, type, title, message, author_id, author_name, created_at
		FROM safety.alert
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := store.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Translate(err, "Alert")
	}
	defer rows.Close()

	alerts := make([]Alert, 0, limit)
	for rows.Next() {
		var item Alert
		err := rows.Scan(
			&item.ID,
			&item.Type,
			&item.Title,
			&item.Message,
			&item.AuthorID,
			&item.AuthorName,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Translate(err, "Alert")
		}
		alerts = append(alerts, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Translate(err, "Alert")
	}

	return alerts, total, nil
}
