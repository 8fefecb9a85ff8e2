// Copyright (c) 2026 SafeCampus. All rights reserved.

package sos

import "context"

// Store abstracts persistent SOS activation history.
type Store interface {
	// Insert persists an activation.
	Insert(ctx context.Context, activation *Activation) error

	// ListByUser returns the member's own activations newest-first plus
	// the member's total count.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Activation, int, error)
}
