// Copyright (c) 2026 SafeCampus. All rights reserved.

package alert

import "context"

// # Storage Contracts

// Store abstracts the persistent alert history.
type Store interface {
	// Insert persists a broadcast alert.
	Insert(ctx context.Context, alert *Alert) error

	// List returns alerts newest-first plus the total count.
	List(ctx context.Context, limit, offset int) ([]Alert, int, error)
}

// BannerStore abstracts the volatile campus-wide active alert banner.
//
// At most one alert is active at a time; publishing replaces the previous one.
type BannerStore interface {
	// Publish makes the alert the active banner.
	Publish(ctx context.Context, alert *Alert) error

	// Active returns the current banner, or apperr.NotFound when none is set.
	Active(ctx context.Context) (*Alert, error)

	// Clear removes the banner. Clearing an absent banner succeeds.
	Clear(ctx context.Context) error
}
