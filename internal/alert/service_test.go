// Copyright (c) 2026 SafeCampus. All rights reserved.

package alert_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sachin2501/safecampus/internal/alert"
	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/pkg/pagination"
)

// memStore is an in-memory alert.Store.
type memStore struct {
	mu     sync.Mutex
	alerts []alert.Alert
}

func (store *memStore) Insert(_ context.Context, item *alert.Alert) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.alerts = append(store.alerts, *item)
	return nil
}

func (store *memStore) List(_ context.Context, limit, offset int) ([]alert.Alert, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	sorted := make([]alert.Alert, len(store.alerts))
	copy(sorted, store.alerts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if offset >= len(sorted) {
		return nil, len(sorted), nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], len(store.alerts), nil
}

// memBanner is an in-memory alert.BannerStore.
type memBanner struct {
	mu          sync.Mutex
	active      *alert.Alert
	failPublish bool
}

func (banner *memBanner) Publish(_ context.Context, item *alert.Alert) error {
	banner.mu.Lock()
	defer banner.mu.Unlock()
	if banner.failPublish {
		return errors.New("redis offline")
	}
	clone := *item
	banner.active = &clone
	return nil
}

func (banner *memBanner) Active(_ context.Context) (*alert.Alert, error) {
	banner.mu.Lock()
	defer banner.mu.Unlock()
	if banner.active == nil {
		return nil, apperr.NotFound("Active alert")
	}
	clone := *banner.active
	return &clone, nil
}

func (banner *memBanner) Clear(_ context.Context) error {
	banner.mu.Lock()
	defer banner.mu.Unlock()
	banner.active = nil
	return nil
}

// recorderSpy counts stats hook invocations.
type recorderSpy struct {
	alertsSent int
}

func (spy *recorderSpy) RecordAlertSent(_ context.Context, claims *sec.SessionClaims) {
	if claims != nil {
		spy.alertsSent++
	}
}

// fixedCounter returns a constant roster size.
type fixedCounter int

func (c fixedCounter) Count(context.Context) (int, error) { return int(c), nil }

func responderClaims() *sec.SessionClaims {
	return &sec.SessionClaims{
		SessionID: "sess-1",
		UserID:    "user-1",
		Name:      "Officer Reed",
		Role:      sec.RoleSecurity,
	}
}

/*
TestBroadcast verifies the happy path: persisted history, raised banner,
credited stats, recipient count.
*/
func TestBroadcast(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	banner := &memBanner{}
	spy := &recorderSpy{}
	service := alert.NewService(store, banner, spy, fixedCounter(1250))

	receipt, err := service.Broadcast(ctx, responderClaims(), alert.BroadcastInput{
		Type:    alert.TypeEmergency,
		Title:   "Shelter in place",
		Message: "Severe weather approaching campus.",
	})
	require.NoError(t, err)

	assert.Contains(t, receipt.Alert.ID, "ALT-")
	assert.Equal(t, alert.TypeEmergency, receipt.Alert.Type)
	assert.Equal(t, "Officer Reed", receipt.Alert.AuthorName)
	assert.Equal(t, 1250, receipt.Recipients)
	assert.Equal(t, 1, spy.alertsSent)

	active, err := service.ActiveBanner(ctx)
	require.NoError(t, err)
	assert.Equal(t, receipt.Alert.ID, active.ID)
}

/*
TestBroadcast_Gating verifies the membership rule and validation.
*/
func TestBroadcast_Gating(t *testing.T) {
	ctx := context.Background()
	service := alert.NewService(&memStore{}, &memBanner{}, &recorderSpy{}, fixedCounter(10))

	t.Run("anonymous", func(t *testing.T) {
		_, err := service.Broadcast(ctx, nil, alert.BroadcastInput{Title: "t", Message: "m"})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("admin_cannot_broadcast", func(t *testing.T) {
		claims := responderClaims()
		claims.Role = sec.RoleAdmin
		_, err := service.Broadcast(ctx, claims, alert.BroadcastInput{Title: "t", Message: "m"})
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("student_cannot_broadcast", func(t *testing.T) {
		claims := responderClaims()
		claims.Role = sec.RoleStudent
		_, err := service.Broadcast(ctx, claims, alert.BroadcastInput{Title: "t", Message: "m"})
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("staff_can_broadcast", func(t *testing.T) {
		claims := responderClaims()
		claims.Role = sec.RoleStaff
		_, err := service.Broadcast(ctx, claims, alert.BroadcastInput{Title: "t", Message: "m"})
		assert.NoError(t, err)
	})

	t.Run("empty_title", func(t *testing.T) {
		_, err := service.Broadcast(ctx, responderClaims(), alert.BroadcastInput{Title: "  ", Message: "m"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestBroadcast_BannerFailureIsNotFatal verifies that a failed banner publish
does not fail the broadcast itself.
*/
func TestBroadcast_BannerFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	banner := &memBanner{failPublish: true}
	service := alert.NewService(store, banner, &recorderSpy{}, fixedCounter(10))

	receipt, err := service.Broadcast(ctx, responderClaims(), alert.BroadcastInput{
		Title:   "Gas leak",
		Message: "Avoid the science building.",
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)

	// History still has the alert even though the banner is down.
	alerts, _, err := service.History(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

/*
TestHistoryAndBanner verifies pagination metadata and the banner lifecycle.
*/
func TestHistoryAndBanner(t *testing.T) {
	ctx := context.Background()
	service := alert.NewService(&memStore{}, &memBanner{}, &recorderSpy{}, fixedCounter(10))

	for i := 0; i < 3; i++ {
		_, err := service.Broadcast(ctx, responderClaims(), alert.BroadcastInput{
			Title:   "Drill",
			Message: "Scheduled fire drill.",
		})
		require.NoError(t, err)
	}

	alerts, meta, err := service.History(ctx, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	// Banner lifecycle: up after broadcast, gone after close, idempotent.
	_, err = service.ActiveBanner(ctx)
	require.NoError(t, err)

	require.NoError(t, service.CloseBanner(ctx))
	_, err = service.ActiveBanner(ctx)
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, service.CloseBanner(ctx))
}
