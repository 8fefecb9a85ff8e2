// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package alert implements campus-wide broadcast alerts.

A broadcast persists the alert to the history, raises it as the active banner
every client polls, and credits the author's stats. Only operational
responders (security, staff) may broadcast.
*/
package alert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/ctxutil"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/pkg/pagination"
)

// # Contracts & Types

// StatsRecorder credits safety actions to the acting member's stats.
type StatsRecorder interface {
	RecordAlertSent(ctx context.Context, claims *sec.SessionClaims)
}

// RecipientCounter reports the size of the campus roster, used for the
// broadcast receipt's recipient count.
type RecipientCounter interface {
	Count(ctx context.Context) (int, error)
}

// Service implements broadcast alert use cases.
type Service struct {
	store      Store
	banner     BannerStore
	stats      StatsRecorder
	recipients RecipientCounter
}

// NewService constructs a new [Service] with its dependencies.
func NewService(store Store, banner BannerStore, stats StatsRecorder, recipients RecipientCounter) *Service {
	return &Service{store: store, banner: banner, stats: stats, recipients: recipients}
}

// # Broadcasting

// BroadcastInput holds the fields of a new alert.
type BroadcastInput struct {
	Type    Type
	Title   string
	Message string
}

// Receipt confirms a broadcast to its author.
type Receipt struct {
	Alert      Alert `json:"alert"`
	Recipients int   `json:"recipients"`
}

/*
Broadcast sends a campus-wide alert.

Description: Persists the alert, raises the banner, and credits the author.
The banner write is best-effort: history is the source of truth, and a failed
banner publish must not fail an emergency broadcast.

Parameters:
  - ctx: context.Context
  - claims: *sec.SessionClaims
  - input: BroadcastInput

Returns:
  - *Receipt: The stored alert and recipient count
  - error: apperr.Unauthorized, apperr.Forbidden, apperr.ValidationError, or storage failures
*/
func (service *Service) Broadcast(ctx context.Context, claims *sec.SessionClaims, input BroadcastInput) (*Receipt, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("No active session")
	}
	if !claims.Role.CanBroadcast() {
		return nil, apperr.Forbidden("Only security and staff can send alerts")
	}

	title := strings.TrimSpace(input.Title)
	message := strings.TrimSpace(input.Message)
	if title == "" || message == "" {
		return nil, apperr.ValidationError("Title and message are required")
	}

	alertType := input.Type
	if alertType == "" {
		alertType = TypeInfo
	}

	item := &Alert{
		ID:         NewID(),
		Type:       alertType,
		Title:      title,
		Message:    message,
		AuthorID:   claims.UserID,
		AuthorName: claims.Name,
		CreatedAt:  time.Now(),
	}

	if err := service.store.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("alert_service_insert_failed: %w", err)
	}

	if err := service.banner.Publish(ctx, item); err != nil {
		ctxutil.GetLogger(ctx).Warn("alert_banner_publish_failed", "alert_id", item.ID, "error", err)
	}

	service.stats.RecordAlertSent(ctx, claims)

	recipients, err := service.recipients.Count(ctx)
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("alert_recipient_count_failed", "error", err)
		recipients = 0
	}

	return &Receipt{Alert: *item, Recipients: recipients}, nil
}

// # History & Banner

/*
History returns broadcast alerts newest-first.

Parameters:
  - ctx: context.Context
  - params: pagination.Params

Returns:
  - []Alert: Page of alerts
  - pagination.Meta: Pagination metadata
  - error: Storage failures
*/
func (service *Service) History(ctx context.Context, params pagination.Params) ([]Alert, pagination.Meta, error) {
	alerts, total, err := service.store.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("alert_service_history_failed: %w", err)
	}

	return alerts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// ActiveBanner returns the current campus banner, or apperr.NotFound.
func (service *Service) ActiveBanner(ctx context.Context) (*Alert, error) {
	return service.banner.Active(ctx)
}

/*
CloseBanner takes down the active banner.

Description: Responder-only (enforced at the route). Closing when no banner
is up succeeds.

Parameters:
  - ctx: context.Context

Returns:
  - error: Storage failures
*/
func (service *Service) CloseBanner(ctx context.Context) error {
	return service.banner.Clear(ctx)
}
