// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth

import (
	"time"

	"github.com/Sachin2501/safecampus/internal/platform/sec"
)

// # Domain Entities

// Identity represents a campus member's account.
//
// # Security
//
// CredentialHash is excluded from JSON serialization. Any Identity that
// leaves the auth package (API responses, session snapshots) must first be
// passed through [Identity.Redacted].
type Identity struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone"`
	CredentialHash    string             `json:"-"`
	Role              sec.Role           `json:"role"`
	MemberSince       time.Time          `json:"member_since"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts"`
	Stats             Stats              `json:"stats"`
}

// EmergencyContact is a person to notify when the member triggers an SOS.
type EmergencyContact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// Stats tracks a member's participation in campus safety events.
type Stats struct {
	SOSActivations  int     `json:"sos_activations"`
	AlertsSent      int     `json:"alerts_sent"`
	AvgResponseMs   float64 `json:"avg_response_ms"`
	ResponseSamples int     `json:"response_samples"`
}

// Redacted returns a copy of the identity safe for transport and for session
// snapshots. The credential hash is cleared and the contacts slice is copied
// so callers cannot mutate the original.
func (i *Identity) Redacted() Identity {
	clone := *i
	clone.CredentialHash = ""
	clone.EmergencyContacts = make([]EmergencyContact, len(i.EmergencyContacts))
	copy(clone.EmergencyContacts, i.EmergencyContacts)
	return clone
}

// RecordResponse folds a new response time into the running average.
func (s *Stats) RecordResponse(elapsed time.Duration) {
	total := s.AvgResponseMs*float64(s.ResponseSamples) + float64(elapsed.Milliseconds())
	s.ResponseSamples++
	s.AvgResponseMs = total / float64(s.ResponseSamples)
}

// # Session

// Session is an active sign-in: a redacted identity snapshot plus expiry.
//
// # Lifecycle
//
// Expiry is evaluated lazily at read time. Snapshots are stored in Redis
// without a TTL so that an expired-but-unread session is still observable
// (and cleaned up) on its next access rather than silently vanishing.
type Session struct {
	ID         string    `json:"id"`
	User       Identity  `json:"user"`
	RememberMe bool      `json:"remember_me"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the session's deadline has passed at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Claims converts the session into the transport-safe view injected into
// request contexts by the middleware.
func (s *Session) Claims() *sec.SessionClaims {
	return &sec.SessionClaims{
		SessionID: s.ID,
		UserID:    s.User.ID,
		Name:      s.User.Name,
		Email:     s.User.Email,
		Role:      s.User.Role,
		ExpiresAt: s.ExpiresAt,
	}
}
