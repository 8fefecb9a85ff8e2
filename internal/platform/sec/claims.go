// Copyright (c) 2026 SafeCampus. All rights reserved.

package sec

import "time"

// SessionClaims is the transport-safe view of an active session that the
// middleware injects into the request context.
//
// # Redaction
//
// Claims never carry the credential hash. They are derived from the redacted
// identity snapshot held by the session manager, so domain handlers can read
// who is signed in without touching storage again.
type SessionClaims struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
