// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth

import "time"

// # Session Lifetimes

const (
	// SessionTTL is the standard session lifetime.
	SessionTTL = 2 * time.Hour

	// RememberMeTTL is the extended lifetime for "remember me" logins.
	// Signup never uses it; new accounts always start with [SessionTTL].
	RememberMeTTL = 30 * 24 * time.Hour
)

// # Input Limits

const (
	MinPasswordLength = 8
	MaxNameLength     = 100
	MaxPhoneLength    = 30
)

// # JSON Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPassword = "password"
	FieldRole     = "role"
)
