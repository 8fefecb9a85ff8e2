// Copyright (c) 2026 SafeCampus. All rights reserved.

package alert

import (
	"time"

	"github.com/Sachin2501/safecampus/pkg/uuid"
)

// # Domain Entities

// Type classifies the severity of a broadcast alert.
type Type string

const (
	TypeInfo      Type = "info"
	TypeWarning   Type = "warning"
	TypeEmergency Type = "emergency"
)

// TypeNames returns the assignable alert type identifiers.
func TypeNames() []string {
	return []string{string(TypeInfo), string(TypeWarning), string(TypeEmergency)}
}

// Alert is a campus-wide broadcast message.
type Alert struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewID mints an alert identifier. The ALT- prefix makes alert IDs
// recognizable in logs and incident reports.
func NewID() string {
	return "ALT-" + uuid.New()
}
