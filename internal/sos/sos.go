// Copyright (c) 2026 SafeCampus. All rights reserved.

package sos

import (
	"time"

	"github.com/Sachin2501/safecampus/pkg/uuid"
)

// # Domain Entities

// Activation is a recorded SOS event.
type Activation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Accuracy  float64   `json:"accuracy"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Default campus coordinates used when the client cannot provide a location.
const (
	DefaultLat = 28.6139
	DefaultLng = 77.2090

	// DefaultLocationNote marks activations that fell back to campus center.
	DefaultLocationNote = "Default location"
)

// NewID mints an activation identifier. The EMG- prefix makes SOS events
// recognizable in logs and dispatch systems.
func NewID() string {
	return "EMG-" + uuid.New()
}
