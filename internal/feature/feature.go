// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package feature derives the affordances a client may present for a session.

It is a pure decision layer: no storage, no side effects. The HTTP layer
re-derives grants from the current session on every request, and the
middleware enforces the same rules server-side, so a client that ignores the
grants still cannot act outside them.
*/
package feature

import "github.com/Sachin2501/safecampus/internal/platform/sec"

// Grant is the decision for a single affordance.
type Grant struct {
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

// Grants enumerates every client affordance.
type Grants struct {
	SOS            Grant `json:"sos"`
	BroadcastAlert Grant `json:"broadcast_alert"`
	Profile        Grant `json:"profile"`
	Directory      Grant `json:"directory"`
}

const (
	reasonSignIn       = "Sign in to use this feature"
	reasonNotResponder = "Only security and staff can send alerts"
)

// ForRole computes the grants for a role. The zero role with signedIn=false
// represents an anonymous visitor.
//
// BroadcastAlert is membership, not hierarchy: admin outranks security in the
// role order yet does not broadcast, because admins administer the system
// rather than respond to incidents.
func ForRole(role sec.Role, signedIn bool) Grants {
	grants := Grants{
		Directory: Grant{Enabled: true},
	}

	if !signedIn {
		denied := Grant{Enabled: false, Reason: reasonSignIn}
		grants.SOS = denied
		grants.BroadcastAlert = denied
		grants.Profile = denied
		return grants
	}

	grants.SOS = Grant{Enabled: true}
	grants.Profile = Grant{Enabled: true}

	if role.CanBroadcast() {
		grants.BroadcastAlert = Grant{Enabled: true}
	} else {
		grants.BroadcastAlert = Grant{Enabled: false, Reason: reasonNotResponder}
	}

	return grants
}

// ForSession computes grants from resolved session claims (nil = anonymous).
func ForSession(claims *sec.SessionClaims) Grants {
	if claims == nil {
		return ForRole("", false)
	}
	return ForRole(claims.Role, true)
}
