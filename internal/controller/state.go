package controller

import (
	"time"

	"github.com/authpilot/authpilot/internal/auth/oauth"
	"github.com/authpilot/authpilot/internal/auth/pkce"
)

// AuthState is the published authentication state. The controller is the
// sole writer; collaborators receive copies via State, Subscribe or History
// and can never mutate the controller's view.
//
// Authenticated is true exactly when AccessToken is non-empty.
type AuthState struct {
	// Authenticated reports whether a login flow has completed successfully.
	Authenticated bool
	// AccessToken is the bearer token from the last successful exchange. It
	// lives in process memory only and is never persisted.
	AccessToken string
	// Identity carries display-only claims peeked from the ID token, when
	// the provider issued one.
	Identity *oauth.Identity
	// LastError describes the most recent flow failure. It is cleared when a
	// new attempt starts and when one succeeds.
	LastError string
	// UpdatedAt is when this snapshot was published.
	UpdatedAt time.Time
}

// authSession holds the PKCE material for one login attempt. Exactly one
// live session exists per controller; starting a new attempt replaces it.
type authSession struct {
	id    string
	codes *pkce.Codes
}
