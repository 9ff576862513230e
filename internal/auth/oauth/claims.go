package oauth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity carries display-only user claims peeked from an ID token.
type Identity struct {
	// Email is the user's email address, when the provider includes one.
	Email string
	// Subject is the provider's stable subject identifier.
	Subject string
}

// PeekIdentity extracts email and subject claims from an ID token without
// verifying its signature. The result is for display and log labelling only
// and must never gate authorization decisions. Returns nil when the token is
// absent or not a parseable JWT.
func PeekIdentity(idToken string) *Identity {
	trimmed := strings.TrimSpace(idToken)
	if trimmed == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(trimmed, claims); err != nil {
		return nil
	}

	identity := &Identity{}
	if email, ok := claims["email"].(string); ok {
		identity.Email = strings.TrimSpace(email)
	}
	if sub, ok := claims["sub"].(string); ok {
		identity.Subject = strings.TrimSpace(sub)
	}
	if identity.Email == "" && identity.Subject == "" {
		return nil
	}
	return identity
}
