// Package oauth implements the wire-level operations of the OAuth2
// authorization code flow with PKCE: building the authorization request URL,
// extracting the authorization code from the redirect callback, and
// exchanging the code for an access token. All failures are classified
// FlowErrors; nothing in this package retries.
package oauth

// Request carries the provider and client parameters for one authorization
// attempt. The zero value is not usable; callers populate it from
// configuration and the secret store.
type Request struct {
	// BaseURL is the provider origin, e.g. "https://id.example.com".
	BaseURL string
	// AuthorizePath is the authorization endpoint path on BaseURL.
	AuthorizePath string
	// TokenPath is the token endpoint path on BaseURL.
	TokenPath string
	// ClientID identifies the OAuth client. May be empty; the provider will
	// reject the request, the flow itself does not.
	ClientID string
	// RedirectURI is where the provider sends the user back. Either a
	// loopback http URL or a custom scheme registered with the OS.
	RedirectURI string
	// Scope is the space-separated scope string, typically "openid".
	Scope string
}

// TokenResponse represents a successful response from the token endpoint.
type TokenResponse struct {
	// AccessToken is the OAuth2 access token for API access.
	AccessToken string `json:"access_token"`
	// TokenType is the token type, usually "Bearer".
	TokenType string `json:"token_type,omitempty"`
	// ExpiresIn is the token lifetime in seconds, when the provider reports one.
	ExpiresIn int `json:"expires_in,omitempty"`
	// IDToken is the JWT ID token containing user claims (optional).
	IDToken string `json:"id_token,omitempty"`
	// Scope is the granted scope, when the provider reports one.
	Scope string `json:"scope,omitempty"`
}

const (
	// responseTypeCode is the response_type for the authorization code grant.
	responseTypeCode = "code"
	// challengeMethodS256 is the only challenge method this client sends.
	challengeMethodS256 = "S256"
	// grantAuthorizationCode is the grant_type for the token exchange.
	grantAuthorizationCode = "authorization_code"
)
