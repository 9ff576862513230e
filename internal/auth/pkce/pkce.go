// Package pkce implements OAuth2 PKCE (Proof Key for Code Exchange) code
// generation as specified in RFC 7636. A fresh verifier/challenge pair is
// generated for every authorization attempt and correlates the authorization
// request with the token request.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// codeVerifierBytes is the number of random bytes backing a code verifier.
// 32 bytes encode to 43 base64url characters, the minimum verifier length
// RFC 7636 permits.
const codeVerifierBytes = 32

// Codes holds the verification codes for a single PKCE authorization attempt.
type Codes struct {
	// CodeVerifier is the cryptographically random string used to correlate
	// the authorization request to the token request.
	CodeVerifier string `json:"code_verifier"`
	// CodeChallenge is the SHA256 hash of the code verifier, base64url-encoded.
	CodeChallenge string `json:"code_challenge"`
}

// Generate creates a new pair of PKCE codes: a cryptographically random code
// verifier and its corresponding S256 code challenge.
func Generate() (*Codes, error) {
	codeVerifier, err := generateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}

	return &Codes{
		CodeVerifier:  codeVerifier,
		CodeChallenge: DeriveChallenge(codeVerifier),
	}, nil
}

// DeriveChallenge computes the S256 code challenge for a verifier: the SHA256
// hash of the verifier's UTF-8 bytes, base64url-encoded without padding.
// It is deterministic and safe to call repeatedly.
func DeriveChallenge(codeVerifier string) string {
	hash := sha256.Sum256([]byte(codeVerifier))
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(hash[:])
}

// generateCodeVerifier creates a cryptographically random string
// using URL-safe base64 encoding without padding.
func generateCodeVerifier() (string, error) {
	bytes := make([]byte, codeVerifierBytes)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(bytes), nil
}
