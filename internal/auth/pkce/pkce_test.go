package pkce

import (
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"testing"
)

func TestGenerate_VerifierLength(t *testing.T) {
	tests := []struct {
		name            string
		expectedLength  int
		expectedDecoded int
	}{
		{
			name:            "verifier should be 43 characters (32 bytes base64 encoded)",
			expectedLength:  43,
			expectedDecoded: 32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes, err := Generate()
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if len(codes.CodeVerifier) != tt.expectedLength {
				t.Errorf("CodeVerifier length = %d, want %d", len(codes.CodeVerifier), tt.expectedLength)
			}

			decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(codes.CodeVerifier)
			if err != nil {
				t.Fatalf("CodeVerifier is not valid base64url: %v", err)
			}
			if len(decoded) != tt.expectedDecoded {
				t.Errorf("decoded verifier length = %d, want %d", len(decoded), tt.expectedDecoded)
			}
		})
	}
}

func TestGenerate_Randomness(t *testing.T) {
	tests := []struct {
		name       string
		iterations int
	}{
		{
			name:       "multiple generations should produce unique verifiers",
			iterations: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[string]bool)

			for i := 0; i < tt.iterations; i++ {
				codes, err := Generate()
				if err != nil {
					t.Fatalf("Generate() iteration %d error = %v", i, err)
				}

				if seen[codes.CodeVerifier] {
					t.Errorf("Duplicate verifier detected at iteration %d", i)
				}
				seen[codes.CodeVerifier] = true
			}
		})
	}
}

func TestDeriveChallenge_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		verifier string
		want     string
	}{
		{
			name:     "simple verifier",
			verifier: "abc123",
			want:     "bKE9UspwyIPg8LsQHkJaiehiTeUdstI5JZOvaoQRgJA",
		},
		{
			name:     "rfc 7636 appendix B vector",
			verifier: "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk",
			want:     "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM",
		},
		{
			name:     "hyphenated verifier",
			verifier: "test-verifier",
			want:     "JBbiqONGWPaAmwXk_8bT6UnlPfrn65D32eZlJS-zGG0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveChallenge(tt.verifier)
			if got != tt.want {
				t.Errorf("DeriveChallenge(%q) = %q, want %q", tt.verifier, got, tt.want)
			}
		})
	}
}

func TestDeriveChallenge_Deterministic(t *testing.T) {
	tests := []struct {
		name     string
		verifier string
	}{
		{
			name:     "repeated derivation yields identical challenges",
			verifier: "some-stable-verifier-value",
		},
		{
			name:     "empty verifier is stable too",
			verifier: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := DeriveChallenge(tt.verifier)
			for i := 0; i < 10; i++ {
				if got := DeriveChallenge(tt.verifier); got != first {
					t.Fatalf("DeriveChallenge() iteration %d = %q, want %q", i, got, first)
				}
			}

			hash := sha256.Sum256([]byte(tt.verifier))
			want := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(hash[:])
			if first != want {
				t.Errorf("DeriveChallenge(%q) = %q, want SHA256-derived %q", tt.verifier, first, want)
			}
		})
	}
}

func TestGenerate_ChallengeMatchesVerifier(t *testing.T) {
	codes, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if codes.CodeChallenge != DeriveChallenge(codes.CodeVerifier) {
		t.Errorf("CodeChallenge = %q, want DeriveChallenge(verifier) = %q",
			codes.CodeChallenge, DeriveChallenge(codes.CodeVerifier))
	}
}

func TestGenerate_Base64URLAlphabet(t *testing.T) {
	codes, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if regexp.MustCompile(`[+/=]`).MatchString(codes.CodeVerifier) {
		t.Error("CodeVerifier contains non-URL-safe base64 characters or padding")
	}
	if regexp.MustCompile(`[+/=]`).MatchString(codes.CodeChallenge) {
		t.Error("CodeChallenge contains non-URL-safe base64 characters or padding")
	}

	validBase64URL := regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	if !validBase64URL.MatchString(codes.CodeVerifier) {
		t.Errorf("CodeVerifier contains invalid base64url characters: %s", codes.CodeVerifier)
	}
	if !validBase64URL.MatchString(codes.CodeChallenge) {
		t.Errorf("CodeChallenge contains invalid base64url characters: %s", codes.CodeChallenge)
	}

	// SHA256 produces 32 bytes, base64url without padding = 43 chars
	if len(codes.CodeChallenge) != 43 {
		t.Errorf("CodeChallenge length = %d, want 43", len(codes.CodeChallenge))
	}
}
