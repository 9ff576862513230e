package redirect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/authpilot/authpilot/internal/misc"
)

// Prompt collects the callback URL by asking the operator to paste it. It is
// the handler for fully manual flows where no local server can listen, for
// example custom-scheme redirect URIs or remote shells without port
// forwarding.
type Prompt struct {
	redirectURI string
	input       PromptFunc
}

// NewPrompt builds a manual-paste handler for the given redirect URI.
func NewPrompt(redirectURI string, input PromptFunc) *Prompt {
	return &Prompt{redirectURI: redirectURI, input: input}
}

// Authenticate prints the authorization URL and reads the pasted callback.
// Closed or empty input counts as the user abandoning the attempt.
func (p *Prompt) Authenticate(ctx context.Context, authURL, expectedScheme string) (string, error) {
	fmt.Printf("Visit the following URL to continue authentication:\n%s\n", authURL)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	input, err := p.input("Paste the callback URL: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrUserCancelled
		}
		return "", err
	}
	if strings.TrimSpace(input) == "" {
		return "", ErrUserCancelled
	}

	raw, err := misc.ParseOAuthCallback(input, p.redirectURI)
	if err != nil {
		return "", err
	}
	return raw, nil
}
