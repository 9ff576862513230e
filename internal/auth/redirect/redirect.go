// Package redirect drives the user-facing half of the authorization code
// flow: sending the user to the provider's consent page and collecting the
// callback URL the provider redirects back to.
package redirect

import (
	"context"
	"errors"
)

// ErrUserCancelled reports that the user abandoned the authorization step.
var ErrUserCancelled = errors.New("authentication cancelled by user")

// Handler obtains the provider callback for a single authorization attempt.
// The returned string is the raw callback URL; extraction and validation of
// the authorization code happen downstream. Implementations produce exactly
// one outcome per call and do not retry.
type Handler interface {
	Authenticate(ctx context.Context, authURL, expectedScheme string) (string, error)
}

// PromptFunc reads one line of operator input after printing the given
// prompt. It returns io.EOF when input has been closed.
type PromptFunc func(prompt string) (string, error)
