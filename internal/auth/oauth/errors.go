package oauth

import (
	"errors"
	"fmt"
)

// Kind classifies the terminal failure modes of the authorization flow.
// Every failure surfaced by this package or the controller carries exactly
// one kind; there is no internal retry on any of them.
type Kind string

const (
	// KindInvalidURLComponents indicates the configured endpoint values could
	// not be assembled into a valid authorization URL. The flow aborts before
	// any network or browser interaction.
	KindInvalidURLComponents Kind = "invalid_url_components"

	// KindAuthenticationFailed indicates the interactive authentication step
	// failed or was dismissed by the user.
	KindAuthenticationFailed Kind = "authentication_failed"

	// KindCodeParsingFailed indicates the redirect callback did not carry a
	// usable authorization code. Provider-signalled errors on the callback
	// fall under this kind as well.
	KindCodeParsingFailed Kind = "authorization_code_parsing_failed"

	// KindNetworkError indicates the token request could not be completed at
	// the transport level, including timeouts.
	KindNetworkError Kind = "network_error"

	// KindTokenExchangeFailed indicates the provider rejected the token
	// request and said why.
	KindTokenExchangeFailed Kind = "token_exchange_failed"

	// KindUnknown covers responses and failures that fit none of the above.
	KindUnknown Kind = "unknown_error"
)

// FlowError is a classified, terminal authorization-flow error.
type FlowError struct {
	// Kind is the failure classification.
	Kind Kind
	// Message is the human-readable description recorded in the published
	// authentication state.
	Message string
	// Err is the underlying error (optional).
	Err error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *FlowError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a FlowError of the same kind, so callers can
// match with errors.Is against a bare kind template.
func (e *FlowError) Is(target error) bool {
	var fe *FlowError
	if !errors.As(target, &fe) {
		return false
	}
	return e.Kind == fe.Kind
}

// NewFlowError creates a FlowError with the given kind and message.
func NewFlowError(kind Kind, message string) *FlowError {
	return &FlowError{Kind: kind, Message: message}
}

// WrapFlowError creates a FlowError wrapping an underlying cause.
func WrapFlowError(kind Kind, message string, err error) *FlowError {
	return &FlowError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the failure kind from err. Errors that are not FlowErrors
// report KindUnknown.
func KindOf(err error) Kind {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// MessageOf extracts the recorded message from err, falling back to the plain
// error text for non-flow errors.
func MessageOf(err error) string {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// GetUserFriendlyMessage returns display text for a flow failure, suitable
// for CLI output.
func GetUserFriendlyMessage(err error) string {
	var fe *FlowError
	if !errors.As(err, &fe) {
		if err != nil {
			return fmt.Sprintf("Authentication failed: %v", err)
		}
		return "Authentication failed"
	}

	switch fe.Kind {
	case KindInvalidURLComponents:
		return fmt.Sprintf("The authorization endpoint is misconfigured: %s. Check the base-url and authorize-path settings.", fe.Message)
	case KindAuthenticationFailed:
		return fmt.Sprintf("Authentication was not completed: %s", fe.Message)
	case KindCodeParsingFailed:
		return fmt.Sprintf("The provider redirected back without a usable authorization code: %s", fe.Message)
	case KindNetworkError:
		return fmt.Sprintf("Could not reach the token endpoint: %s. Check connectivity and proxy settings.", fe.Message)
	case KindTokenExchangeFailed:
		return fmt.Sprintf("The provider rejected the token exchange: %s", fe.Message)
	default:
		return fmt.Sprintf("Authentication failed unexpectedly: %s", fe.Message)
	}
}
