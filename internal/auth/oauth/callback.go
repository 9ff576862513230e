package oauth

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseCallback extracts the authorization code from a redirect callback URL.
// The callback must use expectedScheme (the scheme of the configured redirect
// URI, compared case-insensitively). Any callback without a usable code fails
// with KindCodeParsingFailed, including callbacks where the provider reported
// an error instead of a code; the provider's error text is folded into the
// message so the recorded failure stays informative.
func ParseCallback(rawURL, expectedScheme string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", NewFlowError(KindCodeParsingFailed, "callback URL is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", WrapFlowError(KindCodeParsingFailed, "callback URL does not parse", err)
	}

	if !strings.EqualFold(parsed.Scheme, expectedScheme) {
		return "", NewFlowError(KindCodeParsingFailed,
			fmt.Sprintf("callback scheme %q does not match redirect scheme %q", parsed.Scheme, expectedScheme))
	}

	query := parsed.Query()
	code := strings.TrimSpace(query.Get("code"))
	if code != "" {
		return code, nil
	}

	if provErr := strings.TrimSpace(query.Get("error")); provErr != "" {
		msg := fmt.Sprintf("callback carried no authorization code, provider reported %q", provErr)
		if desc := strings.TrimSpace(query.Get("error_description")); desc != "" {
			msg = fmt.Sprintf("%s: %s", msg, desc)
		}
		return "", NewFlowError(KindCodeParsingFailed, msg)
	}

	return "", NewFlowError(KindCodeParsingFailed, "callback carried no authorization code")
}
