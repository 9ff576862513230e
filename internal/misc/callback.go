// Package misc holds small helpers shared across commands.
package misc

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseOAuthCallback normalizes manually pasted callback input into a full
// callback URL. It accepts either the complete URL from the browser address
// bar or just its query string. Empty input returns "" so callers can keep
// waiting for the automatic callback.
func ParseOAuthCallback(input, redirectURI string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", nil
	}

	if strings.Contains(trimmed, "://") {
		return trimmed, nil
	}

	// Bare query string, with or without a leading "?".
	trimmed = strings.TrimPrefix(trimmed, "?")
	if _, err := url.ParseQuery(trimmed); err != nil {
		return "", fmt.Errorf("failed to parse callback input: %w", err)
	}
	base := redirectURI
	if idx := strings.IndexByte(base, '?'); idx >= 0 {
		base = base[:idx]
	}
	return base + "?" + trimmed, nil
}
