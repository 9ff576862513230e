package oauth

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildAuthorizationURL assembles the authorization request URL for a PKCE
// attempt. Every parameter value is percent-encoded individually via
// url.Values. It fails with KindInvalidURLComponents when the configured
// endpoint does not parse into an absolute URL, before any network or
// browser interaction happens.
func BuildAuthorizationURL(req *Request, codeChallenge string) (string, error) {
	if req == nil {
		return "", NewFlowError(KindInvalidURLComponents, "authorization request parameters are required")
	}

	endpoint, err := joinEndpoint(req.BaseURL, req.AuthorizePath)
	if err != nil {
		return "", WrapFlowError(KindInvalidURLComponents, "cannot construct authorization URL", err)
	}

	params := url.Values{
		"client_id":             {req.ClientID},
		"response_type":         {responseTypeCode},
		"redirect_uri":          {req.RedirectURI},
		"scope":                 {req.Scope},
		"code_challenge":        {codeChallenge},
		"code_challenge_method": {challengeMethodS256},
	}

	return fmt.Sprintf("%s?%s", endpoint, params.Encode()), nil
}

// joinEndpoint combines the provider origin with an endpoint path and
// validates the result is an absolute http(s) URL.
func joinEndpoint(baseURL, path string) (string, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return "", fmt.Errorf("base URL is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("base URL %q must use http or https", baseURL)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("base URL %q has no host", baseURL)
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	parsed.RawQuery = ""
	parsed.Fragment = ""

	return parsed.String(), nil
}
