package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/authpilot/authpilot/internal/util"
	log "github.com/sirupsen/logrus"
)

// ExchangeCode redeems an authorization code at the token endpoint using the
// PKCE code verifier. The request is sent exactly once; the outcome is
// classified and never retried:
//
//   - transport failures and timeouts are KindNetworkError
//   - a response naming an error_description is KindTokenExchangeFailed
//   - a response carrying an access_token succeeds
//   - anything else is KindUnknown
func ExchangeCode(ctx context.Context, httpClient *http.Client, req *Request, code, codeVerifier string) (*TokenResponse, error) {
	if req == nil {
		return nil, NewFlowError(KindInvalidURLComponents, "token request parameters are required")
	}

	endpoint, err := joinEndpoint(req.BaseURL, req.TokenPath)
	if err != nil {
		return nil, WrapFlowError(KindInvalidURLComponents, "cannot construct token URL", err)
	}

	data := url.Values{
		"grant_type":    {grantAuthorizationCode},
		"client_id":     {req.ClientID},
		"code":          {code},
		"redirect_uri":  {req.RedirectURI},
		"code_verifier": {codeVerifier},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, WrapFlowError(KindNetworkError, "failed to create token request", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, WrapFlowError(KindNetworkError, "token exchange timed out", err)
		}
		return nil, WrapFlowError(KindNetworkError, "token exchange request failed", err)
	}
	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			log.Errorf("token exchange: failed to close response body: %v", errClose)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapFlowError(KindNetworkError, "failed to read token response", err)
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("token endpoint responded with status %d: %s", resp.StatusCode, util.RedactSensitiveJSON(body))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if desc := errorDescription(body); desc != "" {
			return nil, NewFlowError(KindTokenExchangeFailed, desc)
		}
		return nil, NewFlowError(KindNetworkError, fmt.Sprintf("token endpoint returned status %d", resp.StatusCode))
	}

	if !gjson.ValidBytes(body) {
		return nil, NewFlowError(KindUnknown, "token endpoint returned an unrecognized response")
	}
	if token := gjson.GetBytes(body, "access_token"); token.Type == gjson.String && token.Str != "" {
		var tokenResp TokenResponse
		if errUnmarshal := json.Unmarshal(body, &tokenResp); errUnmarshal != nil {
			return nil, WrapFlowError(KindUnknown, "failed to parse token response", errUnmarshal)
		}
		return &tokenResp, nil
	}
	if desc := errorDescription(body); desc != "" {
		return nil, NewFlowError(KindTokenExchangeFailed, desc)
	}

	return nil, NewFlowError(KindUnknown, "token endpoint returned an unrecognized response")
}

// errorDescription pulls a provider failure message out of a token response
// body, preferring error_description over the bare error code.
func errorDescription(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	if desc := gjson.GetBytes(body, "error_description"); desc.Type == gjson.String && strings.TrimSpace(desc.Str) != "" {
		return strings.TrimSpace(desc.Str)
	}
	return ""
}
