package oauth

import (
	"net/url"
	"strings"
	"testing"
)

func testRequest() *Request {
	return &Request{
		BaseURL:       "https://id.example.com",
		AuthorizePath: "/oauth2/authorize",
		TokenPath:     "/oauth2/token",
		ClientID:      "client-123",
		RedirectURI:   "http://localhost:8315/oauth/callback",
		Scope:         "openid",
	}
}

func TestBuildAuthorizationURL(t *testing.T) {
	req := testRequest()
	got, err := BuildAuthorizationURL(req, "challenge-value")
	if err != nil {
		t.Fatalf("BuildAuthorizationURL() error = %v", err)
	}

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("result does not parse: %v", err)
	}
	if parsed.Scheme != "https" || parsed.Host != "id.example.com" || parsed.Path != "/oauth2/authorize" {
		t.Errorf("endpoint = %s://%s%s, want https://id.example.com/oauth2/authorize", parsed.Scheme, parsed.Host, parsed.Path)
	}

	query := parsed.Query()
	want := map[string]string{
		"client_id":             "client-123",
		"response_type":         "code",
		"redirect_uri":          "http://localhost:8315/oauth/callback",
		"scope":                 "openid",
		"code_challenge":        "challenge-value",
		"code_challenge_method": "S256",
	}
	if len(query) != len(want) {
		t.Errorf("query has %d parameters, want exactly %d: %v", len(query), len(want), query)
	}
	for key, value := range want {
		if got := query.Get(key); got != value {
			t.Errorf("query[%s] = %q, want %q", key, got, value)
		}
	}
}

func TestBuildAuthorizationURL_Encoding(t *testing.T) {
	req := testRequest()
	req.Scope = "openid profile email"
	req.RedirectURI = "http://localhost:8315/oauth/callback?source=cli"

	got, err := BuildAuthorizationURL(req, "challenge")
	if err != nil {
		t.Fatalf("BuildAuthorizationURL() error = %v", err)
	}
	if strings.Contains(got, "openid profile") {
		t.Error("scope spaces were not encoded")
	}

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("result does not parse: %v", err)
	}
	if scope := parsed.Query().Get("scope"); scope != "openid profile email" {
		t.Errorf("scope round-trips to %q", scope)
	}
	if redirect := parsed.Query().Get("redirect_uri"); redirect != req.RedirectURI {
		t.Errorf("redirect_uri round-trips to %q", redirect)
	}
}

func TestBuildAuthorizationURL_JoinsPaths(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		path    string
		want    string
	}{
		{
			name:    "plain join",
			baseURL: "https://id.example.com",
			path:    "/oauth2/authorize",
			want:    "https://id.example.com/oauth2/authorize",
		},
		{
			name:    "trailing slash on base",
			baseURL: "https://id.example.com/",
			path:    "/oauth2/authorize",
			want:    "https://id.example.com/oauth2/authorize",
		},
		{
			name:    "tenant prefix preserved",
			baseURL: "https://id.example.com/tenant/",
			path:    "oauth2/authorize",
			want:    "https://id.example.com/tenant/oauth2/authorize",
		},
		{
			name:    "base query and fragment dropped",
			baseURL: "https://id.example.com?stale=1#frag",
			path:    "/oauth2/authorize",
			want:    "https://id.example.com/oauth2/authorize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			req.BaseURL = tt.baseURL
			req.AuthorizePath = tt.path

			got, err := BuildAuthorizationURL(req, "challenge")
			if err != nil {
				t.Fatalf("BuildAuthorizationURL() error = %v", err)
			}
			endpoint := strings.SplitN(got, "?", 2)[0]
			if endpoint != tt.want {
				t.Errorf("endpoint = %q, want %q", endpoint, tt.want)
			}
		})
	}
}

func TestBuildAuthorizationURL_InvalidComponents(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request) *Request
		wantErr bool
	}{
		{
			name:   "nil request",
			mutate: func(*Request) *Request { return nil },
		},
		{
			name:   "empty base URL",
			mutate: func(r *Request) *Request { r.BaseURL = ""; return r },
		},
		{
			name:   "whitespace base URL",
			mutate: func(r *Request) *Request { r.BaseURL = "   "; return r },
		},
		{
			name:   "unparseable base URL",
			mutate: func(r *Request) *Request { r.BaseURL = "://id.example.com"; return r },
		},
		{
			name:   "unsupported scheme",
			mutate: func(r *Request) *Request { r.BaseURL = "ftp://id.example.com"; return r },
		},
		{
			name:   "missing host",
			mutate: func(r *Request) *Request { r.BaseURL = "https://"; return r },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.mutate(testRequest())
			_, err := BuildAuthorizationURL(req, "challenge")
			if err == nil {
				t.Fatal("BuildAuthorizationURL() should fail")
			}
			if kind := KindOf(err); kind != KindInvalidURLComponents {
				t.Errorf("error kind = %v, want %v", kind, KindInvalidURLComponents)
			}
		})
	}
}
