package oauth

import (
	"strings"
	"testing"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name           string
		rawURL         string
		expectedScheme string
		want           string
		wantErr        bool
		wantInMessage  string
	}{
		{
			name:           "loopback callback with code",
			rawURL:         "http://localhost:8315/oauth/callback?code=abc123&scope=openid",
			expectedScheme: "http",
			want:           "abc123",
		},
		{
			name:           "custom scheme callback with code",
			rawURL:         "myapp://callback?code=xyz",
			expectedScheme: "myapp",
			want:           "xyz",
		},
		{
			name:           "scheme comparison is case-insensitive",
			rawURL:         "HTTP://localhost:8315/oauth/callback?code=abc",
			expectedScheme: "http",
			want:           "abc",
		},
		{
			name:           "code wins over provider error",
			rawURL:         "http://localhost:8315/oauth/callback?code=abc&error=ignored",
			expectedScheme: "http",
			want:           "abc",
		},
		{
			name:           "empty input",
			rawURL:         "",
			expectedScheme: "http",
			wantErr:        true,
			wantInMessage:  "empty",
		},
		{
			name:           "whitespace input",
			rawURL:         "   ",
			expectedScheme: "http",
			wantErr:        true,
			wantInMessage:  "empty",
		},
		{
			name:           "scheme mismatch",
			rawURL:         "myapp://callback?code=abc",
			expectedScheme: "http",
			wantErr:        true,
			wantInMessage:  "does not match",
		},
		{
			name:           "no code and no error",
			rawURL:         "http://localhost:8315/oauth/callback?state=whatever",
			expectedScheme: "http",
			wantErr:        true,
			wantInMessage:  "no authorization code",
		},
		{
			name:           "whitespace code",
			rawURL:         "http://localhost:8315/oauth/callback?code=%20%20",
			expectedScheme: "http",
			wantErr:        true,
			wantInMessage:  "no authorization code",
		},
		{
			name:           "provider error without description",
			rawURL:         "http://localhost:8315/oauth/callback?error=access_denied",
			expectedScheme: "http",
			wantErr:        true,
			wantInMessage:  `provider reported "access_denied"`,
		},
		{
			name:           "provider error with description",
			rawURL:         "http://localhost:8315/oauth/callback?error=access_denied&error_description=User+denied+access",
			expectedScheme: "http",
			wantErr:        true,
			wantInMessage:  "User denied access",
		},
		{
			name:           "unparseable URL",
			rawURL:         "http://local host/?code=abc",
			expectedScheme: "http",
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCallback(tt.rawURL, tt.expectedScheme)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCallback() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCallback() = %q, want %q", got, tt.want)
			}
			if !tt.wantErr {
				return
			}
			if kind := KindOf(err); kind != KindCodeParsingFailed {
				t.Errorf("error kind = %v, want %v", kind, KindCodeParsingFailed)
			}
			if tt.wantInMessage != "" && !strings.Contains(MessageOf(err), tt.wantInMessage) {
				t.Errorf("error message = %q, want it to contain %q", MessageOf(err), tt.wantInMessage)
			}
		})
	}
}
