// Package config provides configuration management for AuthPilot. It handles
// loading and parsing YAML configuration files and provides structured access
// to application settings including OAuth endpoints, redirect handling, the
// secret store selection, proxy configuration, and logging.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SecretStoreKeyring selects the OS keychain backed secret store.
const SecretStoreKeyring = "keyring"

// SecretStoreFile selects the TOML settings-file backed secret store.
const SecretStoreFile = "file"

// Config represents the application's configuration, loaded from a YAML file.
type Config struct {
	// OAuth holds the provider endpoint and authorization request settings.
	OAuth OAuthConfig `yaml:"oauth" json:"oauth"`

	// SecretStore selects where the OAuth client identifier is read from:
	// "keyring" (OS keychain) or "file" (TOML settings file). Defaults to keyring.
	SecretStore string `yaml:"secret-store" json:"secret-store"`

	// SettingsFile is the TOML file used by the file secret store.
	SettingsFile string `yaml:"settings-file" json:"settings-file"`

	// ProxyURL is the URL of an optional proxy server to use for outbound
	// requests (http, https, or socks5).
	ProxyURL string `yaml:"proxy-url" json:"proxy-url"`

	// RequestTimeoutSeconds bounds the token exchange HTTP request. An
	// expired timeout surfaces as a network failure. Defaults to 30.
	RequestTimeoutSeconds int `yaml:"request-timeout-seconds" json:"request-timeout-seconds"`

	// CallbackTimeoutSeconds bounds how long a login waits for the redirect
	// callback after the browser opens. Defaults to 300.
	CallbackTimeoutSeconds int `yaml:"callback-timeout-seconds" json:"callback-timeout-seconds"`

	// Debug enables debug level logging, including redacted token endpoint
	// response logging.
	Debug bool `yaml:"debug" json:"debug"`

	// RequestLog enables detailed request logging; implies debug level for
	// flow packages.
	RequestLog bool `yaml:"request-log" json:"request-log"`

	// LogFile mirrors log output into a size-rotated file when set.
	LogFile string `yaml:"log-file" json:"log-file"`
}

// OAuthConfig holds the provider endpoints and the fixed parameters of the
// authorization request. The client identifier is intentionally absent: it is
// supplied by the secret store, never by this file.
type OAuthConfig struct {
	// BaseURL is the identity provider origin, e.g. "https://id.example.com".
	BaseURL string `yaml:"base-url" json:"base-url"`

	// AuthorizePath is the authorization endpoint path on the base URL.
	AuthorizePath string `yaml:"authorize-path" json:"authorize-path"`

	// TokenPath is the token endpoint path on the base URL.
	TokenPath string `yaml:"token-path" json:"token-path"`

	// RedirectURI is where the provider redirects after authentication.
	// A loopback http URL is served by the built-in callback listener; a
	// custom scheme URI requires an OS registration handled elsewhere.
	RedirectURI string `yaml:"redirect-uri" json:"redirect-uri"`

	// Scope is the space-separated scope string sent on the authorization
	// request. Defaults to "openid".
	Scope string `yaml:"scope" json:"scope"`
}

const (
	defaultAuthorizePath          = "/oauth2/authorize"
	defaultTokenPath              = "/oauth2/token"
	defaultRedirectURI            = "http://localhost:8315/oauth/callback"
	defaultScope                  = "openid"
	defaultRequestTimeoutSeconds  = 30
	defaultCallbackTimeoutSeconds = 300
	defaultSettingsFile           = "authpilot-settings.toml"
)

// LoadConfig reads and parses the YAML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	return LoadConfigOptional(path, false)
}

// LoadConfigOptional reads and parses the YAML configuration file at path.
// In optional mode a missing or unparseable file yields a default
// configuration instead of an error.
func LoadConfigOptional(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		if optional {
			cfg = &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills unset fields with their documented defaults.
func applyDefaults(cfg *Config) {
	if cfg.SecretStore == "" {
		cfg.SecretStore = SecretStoreKeyring
	}
	if cfg.SettingsFile == "" {
		cfg.SettingsFile = defaultSettingsFile
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = defaultRequestTimeoutSeconds
	}
	if cfg.CallbackTimeoutSeconds <= 0 {
		cfg.CallbackTimeoutSeconds = defaultCallbackTimeoutSeconds
	}
	if cfg.OAuth.AuthorizePath == "" {
		cfg.OAuth.AuthorizePath = defaultAuthorizePath
	}
	if cfg.OAuth.TokenPath == "" {
		cfg.OAuth.TokenPath = defaultTokenPath
	}
	if cfg.OAuth.RedirectURI == "" {
		cfg.OAuth.RedirectURI = defaultRedirectURI
	}
	if cfg.OAuth.Scope == "" {
		cfg.OAuth.Scope = defaultScope
	}
}

// ValidateConfig performs basic semantic validation of the loaded
// configuration. It returns non-fatal warnings alongside a hard error for
// values that cannot work at all.
func ValidateConfig(cfg *Config) ([]string, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	var warnings []string

	switch cfg.SecretStore {
	case SecretStoreKeyring, SecretStoreFile:
	default:
		return warnings, fmt.Errorf("secret-store must be %q or %q, got %q", SecretStoreKeyring, SecretStoreFile, cfg.SecretStore)
	}

	if cfg.SecretStore == SecretStoreFile && strings.TrimSpace(cfg.SettingsFile) == "" {
		return warnings, fmt.Errorf("settings-file is required when secret-store is %q", SecretStoreFile)
	}

	if strings.TrimSpace(cfg.OAuth.BaseURL) == "" {
		warnings = append(warnings, "oauth.base-url is empty; login will fail until it is configured")
	} else if parsed, err := url.Parse(strings.TrimSpace(cfg.OAuth.BaseURL)); err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		warnings = append(warnings, fmt.Sprintf("oauth.base-url %q does not look like an absolute http(s) URL", cfg.OAuth.BaseURL))
	}

	if parsed, err := url.Parse(strings.TrimSpace(cfg.OAuth.RedirectURI)); err != nil || parsed.Scheme == "" {
		return warnings, fmt.Errorf("oauth.redirect-uri %q is not a valid URI", cfg.OAuth.RedirectURI)
	}

	if strings.TrimSpace(cfg.ProxyURL) != "" {
		if _, err := url.Parse(strings.TrimSpace(cfg.ProxyURL)); err != nil {
			warnings = append(warnings, fmt.Sprintf("proxy-url %q does not parse and will be ignored", cfg.ProxyURL))
		}
	}

	return warnings, nil
}

// RequestTimeout returns the token exchange timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c == nil || c.RequestTimeoutSeconds <= 0 {
		return defaultRequestTimeoutSeconds * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CallbackTimeout returns the redirect callback wait timeout as a duration.
func (c *Config) CallbackTimeout() time.Duration {
	if c == nil || c.CallbackTimeoutSeconds <= 0 {
		return defaultCallbackTimeoutSeconds * time.Second
	}
	return time.Duration(c.CallbackTimeoutSeconds) * time.Second
}
