// Package secret resolves the OAuth client identifier from the machine's
// secret store. Two backends are supported: the operating system keyring and
// a plain TOML settings file for headless hosts without a keyring daemon.
//
// Only the client identifier is stored. Access tokens are held in memory for
// the lifetime of the process and are never written to either backend.
package secret

import (
	"fmt"

	"github.com/authpilot/authpilot/internal/config"
)

// Store provides access to the provisioned OAuth client identifier.
// A missing identifier is reported as an empty string, not an error.
type Store interface {
	ClientID() (string, error)
	SetClientID(clientID string) error
	DeleteClientID() error
}

// NewStore builds the secret store selected by the configuration.
func NewStore(cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	switch cfg.SecretStore {
	case "", config.SecretStoreKeyring:
		return NewKeyringStore(), nil
	case config.SecretStoreFile:
		return NewFileStore(cfg.SettingsFile), nil
	default:
		return nil, fmt.Errorf("unknown secret store %q", cfg.SecretStore)
	}
}
