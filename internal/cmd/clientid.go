package cmd

import (
	"fmt"
	"strings"

	"github.com/authpilot/authpilot/internal/config"
	"github.com/authpilot/authpilot/internal/secret"
)

// SetClientID stores the OAuth client identifier in the configured secret
// store. The identifier is provisioning material, not a user credential; it
// still never goes to plain config files, only to the keyring or the
// restricted settings file.
func SetClientID(cfg *config.Config, clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return fmt.Errorf("client id must not be empty")
	}

	secrets, err := secret.NewStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open secret store: %w", err)
	}
	if err = secrets.SetClientID(clientID); err != nil {
		return fmt.Errorf("failed to store client id: %w", err)
	}

	fmt.Printf("Client ID %s stored in the %s secret store.\n", maskSecret(clientID), storeName(cfg))
	return nil
}

// ClearClientID removes the stored client identifier. Clearing an already
// empty store succeeds.
func ClearClientID(cfg *config.Config) error {
	secrets, err := secret.NewStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open secret store: %w", err)
	}
	if err = secrets.DeleteClientID(); err != nil {
		return fmt.Errorf("failed to remove client id: %w", err)
	}

	fmt.Printf("Client ID removed from the %s secret store.\n", storeName(cfg))
	return nil
}

func storeName(cfg *config.Config) string {
	if cfg != nil && cfg.SecretStore != "" {
		return cfg.SecretStore
	}
	return config.SecretStoreKeyring
}
