package secret

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "authpilot"
	clientIDKey    = "client-id"
)

// KeyringStore keeps the client identifier in the operating system keyring
// (Secret Service on Linux, Keychain on macOS, Credential Manager on Windows).
type KeyringStore struct{}

// NewKeyringStore constructs a keyring-backed store.
func NewKeyringStore() *KeyringStore { return &KeyringStore{} }

// ClientID returns the stored client identifier, or "" when none is set.
func (s *KeyringStore) ClientID() (string, error) {
	value, err := keyring.Get(keyringService, clientIDKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read client id from keyring: %w", err)
	}
	return strings.TrimSpace(value), nil
}

// SetClientID stores the client identifier in the keyring.
func (s *KeyringStore) SetClientID(clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return fmt.Errorf("client id is empty")
	}
	if err := keyring.Set(keyringService, clientIDKey, clientID); err != nil {
		return fmt.Errorf("failed to store client id in keyring: %w", err)
	}
	return nil
}

// DeleteClientID removes the client identifier from the keyring. Deleting an
// identifier that was never stored is not an error.
func (s *KeyringStore) DeleteClientID() error {
	if err := keyring.Delete(keyringService, clientIDKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete client id from keyring: %w", err)
	}
	return nil
}
