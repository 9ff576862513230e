package secret

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore()

	id, err := store.ClientID()
	if err != nil {
		t.Fatalf("ClientID() on empty keyring error = %v", err)
	}
	if id != "" {
		t.Errorf("ClientID() = %q, want empty before provisioning", id)
	}

	if err = store.SetClientID("  client-123  "); err != nil {
		t.Fatalf("SetClientID() error = %v", err)
	}

	id, err = store.ClientID()
	if err != nil {
		t.Fatalf("ClientID() error = %v", err)
	}
	if id != "client-123" {
		t.Errorf("ClientID() = %q, want trimmed client-123", id)
	}

	if err = store.DeleteClientID(); err != nil {
		t.Fatalf("DeleteClientID() error = %v", err)
	}
	if id, _ = store.ClientID(); id != "" {
		t.Errorf("ClientID() = %q after delete, want empty", id)
	}
}

func TestKeyringStore_SetEmptyRejected(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore()
	if err := store.SetClientID("   "); err == nil {
		t.Error("SetClientID() should reject a blank identifier")
	}
}

func TestKeyringStore_DeleteMissing(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore()
	if err := store.DeleteClientID(); err != nil {
		t.Errorf("DeleteClientID() on missing entry error = %v, want nil", err)
	}
}

func TestKeyringStore_BackendFailure(t *testing.T) {
	keyring.MockInitWithError(errors.New("dbus unavailable"))
	t.Cleanup(keyring.MockInit)

	store := NewKeyringStore()
	if _, err := store.ClientID(); err == nil {
		t.Error("ClientID() should surface keyring backend failures")
	}
}
