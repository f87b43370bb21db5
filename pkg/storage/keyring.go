package storage

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// ServiceName is the identifier used for all Boardflow credentials
	// in the system keyring.
	ServiceName = "boardflow"

	// RelayTokenKey is the account name under which the backend relay
	// bearer token is stored.
	RelayTokenKey = "relay-token"
)

// ErrCredentialNotFound is returned when a requested credential is not
// present in the keyring.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialStore defines the interface for secure credential storage.
type CredentialStore interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// KeyringCredentialStore implements CredentialStore using the system
// keyring.
//   - macOS: Keychain
//   - Windows: Credential Manager
//   - Linux: Secret Service (GNOME Keyring, KWallet)
type KeyringCredentialStore struct {
	service string
}

// NewKeyringCredentialStore creates a keyring-backed store under the
// Boardflow service name.
func NewKeyringCredentialStore() *KeyringCredentialStore {
	return &KeyringCredentialStore{service: ServiceName}
}

// Set stores a credential securely in the system keyring.
func (s *KeyringCredentialStore) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("credential key cannot be empty")
	}
	if err := keyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// Get retrieves a credential from the system keyring.
func (s *KeyringCredentialStore) Get(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("credential key cannot be empty")
	}
	value, err := keyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrCredentialNotFound, key)
		}
		return "", fmt.Errorf("failed to read credential: %w", err)
	}
	return value, nil
}

// Delete removes a credential from the system keyring.
func (s *KeyringCredentialStore) Delete(key string) error {
	if key == "" {
		return fmt.Errorf("credential key cannot be empty")
	}
	if err := keyring.Delete(s.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrCredentialNotFound, key)
		}
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
