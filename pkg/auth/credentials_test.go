package auth

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCredentialManager(t *testing.T) {
	// Use mock manager for reliable testing
	manager, mockStore := NewMockManager()

	cred := &Credential{
		APIKey:       "vvGjJoYIUsdXgnCSCiTyPfUp",
		LastModified: time.Now(),
	}

	if err := manager.Store(cred); err != nil {
		t.Errorf("Failed to store credential: %v", err)
	}

	retrieved, err := manager.Retrieve()
	if err != nil {
		t.Errorf("Failed to retrieve credential: %v", err)
	}
	if retrieved.APIKey != cred.APIKey {
		t.Errorf("APIKey mismatch: got %s, want %s", retrieved.APIKey, cred.APIKey)
	}

	if !manager.Exists() {
		t.Error("Expected credential to exist after store")
	}

	if err := manager.Delete(); err != nil {
		t.Errorf("Failed to delete credential: %v", err)
	}

	if _, err := manager.Retrieve(); err == nil {
		t.Error("Expected error retrieving deleted credential")
	}
	if mockStore.Exists() {
		t.Error("Expected mock store to be empty after deletion")
	}
}

func TestManagerRejectsEmptyKey(t *testing.T) {
	manager, _ := NewMockManager()

	if err := manager.Store(&Credential{}); err == nil {
		t.Error("Expected error storing empty API key")
	}
	if err := manager.Store(nil); err == nil {
		t.Error("Expected error storing nil credential")
	}
}

func TestManagerStoreFallback(t *testing.T) {
	failing := NewMockStore()
	failing.StoreError = errors.New("keyring locked")
	failing.RetrieveError = errors.New("keyring locked")

	working := NewMockStore()
	manager := NewMockManagerWithStores(failing, working)

	cred := &Credential{APIKey: "fallback-key-12345"}
	if err := manager.Store(cred); err != nil {
		t.Fatalf("Store should fall through to the next backend: %v", err)
	}

	if !working.Exists() {
		t.Error("Expected credential to land in the second store")
	}

	retrieved, err := manager.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve past a failing store: %v", err)
	}
	if retrieved.APIKey != cred.APIKey {
		t.Errorf("APIKey mismatch: got %s, want %s", retrieved.APIKey, cred.APIKey)
	}
}

func TestEncryptedFileStore(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "credentials.enc")

	// Set test passphrase
	t.Setenv("STANDARDS_PASSPHRASE", "test_passphrase_123")

	store, err := NewEncryptedFileStore(tempFile)
	if err != nil {
		t.Fatalf("Failed to create encrypted store: %v", err)
	}

	cred := &Credential{APIKey: "secret_api_key_abcdef"}

	if err := store.Store(cred); err != nil {
		t.Errorf("Failed to store in encrypted file: %v", err)
	}

	retrieved, err := store.Retrieve()
	if err != nil {
		t.Errorf("Failed to retrieve from encrypted file: %v", err)
	}
	if retrieved.APIKey != cred.APIKey {
		t.Error("APIKey mismatch after encryption/decryption")
	}

	// Verify file is actually encrypted
	fileContent, err := os.ReadFile(tempFile)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(fileContent, []byte("secret_api_key_abcdef")) {
		t.Error("File contains plaintext API key")
	}

	// A second store instance over the same file decrypts it
	reopened, err := NewEncryptedFileStore(tempFile)
	if err != nil {
		t.Fatal(err)
	}
	retrieved, err = reopened.Retrieve()
	if err != nil {
		t.Errorf("Failed to retrieve with a fresh store: %v", err)
	}
	if retrieved.APIKey != cred.APIKey {
		t.Error("APIKey mismatch across store instances")
	}

	// Delete removes the file entirely
	if err := store.Delete(); err != nil {
		t.Errorf("Failed to delete credential file: %v", err)
	}
	if store.Exists() {
		t.Error("Credential should not exist after delete")
	}
	if _, err := os.Stat(tempFile); !os.IsNotExist(err) {
		t.Error("Credential file should be removed")
	}
}

func TestEnvironmentStore(t *testing.T) {
	t.Setenv("STANDARDS_API_KEY", "env_api_key")

	store := NewEnvironmentStore()

	cred, err := store.Retrieve()
	if err != nil {
		t.Errorf("Failed to retrieve from environment: %v", err)
	}
	if cred.APIKey != "env_api_key" {
		t.Errorf("APIKey mismatch: got %s, want env_api_key", cred.APIKey)
	}
	if !store.Exists() {
		t.Error("Expected environment credential to exist")
	}

	// Writes are not supported
	if err := store.Store(&Credential{APIKey: "x"}); err != ErrStoreUnavailable {
		t.Error("Expected ErrStoreUnavailable for environment store")
	}
	if err := store.Delete(); err != ErrStoreUnavailable {
		t.Error("Expected ErrStoreUnavailable for environment delete")
	}

	t.Setenv("STANDARDS_API_KEY", "")
	if _, err := store.Retrieve(); err != ErrCredentialsNotFound {
		t.Error("Expected ErrCredentialsNotFound with no environment key")
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "********"},
		{"short", "********"},
		{"12345678", "********"},
		{"vvGjJoYIUsdXgnCSCiTyPfUp", "vvGj...PfUp"},
	}

	for _, tt := range tests {
		if got := MaskKey(tt.input); got != tt.expected {
			t.Errorf("MaskKey(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
