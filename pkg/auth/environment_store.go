package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements CredentialStore using environment variables.
// It is read-only and exists so CI and scripted runs can skip interactive
// setup entirely.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(cred *Credential) error {
	return ErrStoreUnavailable
}

// Retrieve gets the API key from the environment
func (e *EnvironmentStore) Retrieve() (*Credential, error) {
	apiKey := os.Getenv("STANDARDS_API_KEY")
	if apiKey == "" {
		return nil, ErrCredentialsNotFound
	}

	return &Credential{
		APIKey:       apiKey,
		LastModified: time.Now(),
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists checks if the environment holds an API key
func (e *EnvironmentStore) Exists() bool {
	return os.Getenv("STANDARDS_API_KEY") != ""
}
