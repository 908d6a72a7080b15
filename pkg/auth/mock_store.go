package auth

import (
	"sync"
)

// MockStore implements CredentialStore for testing purposes
type MockStore struct {
	cred *Credential
	mu   sync.RWMutex

	// Error injection for testing
	StoreError    error
	RetrieveError error
	DeleteError   error
}

// NewMockStore creates a new mock credential store
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Store saves the credential to the mock store
func (m *MockStore) Store(cred *Credential) error {
	if m.StoreError != nil {
		return m.StoreError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cred == nil || cred.APIKey == "" {
		return ErrInvalidCredentials
	}

	// Create a copy to avoid external modifications
	credCopy := *cred
	m.cred = &credCopy

	return nil
}

// Retrieve gets the credential from the mock store
func (m *MockStore) Retrieve() (*Credential, error) {
	if m.RetrieveError != nil {
		return nil, m.RetrieveError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cred == nil {
		return nil, ErrCredentialsNotFound
	}

	credCopy := *m.cred
	return &credCopy, nil
}

// Delete removes the credential from the mock store
func (m *MockStore) Delete() error {
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cred == nil {
		return ErrCredentialsNotFound
	}

	m.cred = nil
	return nil
}

// Exists checks if a credential exists in the mock store
func (m *MockStore) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cred != nil
}

// Clear removes the stored credential (useful for test cleanup)
func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cred = nil
}

// NewMockManager creates a Manager with a mock store for testing
func NewMockManager() (*Manager, *MockStore) {
	mockStore := NewMockStore()
	manager := &Manager{
		stores: []CredentialStore{mockStore},
	}
	return manager, mockStore
}

// NewMockManagerWithStores creates a Manager with specific stores for testing
func NewMockManagerWithStores(stores ...CredentialStore) *Manager {
	return &Manager{
		stores: stores,
	}
}
