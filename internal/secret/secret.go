// Package secret provides persistent storage
// for authentication secrets.
package secret

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"
)

// ErrNotFound indicates that a secret was not found in the stash.
var ErrNotFound = errors.New("secret not found")

// Stash stores and retrieves secrets.
type Stash interface {
	SaveSecret(service, key, secret string) error
	LoadSecret(service, key string) (string, error)
	DeleteSecret(service, key string) error
}

// Keyring is a Stash backed by the operating system's keychain.
// The zero value is ready to use.
type Keyring struct{}

var _ Stash = (*Keyring)(nil)

// SaveSecret stores the secret in the keychain.
func (*Keyring) SaveSecret(service, key, secret string) error {
	if err := keyring.Set(service, key, secret); err != nil {
		return fmt.Errorf("save %v: %w", key, err)
	}
	return nil
}

// LoadSecret retrieves the secret from the keychain.
// Returns [ErrNotFound] if it was never saved.
func (*Keyring) LoadSecret(service, key string) (string, error) {
	secret, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("load %v: %w", key, err)
	}
	return secret, nil
}

// DeleteSecret removes the secret from the keychain.
// Deleting a missing secret is not an error.
func (*Keyring) DeleteSecret(service, key string) error {
	err := keyring.Delete(service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete %v: %w", key, err)
	}
	return nil
}

// MemoryStash is an in-memory Stash for tests.
type MemoryStash struct {
	mu sync.RWMutex
	m  map[memoryStashKey]string
}

type memoryStashKey struct{ service, key string }

var _ Stash = (*MemoryStash)(nil)

// SaveSecret stores the secret in memory.
func (s *MemoryStash) SaveSecret(service, key, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.m == nil {
		s.m = make(map[memoryStashKey]string)
	}
	s.m[memoryStashKey{service, key}] = secret
	return nil
}

// LoadSecret retrieves a previously saved secret.
func (s *MemoryStash) LoadSecret(service, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	secret, ok := s.m[memoryStashKey{service, key}]
	if !ok {
		return "", ErrNotFound
	}
	return secret, nil
}

// DeleteSecret removes a secret.
func (s *MemoryStash) DeleteSecret(service, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, memoryStashKey{service, key})
	return nil
}
