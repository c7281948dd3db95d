package config

import (
	"strings"
	"sync"
)

// KeyProvider supplies the current Gemini API key. Consumers read the key
// per call so an updated key takes effect immediately.
type KeyProvider interface {
	Get() string
}

// APIKeyStore holds the Gemini API key with atomic swap semantics. The key
// can be replaced at runtime through the developer console without touching
// process-wide environment state.
type APIKeyStore struct {
	mu  sync.RWMutex
	key string
}

func NewAPIKeyStore(initial string) *APIKeyStore {
	return &APIKeyStore{key: initial}
}

func (s *APIKeyStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

func (s *APIKeyStore) Set(key string) {
	s.mu.Lock()
	s.key = strings.TrimSpace(key)
	s.mu.Unlock()
}

// Masked returns the key with all but the first 8 and last 4 characters
// hidden, for display in the developer console.
func (s *APIKeyStore) Masked() string {
	key := s.Get()
	if key == "" {
		return ""
	}
	if len(key) > 12 {
		return key[:8] + strings.Repeat("•", len(key)-12) + key[len(key)-4:]
	}
	return strings.Repeat("•", len(key))
}
