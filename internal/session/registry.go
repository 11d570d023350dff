// Package session tracks which issued API keys are currently honored.
//
// A signed key alone cannot be invalidated before it expires; the registry
// layers an explicit revocation mechanism on top of stateless signing.
package session

import (
	"context"
	"sync"
)

// Registry is the set of API keys currently considered active.
type Registry interface {
	// Activate inserts a freshly issued key into the set.
	Activate(ctx context.Context, apiKey string) error
	// IsActive reports whether the key is currently honored.
	IsActive(ctx context.Context, apiKey string) (bool, error)
	// Revoke removes the key and reports whether it was present.
	Revoke(ctx context.Context, apiKey string) (bool, error)
}

// MemoryRegistry is the default in-process implementation. It starts empty
// and does not survive a restart, so every login after a restart issues a
// fresh key.
type MemoryRegistry struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewMemoryRegistry constructs an empty in-process registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{keys: make(map[string]struct{})}
}

func (r *MemoryRegistry) Activate(_ context.Context, apiKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[apiKey] = struct{}{}
	return nil
}

func (r *MemoryRegistry) IsActive(_ context.Context, apiKey string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[apiKey]
	return ok, nil
}

func (r *MemoryRegistry) Revoke(_ context.Context, apiKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keys[apiKey]; !ok {
		return false, nil
	}
	delete(r.keys, apiKey)
	return true, nil
}

var _ Registry = (*MemoryRegistry)(nil)
