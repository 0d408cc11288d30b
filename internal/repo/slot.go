// Package repo contains all persistence logic for the PostBot campaign API.
// Slot backends store opaque text under string keys; CampaignStore layers the
// campaign encoding on top of whichever backend main.go selects.
// No business logic lives here.
package repo

import (
	"context"
	"sync"
)

// SlotStore is a minimal key-value medium with the semantics of browser
// local storage: string keys, string values, last write wins.
type SlotStore interface {
	// Get returns the value stored under key. found is false when the key has
	// never been written. err is non-nil only when the medium itself failed.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set overwrites the value stored under key unconditionally.
	Set(ctx context.Context, key, value string) error
}

// memorySlotStore keeps slots in process memory. Used for local development
// and as the test double for CampaignStore.
type memorySlotStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemorySlotStore constructs an empty in-memory SlotStore.
func NewMemorySlotStore() SlotStore {
	return &memorySlotStore{slots: map[string]string{}}
}

func (m *memorySlotStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *memorySlotStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}
