package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

// Ensure CursorStore implements the interface.
var _ driven.CursorStore = (*CursorStore)(nil)

// CursorStore is an in-memory implementation of driven.CursorStore.
type CursorStore struct {
	mu     sync.RWMutex
	values map[string]string
	base   driven.CursorStore
}

// NewCursorStore creates a new in-memory cursor store.
func NewCursorStore() *CursorStore {
	return &CursorStore{values: make(map[string]string)}
}

// NewOverlayCursorStore creates a cursor store that reads through to base
// for keys it has not stored itself. Writes never reach base.
func NewOverlayCursorStore(base driven.CursorStore) *CursorStore {
	s := NewCursorStore()
	s.base = base
	return s
}

// Get returns the token stored under key, or domain.ErrNotFound.
func (s *CursorStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	token, ok := s.values[key]
	s.mu.RUnlock()

	if ok {
		return token, nil
	}
	if s.base != nil {
		return s.base.Get(ctx, key)
	}
	return "", domain.ErrNotFound
}

// Set stores token under key.
func (s *CursorStore) Set(_ context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = token
	return nil
}

// Changed reports whether key was set on this store, as opposed to read
// from the base store.
func (s *CursorStore) Changed(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

