package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store for development and tests.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]*Layout
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]*Layout)}
}

// Put inserts or replaces a layout.
func (s *MemoryStore) Put(ctx context.Context, l *Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *l
	s.layouts[l.ID] = &cp
	return nil
}

// Get retrieves a layout by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

// List returns all layouts, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Layout, 0, len(s.layouts))
	for _, l := range s.layouts {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete removes a layout.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.layouts, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
