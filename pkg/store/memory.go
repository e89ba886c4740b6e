package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps drawings in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	drawings map[string]*Drawing
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drawings: make(map[string]*Drawing),
	}
}

// Put stores a drawing.
func (s *MemoryStore) Put(ctx context.Context, d *Drawing) error {
	prepare(d)

	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *d
	s.drawings[d.ID] = &clone
	return nil
}

// Get fetches a drawing by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Drawing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drawings[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := *d
	return &clone, nil
}

// List returns the most recent drawings, newest first, without artifacts.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Drawing, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	all := make([]*Drawing, 0, len(s.drawings))
	for _, d := range s.drawings {
		clone := *d
		clone.Artifact = nil
		all = append(all, &clone)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Delete removes a drawing by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drawings[id]; !ok {
		return notFound(id)
	}
	delete(s.drawings, id)
	return nil
}

// Close does nothing.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
