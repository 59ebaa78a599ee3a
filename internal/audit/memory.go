package audit

import (
	"context"
	"errors"
	"sync"
)

// MemoryStore is an in-memory append-only Store for tests and development.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, rec *Record) error {
	if rec == nil {
		return errors.New("audit: nil record")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records = append(s.records, &cp)
	return nil
}

func (s *MemoryStore) ListByResource(_ context.Context, resource string, limit int) ([]*Record, error) {
	return s.filter(limit, func(r *Record) bool { return r.Resource == resource })
}

func (s *MemoryStore) ListByActor(_ context.Context, actorID string, limit int) ([]*Record, error) {
	return s.filter(limit, func(r *Record) bool { return r.ActorID == actorID })
}

func (s *MemoryStore) ListByResourceID(_ context.Context, resource, resourceID string, limit int) ([]*Record, error) {
	return s.filter(limit, func(r *Record) bool {
		return r.Resource == resource && r.ResourceID == resourceID
	})
}

// filter walks records newest first.
func (s *MemoryStore) filter(limit int, match func(*Record) bool) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.records)
	}
	out := make([]*Record, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if match(s.records[i]) {
			cp := *s.records[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Len reports the number of stored records. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
