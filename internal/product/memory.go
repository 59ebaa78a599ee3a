package product

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oluwatobiiloba/inventory-api/internal/ids"
)

// MemoryStore is an in-memory Store for tests and development. Thread-safe
// via RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*Product
	bySKU map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory product store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:  make(map[string]*Product),
		bySKU: make(map[string]string),
	}
}

func (s *MemoryStore) Create(_ context.Context, p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bySKU[p.SKU]; exists {
		return ErrConflict
	}
	if p.ID == "" {
		p.ID = ids.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.byID[p.ID] = &cp
	s.bySKU[p.SKU] = p.ID
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, page, limit int) ([]*Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*Product, 0, len(s.byID))
	for _, p := range s.byID {
		all = append(all, p)
	}
	// Insert order equals id order for ULIDs.
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return []*Product{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	out := make([]*Product, 0, end-start)
	for _, p := range all[start:end] {
		cp := *p
		out = append(out, &cp)
	}
	return out, total, nil
}

func (s *MemoryStore) Update(_ context.Context, p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[p.ID]
	if !ok {
		return ErrNotFound
	}
	if p.SKU != existing.SKU {
		if _, taken := s.bySKU[p.SKU]; taken {
			return ErrConflict
		}
		delete(s.bySKU, existing.SKU)
		s.bySKU[p.SKU] = p.ID
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	s.byID[p.ID] = &cp
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.bySKU, p.SKU)
	delete(s.byID, id)
	return nil
}
