package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/oluwatobiiloba/inventory-api/internal/audit"
)

// CreateParams carries the fields accepted when creating a product.
type CreateParams struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	SKU         string  `json:"sku"`
}

// UpdateParams is a partial patch. Nil fields are left untouched.
type UpdateParams struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	SKU         *string  `json:"sku"`
}

// Page bundles one page of products with pagination metadata.
type Page struct {
	Items []*Product
	Page  int
	Limit int
	Total int
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Service implements catalog operations and declares an audit entry after
// every successful mutation. The declaration only becomes a stored record
// once the surrounding request finishes successfully.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidInput)
	}
	return &Service{store: store}, nil
}

// Create validates and stores a new product. A duplicate SKU is ErrConflict.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	p := &Product{
		Name:        strings.TrimSpace(params.Name),
		Description: strings.TrimSpace(params.Description),
		Price:       params.Price,
		Stock:       params.Stock,
		SKU:         strings.TrimSpace(params.SKU),
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	audit.Declare(ctx, audit.Declaration{
		Action:     audit.ActionCreate,
		Resource:   "products",
		ResourceID: p.ID,
		Changes:    snapshot(p),
	})
	return p, nil
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.store.GetByID(ctx, id)
}

// List returns one page of the catalog. Out-of-range page and limit values
// are clamped rather than rejected.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	items, total, err := s.store.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// Update applies a partial patch. The audit entry pairs the full
// pre-mutation snapshot with the patch exactly as submitted.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Product, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := snapshot(current)

	patch := make(map[string]any)
	if params.Name != nil {
		current.Name = strings.TrimSpace(*params.Name)
		patch["name"] = current.Name
	}
	if params.Description != nil {
		current.Description = strings.TrimSpace(*params.Description)
		patch["description"] = current.Description
	}
	if params.Price != nil {
		current.Price = *params.Price
		patch["price"] = current.Price
	}
	if params.Stock != nil {
		current.Stock = *params.Stock
		patch["stock"] = current.Stock
	}
	if params.SKU != nil {
		current.SKU = strings.TrimSpace(*params.SKU)
		patch["sku"] = current.SKU
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: empty update", ErrInvalidInput)
	}
	if err := validate(current); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, current); err != nil {
		return nil, err
	}

	audit.Declare(ctx, audit.Declaration{
		Action:     audit.ActionUpdate,
		Resource:   "products",
		ResourceID: current.ID,
		Changes:    patch,
		OldValues:  before,
	})
	return current, nil
}

// Delete removes a product, auditing its final state.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	audit.Declare(ctx, audit.Declaration{
		Action:     audit.ActionDelete,
		Resource:   "products",
		ResourceID: current.ID,
		Changes:    snapshot(current),
	})
	return nil
}

func validate(p *Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.SKU == "" {
		return fmt.Errorf("%w: sku is required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return nil
}

// snapshot flattens a product into the shape audit records store.
func snapshot(p *Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"sku":         p.SKU,
	}
}
