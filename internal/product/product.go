package product

import (
	"context"
	"errors"
	"time"
)

// Product is a stockable inventory item. SKU is unique across the catalog.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	SKU         string    `json:"sku"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrNotFound     = errors.New("product: not found")
	ErrConflict     = errors.New("product: sku already exists")
	ErrInvalidInput = errors.New("product: invalid input")
)

// Store persists products.
type Store interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)

	// List returns one page of products plus the total count across all
	// pages. page is 1-based.
	List(ctx context.Context, page, limit int) ([]*Product, int, error)

	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
