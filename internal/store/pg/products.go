package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/oluwatobiiloba/inventory-api/internal/ids"
	"github.com/oluwatobiiloba/inventory-api/internal/product"
)

// Products implements product.Store over Postgres.
type Products struct {
	db *sql.DB
}

var _ product.Store = (*Products)(nil)

// Products returns the product store view of the pool.
func (s *Store) Products() *Products { return &Products{db: s.db} }

func (s *Products) Create(ctx context.Context, p *product.Product) error {
	if s.db == nil {
		return errors.New("database connection unavailable")
	}
	if p.ID == "" {
		p.ID = ids.New()
	}
	err := s.db.QueryRowContext(ctx, `
		insert into products (id, name, description, price, stock, sku)
		values ($1, $2, $3, $4, $5, $6)
		returning created_at, updated_at
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.SKU).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Products) GetByID(ctx context.Context, id string) (*product.Product, error) {
	if s.db == nil {
		return nil, errors.New("database connection unavailable")
	}
	var p product.Product
	err := s.db.QueryRowContext(ctx, `
		select id, name, description, price, stock, sku, created_at, updated_at
		from products where id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.SKU, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, product.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Products) List(ctx context.Context, page, limit int) ([]*product.Product, int, error) {
	if s.db == nil {
		return nil, 0, errors.New("database connection unavailable")
	}
	var total int
	if err := s.db.QueryRowContext(ctx, `select count(*) from products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := s.db.QueryContext(ctx, `
		select id, name, description, price, stock, sku, created_at, updated_at
		from products
		order by id
		limit $1 offset $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*product.Product{}
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.SKU, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Products) Update(ctx context.Context, p *product.Product) error {
	if s.db == nil {
		return errors.New("database connection unavailable")
	}
	err := s.db.QueryRowContext(ctx, `
		update products
		set name = $2, description = $3, price = $4, stock = $5, sku = $6, updated_at = now()
		where id = $1
		returning updated_at
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.SKU).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return product.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Products) Delete(ctx context.Context, id string) error {
	if s.db == nil {
		return errors.New("database connection unavailable")
	}
	res, err := s.db.ExecContext(ctx, `delete from products where id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return product.ErrNotFound
	}
	return nil
}
