package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/oluwatobiiloba/inventory-api/internal/auth"
	"github.com/oluwatobiiloba/inventory-api/internal/ids"
)

// Users implements auth.UserStore over Postgres.
type Users struct {
	db *sql.DB
}

var _ auth.UserStore = (*Users)(nil)

// Users returns the user store view of the pool.
func (s *Store) Users() *Users { return &Users{db: s.db} }

func (s *Users) Create(ctx context.Context, u *auth.User) error {
	if s.db == nil {
		return errors.New("database connection unavailable")
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	err := s.db.QueryRowContext(ctx, `
		insert into users (id, email, password_hash, role, first_name, last_name)
		values ($1, $2, $3, $4, $5, $6)
		returning created_at, updated_at
	`, u.ID, u.Email, u.PasswordHash, string(u.Role), u.FirstName, u.LastName).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Users) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return s.find(ctx, `where id = $1`, id)
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.find(ctx, `where email = $1`, email)
}

func (s *Users) find(ctx context.Context, where string, arg any) (*auth.User, error) {
	if s.db == nil {
		return nil, errors.New("database connection unavailable")
	}
	var (
		u    auth.User
		role string
	)
	err := s.db.QueryRowContext(ctx, `
		select id, email, password_hash, role, first_name, last_name, created_at, updated_at
		from users `+where,
		arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = auth.Role(role)
	return &u, nil
}

func (s *Users) ExistsWithRole(ctx context.Context, id string, role auth.Role) (bool, error) {
	if s.db == nil {
		return false, errors.New("database connection unavailable")
	}
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		select exists (select 1 from users where id = $1 and role = $2)
	`, id, string(role)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
