package auth

import (
	"context"
	"time"
)

// User is an actor account. The password hash never leaves this package
// except into the store.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserStore manages actor accounts. It doubles as the identity source the
// authenticator re-checks decoded tokens against.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsWithRole reports whether the actor currently exists holding
	// exactly this role. A token whose embedded role has diverged from the
	// stored one must fail this check.
	ExistsWithRole(ctx context.Context, id string, role Role) (bool, error)
}
