package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RegisterParams carries the fields accepted at registration. Any submitted
// role is discarded: self-registered accounts always start as RoleUser.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginResult bundles the issued token with the authenticated account.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// AccountService handles registration and credential-based login.
type AccountService struct {
	users  UserStore
	tokens *TokenService
}

// NewAccountService constructs an AccountService.
func NewAccountService(users UserStore, tokens *TokenService) (*AccountService, error) {
	if users == nil {
		return nil, fmt.Errorf("%w: user store is required", ErrInvalidInput)
	}
	if tokens == nil {
		return nil, fmt.Errorf("%w: token service is required", ErrInvalidInput)
	}
	return &AccountService{users: users, tokens: tokens}, nil
}

// Register creates an account with role user. Duplicate email is ErrConflict.
func (s *AccountService) Register(ctx context.Context, params RegisterParams) (*User, error) {
	email := strings.TrimSpace(strings.ToLower(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	firstName := strings.TrimSpace(params.FirstName)
	lastName := strings.TrimSpace(params.LastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token carrying the stored role.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrUnauthenticated
	}
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
