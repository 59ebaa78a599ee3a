package auth

import (
	"context"
	"errors"
	"testing"
)

func newTestAccountService(t *testing.T) (*AccountService, *MemoryUserStore) {
	t.Helper()
	users := NewMemoryUserStore()
	svc, err := NewAccountService(users, newTestTokenService(t))
	if err != nil {
		t.Fatalf("NewAccountService: %v", err)
	}
	return svc, users
}

func TestRegisterForcesUserRole(t *testing.T) {
	svc, _ := newTestAccountService(t)

	user, err := svc.Register(context.Background(), RegisterParams{
		Email:     "Ada@Example.com",
		Password:  "long enough secret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != RoleUser {
		t.Fatalf("registered role = %s, want user", user.Role)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}
	if user.ID == "" {
		t.Fatal("expected assigned id")
	}
	if user.PasswordHash == "long enough secret" {
		t.Fatal("password stored in the clear")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAccountService(t)
	params := RegisterParams{
		Email:     "ada@example.com",
		Password:  "long enough secret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if _, err := svc.Register(context.Background(), params); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), params); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAccountService(t)
	cases := map[string]RegisterParams{
		"missing email":    {Password: "long enough secret", FirstName: "A", LastName: "B"},
		"malformed email":  {Email: "not-an-email", Password: "long enough secret", FirstName: "A", LastName: "B"},
		"short password":   {Email: "a@b.com", Password: "short", FirstName: "A", LastName: "B"},
		"missing names":    {Email: "a@b.com", Password: "long enough secret"},
		"blank first name": {Email: "a@b.com", Password: "long enough secret", FirstName: "  ", LastName: "B"},
	}
	for name, params := range cases {
		if _, err := svc.Register(context.Background(), params); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAccountService(t)
	if _, err := svc.Register(context.Background(), RegisterParams{
		Email:     "ada@example.com",
		Password:  "long enough secret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := svc.Login(context.Background(), "ADA@example.com", "long enough secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.Email != "ada@example.com" {
		t.Fatalf("unexpected user: %s", result.User.Email)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newTestAccountService(t)
	if _, err := svc.Register(context.Background(), RegisterParams{
		Email:     "ada@example.com",
		Password:  "long enough secret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := map[string][2]string{
		"unknown email":  {"nobody@example.com", "long enough secret"},
		"wrong password": {"ada@example.com", "wrong password"},
		"empty password": {"ada@example.com", ""},
	}
	for name, creds := range cases {
		if _, err := svc.Login(context.Background(), creds[0], creds[1]); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
}

func TestLoginTokenCarriesStoredRole(t *testing.T) {
	users := NewMemoryUserStore()
	tokens := newTestTokenService(t)
	svc, err := NewAccountService(users, tokens)
	if err != nil {
		t.Fatalf("NewAccountService: %v", err)
	}

	user := seedUser(t, users, "owner@example.com", RoleOwner)
	result, err := svc.Login(context.Background(), user.Email, "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	identity, err := tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.Role != RoleOwner {
		t.Fatalf("token role = %s, want owner", identity.Role)
	}
}
