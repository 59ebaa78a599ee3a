package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const bearerScheme = "Bearer "

// Authenticator resolves a raw Authorization header into a bound Identity.
type Authenticator struct {
	tokens *TokenService
	users  UserStore
}

// NewAuthenticator wires the token verifier with the identity source.
func NewAuthenticator(tokens *TokenService, users UserStore) (*Authenticator, error) {
	if tokens == nil {
		return nil, errors.New("auth: token service is required")
	}
	if users == nil {
		return nil, errors.New("auth: user store is required")
	}
	return &Authenticator{tokens: tokens, users: users}, nil
}

// Authenticate extracts and verifies the bearer token, then re-checks the
// decoded actor and role against current state. A verification failure of
// any kind is ErrUnauthenticated; a verified token whose actor is gone or
// whose role diverged is ErrForbidden, signalling a credential that was
// structurally valid but is no longer authoritative.
func (a *Authenticator) Authenticate(ctx context.Context, rawHeader string) (Identity, error) {
	token, err := extractBearerToken(rawHeader)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %s", ErrUnauthenticated, err)
	}

	identity, err := a.tokens.Verify(token)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}

	ok, err := a.users.ExistsWithRole(ctx, identity.ID, identity.Role)
	if err != nil {
		return Identity{}, fmt.Errorf("verify actor: %w", err)
	}
	if !ok {
		return Identity{}, fmt.Errorf("%w: credential no longer valid", ErrForbidden)
	}
	return identity, nil
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearerScheme)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearerScheme):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
