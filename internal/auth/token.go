package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the token payload: the actor identifier and the role held
// at issuance, plus the registered iat/exp timestamps.
type Claims struct {
	ActorID string `json:"id"`
	Role    Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures TokenService behavior.
type TokenOption func(*TokenService)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) TokenOption {
	return func(s *TokenService) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewTokenService constructs a TokenService signing with the process-wide
// secret. ttl is the access token lifetime.
func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be greater than zero")
	}
	svc := &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Issue signs a token embedding the actor id and role with the configured
// expiry. No side effects beyond computation.
func (s *TokenService) Issue(actorID string, role Role) (string, time.Time, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return "", time.Time{}, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	if _, err := ParseRole(string(role)); err != nil {
		return "", time.Time{}, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		ActorID: actorID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify decodes and checks signature and expiry. Every failure collapses to
// ErrInvalidToken so callers cannot distinguish a tampered token from an
// expired or malformed one. The returned identity reflects the claims as
// issued, unvalidated against current state.
func (s *TokenService) Verify(encoded string) (Identity, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return Identity{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(encoded, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.ActorID) == "" || claims.ExpiresAt == nil {
		return Identity{}, ErrInvalidToken
	}
	role, err := ParseRole(string(claims.Role))
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: claims.ActorID, Role: role}, nil
}
