package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, errs := Load("")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.JWTExpirationMinutes != DefaultJWTExpirationMinutes {
		t.Fatalf("expected default expiry, got %d", cfg.JWTExpirationMinutes)
	}
	if cfg.TokenTTL() != 30*time.Minute {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL())
	}
}

func TestLoadMissingSecret(t *testing.T) {
	cfg, errs := Load("")
	if cfg == nil {
		t.Fatal("expected config even with validation errors")
	}
	if !containsErr(errs, ErrMissingJWTSecret) {
		t.Fatalf("expected missing secret error, got %v", errs)
	}
}

func TestLoadExpiryBounds(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, minutes := range []string{"0", "61", "-5"} {
		t.Setenv("JWT_EXPIRATION_MINUTES", minutes)
		_, errs := Load("")
		if !containsErr(errs, ErrInvalidTokenExpiry) {
			t.Fatalf("expected expiry bounds error for %s, got %v", minutes, errs)
		}
	}

	t.Setenv("JWT_EXPIRATION_MINUTES", "60")
	cfg, errs := Load("")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if cfg.JWTExpirationMinutes != 60 {
		t.Fatalf("expected 60, got %d", cfg.JWTExpirationMinutes)
	}
}

func TestLoadUnparseableInt(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "not-a-number")

	cfg, errs := Load("")
	if !containsErr(errs, ErrInvalidPort) {
		t.Fatalf("expected port error, got %v", errs)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("expected fallback port, got %d", cfg.Port)
	}
}

func containsErr(errs []error, target error) bool {
	for _, err := range errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
