// Package config loads and validates service configuration. Environment
// variables take precedence over an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
type Config struct {
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`

	DatabaseURL string `koanf:"database_url"`

	JWTSecret            string `koanf:"jwt_secret"`
	JWTExpirationMinutes int    `koanf:"jwt_expiration_minutes"`

	RateLimitRPS   int `koanf:"rate_limit_rps"`
	RateLimitBurst int `koanf:"rate_limit_burst"`
}

// Configuration validation errors.
var (
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrInvalidTokenExpiry = errors.New("JWT_EXPIRATION_MINUTES must be between 1 and 60")
	ErrInvalidPort        = errors.New("PORT must be a valid integer")
)

// Defaults for non-secret configuration.
const (
	DefaultPort                 = 8080
	DefaultEnv                  = "development"
	DefaultJWTExpirationMinutes = 30
	DefaultRateLimitRPS         = 10
	DefaultRateLimitBurst       = 20

	MinJWTExpirationMinutes = 1
	MaxJWTExpirationMinutes = 60
)

// TokenTTL returns the configured access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpirationMinutes) * time.Minute
}

// Load reads configuration from environment variables and an optional YAML
// file. It returns the loaded config and any validation errors (empty slice
// when the config is usable).
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var errs []error

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("load config file %s: %w", configFilePath, err)}
		}
	}

	port, err := envInt("PORT", k.Int("port"), DefaultPort)
	if err != nil {
		errs = append(errs, ErrInvalidPort)
		port = DefaultPort
	}

	expiry, err := envInt("JWT_EXPIRATION_MINUTES", k.Int("jwt_expiration_minutes"), DefaultJWTExpirationMinutes)
	if err != nil {
		errs = append(errs, ErrInvalidTokenExpiry)
		expiry = DefaultJWTExpirationMinutes
	}

	rps, err := envInt("RATE_LIMIT_RPS", k.Int("rate_limit_rps"), DefaultRateLimitRPS)
	if err != nil {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be a valid integer"))
		rps = DefaultRateLimitRPS
	}
	burst, err := envInt("RATE_LIMIT_BURST", k.Int("rate_limit_burst"), DefaultRateLimitBurst)
	if err != nil {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be a valid integer"))
		burst = DefaultRateLimitBurst
	}

	cfg := &Config{
		Port:                 port,
		Env:                  envString("ENV", k.String("env"), DefaultEnv),
		DatabaseURL:          envString("DATABASE_URL", k.String("database_url"), ""),
		JWTSecret:            envString("JWT_SECRET", k.String("jwt_secret"), ""),
		JWTExpirationMinutes: expiry,
		RateLimitRPS:         rps,
		RateLimitBurst:       burst,
	}

	errs = append(errs, cfg.Validate()...)
	return cfg, errs
}

// Validate checks bounds and required fields.
func (c *Config) Validate() []error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	if c.JWTExpirationMinutes < MinJWTExpirationMinutes || c.JWTExpirationMinutes > MaxJWTExpirationMinutes {
		errs = append(errs, ErrInvalidTokenExpiry)
	}
	return errs
}

// envString returns the env value if set, then the file value, then the default.
func envString(key, fileValue, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return fallback
}

// envInt returns the env value if set and parseable, then the file value,
// then the default. A set-but-unparseable env value is an error.
func envInt(key string, fileValue, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, err
		}
		return n, nil
	}
	if fileValue != 0 {
		return fileValue, nil
	}
	return fallback, nil
}
