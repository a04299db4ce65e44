package users

import (
	"os"
	"strconv"

	"github.com/goliatone/go-errors"
)

// EnvConfig is a Config sourced from environment variables:
//
//	TOKEN_SECRET     signing key, required
//	TOKEN_ALGORITHM  signing method, default HS256
//	TOKEN_TTL        token lifetime in seconds, default 3600
//	ENVIRONMENT      deployment environment, default development
//	DATABASE_URL     sqlite DSN; empty selects the in-memory store
type EnvConfig struct {
	SigningKey    string
	SigningMethod string
	TokenTTL      int
	Environment   string
	DatabaseURL   string
}

// NewConfigFromEnv reads the process environment into an EnvConfig.
func NewConfigFromEnv() (*EnvConfig, error) {
	cfg := &EnvConfig{
		SigningKey:    os.Getenv("TOKEN_SECRET"),
		SigningMethod: os.Getenv("TOKEN_ALGORITHM"),
		Environment:   os.Getenv("ENVIRONMENT"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}

	if cfg.SigningKey == "" {
		return nil, errors.New("TOKEN_SECRET is required", errors.CategoryBadInput)
	}

	if cfg.SigningMethod == "" {
		cfg.SigningMethod = DefaultSigningMethod
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "TOKEN_TTL must be an integer number of seconds")
		}
		cfg.TokenTTL = ttl
	} else {
		cfg.TokenTTL = DefaultTokenTTL
	}

	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string    { return c.SigningKey }
func (c *EnvConfig) GetSigningMethod() string { return c.SigningMethod }
func (c *EnvConfig) GetTokenTTL() int         { return c.TokenTTL }
func (c *EnvConfig) GetEnvironment() string   { return c.Environment }
func (c *EnvConfig) GetDatabaseURL() string   { return c.DatabaseURL }
