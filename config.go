package users

import (
	"os"
	"strconv"

	"github.com/goliatone/go-errors"
)

// EnvConfig is the environment-driven service configuration. The signing
// secret and listening port are the only values the deployment must provide;
// everything else has a sensible default.
type EnvConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	Audience        []string
	ContextKey      string
	TokenLookup     string
	Port            string
	DSN             string
}

var _ Config = (*EnvConfig)(nil)

// NewEnvConfig loads configuration from the environment. It fails when
// SECRET_KEY is unset since tokens cannot be signed without it.
func NewEnvConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{
		SigningKey:      os.Getenv("SECRET_KEY"),
		TokenExpiration: 24,
		Issuer:          envOr("TOKEN_ISSUER", "go-users"),
		ContextKey:      "user",
		TokenLookup:     "header:x-token",
		Port:            envOr("PORT", "8081"),
		DSN:             envOr("DSN", "file:database.sqlite?cache=shared&mode=rwc"),
	}

	if cfg.SigningKey == "" {
		return nil, errors.New("SECRET_KEY environment variable is required", errors.CategoryBadInput).
			WithTextCode("MISSING_SECRET_KEY")
	}

	if raw := os.Getenv("TOKEN_EXPIRATION"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, errors.New("TOKEN_EXPIRATION must be a positive number of hours", errors.CategoryBadInput).
				WithTextCode("INVALID_TOKEN_EXPIRATION").
				WithMetadata(map[string]any{"value": raw})
		}
		cfg.TokenExpiration = hours
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *EnvConfig) GetSigningKey() string   { return c.SigningKey }
func (c *EnvConfig) GetTokenExpiration() int { return c.TokenExpiration }
func (c *EnvConfig) GetIssuer() string       { return c.Issuer }
func (c *EnvConfig) GetAudience() []string   { return c.Audience }
func (c *EnvConfig) GetContextKey() string   { return c.ContextKey }
func (c *EnvConfig) GetTokenLookup() string  { return c.TokenLookup }

// GetListenAddr returns the address for the HTTP listener.
func (c *EnvConfig) GetListenAddr() string { return ":" + c.Port }

// GetDSN returns the sqlite connection string.
func (c *EnvConfig) GetDSN() string { return c.DSN }
