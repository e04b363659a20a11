// Package tokenware is the request-admission gate for protected routes: it
// extracts the raw token from the request, hands it to the configured
// Verifier, and attaches the verified identity to the request before the
// handler runs.
package tokenware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	defaultTokenLookup = "header:x-token"
	// ErrTokenMissing is returned when no token can be extracted from the request
	ErrTokenMissing = errors.New("no token provided in the request")
)

// Verifier validates a raw token and resolves its identity. It mirrors
// Authenticator.Verify from the root package without importing it.
type Verifier interface {
	Verify(ctx context.Context, token string) (any, error)
}

// VerifierFunc adapts a function into a Verifier.
type VerifierFunc func(ctx context.Context, token string) (any, error)

// Verify satisfies the Verifier interface.
func (f VerifierFunc) Verify(ctx context.Context, token string) (any, error) {
	if f == nil {
		return nil, ErrTokenMissing
	}
	return f(ctx, token)
}

type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool
	// Verifier is required
	Verifier Verifier
	// ErrorHandler renders admission failures; the default emits JSON with a
	// msg field and a 401 status
	ErrorHandler func(*fiber.Ctx, error) error
	// ContextKey is the fiber.Locals key for the verified identity
	ContextKey string
	// TokenLookup is a comma-separated list of sources in the form
	// "header:<name>", "query:<name>", "param:<name>", "cookie:<name>"
	TokenLookup string
	// AuthScheme is the expected header value prefix; empty means the header
	// carries the raw token
	AuthScheme string
	// ContextEnricher propagates the identity to the standard Go context
	ContextEnricher func(context.Context, any) context.Context
}

// New builds the admission middleware.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := extractToken(c, cfg.getExtractors())
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		identity, err := cfg.Verifier.Verify(c.UserContext(), raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, identity)

		if cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), identity))
		}

		return c.Next()
	}
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Verifier == nil {
		panic("USERS: token middleware configuration: Verifier is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			if errors.Is(err, ErrTokenMissing) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"msg": "No token provided in the request",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "Token not valid",
			})
		}
	}

	return cfg
}

type tokenExtractor func(c *fiber.Ctx) (string, error)

func extractToken(c *fiber.Ctx, extractors []tokenExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(c)
		if raw != "" && err == nil {
			break
		}
	}

	if raw == "" && err == nil {
		err = ErrTokenMissing
	}

	return raw, err
}

func (cfg *Config) getExtractors() []tokenExtractor {
	extractors := make([]tokenExtractor, 0)

	// header:x-token,query:token,cookie:token
	for _, rootPart := range strings.Split(cfg.TokenLookup, ",") {
		parts := strings.SplitN(strings.TrimSpace(rootPart), ":", 2)
		if len(parts) != 2 {
			continue
		}
		source, name := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

		switch source {
		case "header":
			extractors = append(extractors, tokenFromHeader(name, cfg.AuthScheme))
		case "query":
			extractors = append(extractors, tokenFromQuery(name))
		case "param":
			extractors = append(extractors, tokenFromParam(name))
		case "cookie":
			extractors = append(extractors, tokenFromCookie(name))
		}
	}

	return extractors
}

// tokenFromHeader returns a function that extracts the token from the named
// request header. With an empty auth scheme the header value is the token.
func tokenFromHeader(header, authScheme string) tokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		value := strings.TrimSpace(c.Get(header))
		if value == "" {
			return "", ErrTokenMissing
		}

		if authScheme == "" {
			return value, nil
		}

		l := len(authScheme)
		if len(value) > l+1 && strings.EqualFold(value[:l], authScheme) {
			return strings.TrimSpace(value[l:]), nil
		}
		return "", ErrTokenMissing
	}
}

func tokenFromQuery(param string) tokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Query(param)
		if token == "" {
			return "", ErrTokenMissing
		}
		return token, nil
	}
}

func tokenFromParam(param string) tokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Params(param)
		if token == "" {
			return "", ErrTokenMissing
		}
		return token, nil
	}
}

func tokenFromCookie(name string) tokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrTokenMissing
		}
		return token, nil
	}
}
