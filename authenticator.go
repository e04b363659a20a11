package users

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
)

// Auther orchestrates login, logout, and token verification.
type Auther struct {
	users       Users
	tokens      TokenService
	revoked     TokenRevoker
	fallbackTTL time.Duration
	logger      Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator. The fallback TTL for revoked
// strings that do not parse as tokens equals the configured token lifetime.
func NewAuthenticator(users Users, tokens TokenService, revoked TokenRevoker, cfg Config) *Auther {
	fallbackTTL := 24 * time.Hour
	if cfg != nil && cfg.GetTokenExpiration() > 0 {
		fallbackTTL = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	return &Auther{
		users:       users,
		tokens:      tokens,
		revoked:     revoked,
		fallbackTTL: fallbackTTL,
		logger:      defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// Login verifies the credentials and issues a token. Unknown email, inactive
// account, and wrong password are indistinguishable to the caller.
func (s *Auther) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("login user lookup error", "error", err)
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during login")
	}

	if !user.Active {
		return nil, "", ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("login password comparison error", "error", err)
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to verify password")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("login token generation error", "error", err)
		return nil, "", err
	}

	return user, token, nil
}

// Logout revokes the literal token string. Any non-empty string is accepted;
// when it parses as one of our tokens the registry entry expires with the
// token, otherwise after the fallback TTL. Revoking twice is a no-op.
func (s *Auther) Logout(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrMissingToken
	}

	expiresAt := time.Now().Add(s.fallbackTTL)
	if claims, err := s.tokens.Validate(token); err == nil {
		if exp := claims.Expires(); !exp.IsZero() {
			expiresAt = exp
		}
	}

	s.revoked.Record(token, expiresAt)
	return nil
}

// Verify admits a token: signature and expiry first, then the revocation
// registry, then the subject must still exist and be active.
func (s *Auther) Verify(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	if s.revoked.IsRevoked(token) {
		return nil, ErrTokenRevoked
	}

	user, err := s.users.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrTokenSubjectInvalid
		}
		s.logger.Error("verify user lookup error", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve token subject")
	}

	if !user.Active {
		return nil, ErrTokenSubjectInvalid
	}

	return user, nil
}
