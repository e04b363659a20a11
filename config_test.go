package users_test

import (
	"testing"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvConfigDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-signing-key")
	t.Setenv("TOKEN_EXPIRATION", "")
	t.Setenv("TOKEN_ISSUER", "")
	t.Setenv("PORT", "")
	t.Setenv("DSN", "")

	cfg, err := users.NewEnvConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-signing-key", cfg.GetSigningKey())
	assert.Equal(t, 24, cfg.GetTokenExpiration())
	assert.Equal(t, "go-users", cfg.GetIssuer())
	assert.Equal(t, "user", cfg.GetContextKey())
	assert.Equal(t, "header:x-token", cfg.GetTokenLookup())
	assert.Equal(t, ":8081", cfg.GetListenAddr())
	assert.Contains(t, cfg.GetDSN(), "database.sqlite")
}

func TestNewEnvConfigRequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := users.NewEnvConfig()
	require.Error(t, err)
}

func TestNewEnvConfigOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-signing-key")
	t.Setenv("TOKEN_EXPIRATION", "72")
	t.Setenv("TOKEN_ISSUER", "accounts")
	t.Setenv("PORT", "9000")

	cfg, err := users.NewEnvConfig()
	require.NoError(t, err)

	assert.Equal(t, 72, cfg.GetTokenExpiration())
	assert.Equal(t, "accounts", cfg.GetIssuer())
	assert.Equal(t, ":9000", cfg.GetListenAddr())
}

func TestNewEnvConfigBadExpiration(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-signing-key")

	for _, raw := range []string{"abc", "0", "-5"} {
		t.Setenv("TOKEN_EXPIRATION", raw)
		_, err := users.NewEnvConfig()
		assert.Error(t, err, "TOKEN_EXPIRATION=%s", raw)
	}
}
