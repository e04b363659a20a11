package users_test

import (
	"strconv"
	"testing"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(expirationHours int) users.TokenService {
	return users.NewTokenService(
		[]byte("test-signing-key"),
		expirationHours,
		"test-issuer",
		nil,
		nil,
	)
}

func TestTokenServiceGenerateAndValidate(t *testing.T) {
	svc := newTestTokenService(1)
	user := &users.User{ID: 42, Username: "pepe", Email: "pepe@example.com"}

	token, err := svc.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID())
	assert.Equal(t, strconv.FormatInt(user.ID, 10), claims.Subject)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "every token carries a unique jti")
	assert.True(t, claims.Expires().After(claims.IssuedAt()))
}

func TestTokenServiceGenerateNilUser(t *testing.T) {
	svc := newTestTokenService(1)

	_, err := svc.Generate(nil)
	assert.Error(t, err)
}

func TestTokenServiceValidateExpired(t *testing.T) {
	svc := newTestTokenService(-1)
	user := &users.User{ID: 7}

	token, err := svc.Generate(user)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, users.IsTokenExpiredError(err))
}

func TestTokenServiceValidateWrongKey(t *testing.T) {
	issuer := newTestTokenService(1)
	user := &users.User{ID: 7}

	token, err := issuer.Generate(user)
	require.NoError(t, err)

	other := users.NewTokenService([]byte("a-different-key"), 1, "test-issuer", nil, nil)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenServiceValidateGarbage(t *testing.T) {
	svc := newTestTokenService(1)

	_, err := svc.Validate("not.a.token")
	require.Error(t, err)
	assert.True(t, users.IsMalformedError(err))
}

func TestTokenServiceTokensAreUnique(t *testing.T) {
	svc := newTestTokenService(1)
	user := &users.User{ID: 1}

	first, err := svc.Generate(user)
	require.NoError(t, err)
	second, err := svc.Generate(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
