package users_test

import (
	"testing"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := users.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery", hash)

	again, err := users.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "bcrypt salts every hash")
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := users.HashPassword("")
	assert.ErrorIs(t, err, users.ErrNoEmptyString)
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := users.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.NoError(t, users.ComparePasswordAndHash("correct horse battery", hash))
	assert.ErrorIs(t,
		users.ComparePasswordAndHash("wrong horse", hash),
		users.ErrMismatchedHashAndPassword,
	)
}
