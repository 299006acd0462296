package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword([]byte("pw123456"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("pw123456"), hash)

	assert.True(t, CheckPassword(hash, []byte("pw123456")))
	assert.False(t, CheckPassword(hash, []byte("pw1234567")))
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword([]byte("secret"), 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(bytes.Repeat([]byte("a"), MaxPasswordBytes+1), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	assert.False(t, CheckPassword([]byte("not-a-hash"), []byte("x")))
}
