package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("Password123")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123", hashed)

	assert.NoError(t, h.Compare(hashed, "Password123"))
	assert.ErrorIs(t, h.Compare(hashed, "password123"), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Compare("not-a-bcrypt-hash", "Password123"), ErrPasswordMismatch)

	again, err := h.Hash("Password123")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "hashes are salted")
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
