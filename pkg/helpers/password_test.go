package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Secret123", hash)

	assert.True(t, h.Verify(hash, "Secret123"))
	assert.False(t, h.Verify(hash, "WrongPass1"))
	assert.False(t, h.Verify("not-a-hash", "Secret123"))
}

func TestBcryptHasherZeroValueUsesDefaultCost(t *testing.T) {
	h := BcryptHasher{}
	assert.Equal(t, bcrypt.DefaultCost, h.cost())

	h = BcryptHasher{Cost: 6}
	assert.Equal(t, 6, h.cost())
}

func TestBcryptHashesAreSalted(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	a, err := h.Hash("Secret123")
	require.NoError(t, err)
	b, err := h.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
