package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptAndVerify(t *testing.T) {
	hashed, err := Crypt("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)

	assert.True(t, VerifyPassword("secret1", hashed))
	assert.False(t, VerifyPassword("secret2", hashed))
	assert.False(t, VerifyPassword("secret1", "not-a-hash"))
}

func TestCryptProducesDistinctHashes(t *testing.T) {
	h1, err := Crypt("secret1")
	require.NoError(t, err)
	h2, err := Crypt("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "bcrypt salts every hash")
}
