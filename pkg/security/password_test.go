package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("motdepasse")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse", hash)

	assert.NoError(t, hasher.Compare(hash, "motdepasse"))
	assert.Error(t, hasher.Compare(hash, "autrechose"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("court")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestInvalidCostFallsBackToDefault(t *testing.T) {
	hasher := NewBcryptHasher(-1)

	hash, err := hasher.Hash("motdepasse")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "motdepasse"))
}
