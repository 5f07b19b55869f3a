package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScryptHasherRoundTrip(t *testing.T) {
	hasher := NewScryptHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, hasher.Check("correct horse battery staple", hash))
	assert.False(t, hasher.Check("wrong password", hash))
}

func TestScryptHasherFormat(t *testing.T) {
	hasher := NewScryptHasher()

	hash, err := hasher.Hash("secret")
	require.NoError(t, err)

	parts := strings.Split(hash, ".")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], scryptKeyLen*2) // hex doubles the length
	assert.Len(t, parts[1], saltLen*2)
}

func TestScryptHasherUniqueSalts(t *testing.T) {
	hasher := NewScryptHasher()

	first, err := hasher.Hash("secret")
	require.NoError(t, err)
	second, err := hasher.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("secret", first))
	assert.True(t, hasher.Check("secret", second))
}

func TestScryptHasherRejectsMalformedHash(t *testing.T) {
	hasher := NewScryptHasher()

	assert.False(t, hasher.Check("secret", "not-a-hash"))
	assert.False(t, hasher.Check("secret", "zz.zz"))
	assert.False(t, hasher.Check("secret", ""))
}
