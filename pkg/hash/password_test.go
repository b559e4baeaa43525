package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256HasherIsDeterministic(t *testing.T) {
	hasher := NewSHA256Hasher("salt")

	first, err := hasher.Hash("super-secret")
	require.NoError(t, err)
	second, err := hasher.Hash("super-secret")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, "super-secret", first)
}

func TestSHA256HasherSaltChangesDigest(t *testing.T) {
	a, err := NewSHA256Hasher("salt-a").Hash("super-secret")
	require.NoError(t, err)
	b, err := NewSHA256Hasher("salt-b").Hash("super-secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
