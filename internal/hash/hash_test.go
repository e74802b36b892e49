package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", h)

	require.True(t, CheckPassword(h, "secret123"))
	require.False(t, CheckPassword(h, "wrong"))
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("secret123")
	require.NoError(t, err)
	b, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
