package tokens

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestAccessTokenRoundTrip(t *testing.T) {
	tkn, err := SignAccessToken("7", true, secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tkn, secret)
	require.NoError(t, err)
	require.Equal(t, "7", claims.Subject)
	require.True(t, claims.Fresh)
	require.Len(t, claims.ID, 36)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestAccessTokenNotFresh(t *testing.T) {
	tkn, err := SignAccessToken("7", false, secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tkn, secret)
	require.NoError(t, err)
	require.False(t, claims.Fresh)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tkn, err := SignRefreshToken("7", secret)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(tkn, secret)
	require.NoError(t, err)
	require.Equal(t, "7", claims.Subject)
	require.Len(t, claims.ID, 36)
}

func TestWrongSecretRejected(t *testing.T) {
	tkn, err := SignAccessToken("7", true, secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tkn, []byte("another-secret"))
	require.Error(t, err)
}

func TestUniqueJTIPerToken(t *testing.T) {
	a, err := SignAccessToken("7", true, secret)
	require.NoError(t, err)
	b, err := SignAccessToken("7", true, secret)
	require.NoError(t, err)

	ca, err := AccessClaimsFromToken(a, secret)
	require.NoError(t, err)
	cb, err := AccessClaimsFromToken(b, secret)
	require.NoError(t, err)
	require.NotEqual(t, ca.ID, cb.ID)
}
