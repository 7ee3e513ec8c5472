package jwt

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueRoundTrip(t *testing.T) {
	tok, err := Issue("s3cret", 42, "seller", 1)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	c := parsed.Claims.(*Claims)
	require.Equal(t, "seller", c.Role)
	id, err := c.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestIssueExpired(t *testing.T) {
	tok, err := Issue("s3cret", 1, "admin", -1)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}
