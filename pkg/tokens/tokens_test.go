package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("access-secret")

	token, err := NewAccessToken(RoleStaff, "user-1", time.Now().Add(time.Minute), secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	token, err := NewAccessToken(RoleUser, "user-1", time.Now().Add(time.Minute), []byte("right"))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestAccessToken_Expired(t *testing.T) {
	secret := []byte("access-secret")
	token, err := NewAccessToken(RoleUser, "user-1", time.Now().Add(-time.Minute), secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, secret)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	secret := []byte("refresh-secret")

	token, jti, err := NewRefreshToken("user-1", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := RefreshClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, jti, claims.ID)
}

func TestRefreshToken_UniqueJTI(t *testing.T) {
	secret := []byte("refresh-secret")
	_, first, err := NewRefreshToken("user-1", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)
	_, second, err := NewRefreshToken("user-1", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
