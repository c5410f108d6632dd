package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkuzmin/shop-backend/internal/models"
	"github.com/avkuzmin/shop-backend/internal/repo"
	"github.com/avkuzmin/shop-backend/internal/transport"
	"github.com/avkuzmin/shop-backend/pkg/tokens"
)

func newAuthService(t *testing.T) (*AuthService, *repo.GormRepo) {
	t.Helper()
	r := newTestRepo(t)
	return &AuthService{
		Repo:          r,
		JWTSecret:     []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}, r
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsConfirmedEmail)

	_, err = svc.Register(ctx, transport.RegisterRequest{Email: "user@example.com", Password: "password123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Password: "password123"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, transport.RegisterRequest{Email: "user@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, transport.LoginRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleUser, claims.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "user@example.com", Password: "wrongpassword"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, r := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, r.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "user@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_StaffRole(t *testing.T) {
	svc, r := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, r.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_staff", true).Error)

	pair, err := svc.Login(ctx, transport.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)

	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleStaff, claims.Role)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, r := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	pair, err := svc.Login(ctx, transport.LoginRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// the old token is revoked and can't be replayed
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var stored int64
	require.NoError(t, r.DB.Model(&models.RefreshToken{}).Where("revoked = ?", false).Count(&stored).Error)
	assert.EqualValues(t, 1, stored)
}

func TestRefresh_InvalidToken(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogOut(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	// empty and garbage tokens are silently ignored
	require.NoError(t, svc.LogOut(ctx, ""))
	require.NoError(t, svc.LogOut(ctx, "garbage"))

	_, err := svc.Register(ctx, transport.RegisterRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	pair, err := svc.Login(ctx, transport.LoginRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogOut(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
