package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avkuzmin/shop-backend/internal/models"
	"github.com/avkuzmin/shop-backend/internal/mykafka"
	"github.com/avkuzmin/shop-backend/internal/repo"
	"github.com/avkuzmin/shop-backend/internal/transport"
	"github.com/avkuzmin/shop-backend/pkg/hash"
	"github.com/avkuzmin/shop-backend/pkg/logging"
	"github.com/avkuzmin/shop-backend/pkg/tokens"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *mykafka.Producer
}

func roleOf(user *models.User) string {
	if user.IsStaff {
		return tokens.RoleStaff
	}
	return tokens.RoleUser
}

// requestConfirmationEmail hands the address off to the mail pipeline. Send
// failures are logged and never surfaced to the caller.
func (s *AuthService) requestConfirmationEmail(ctx context.Context, user *models.User) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := s.Producer.PublishEvent(pubCtx, "email_events", user.Email, map[string]any{
		"type":   "confirmation_email_requested",
		"userID": user.ID.String(),
		"email":  user.Email,
	})
	if err != nil {
		logging.FromContext(ctx).Error("confirmation email request failed", "email", user.Email, "error", err)
	}
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password too short", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: pwHash,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return nil, err
	}

	s.requestConfirmationEmail(ctx, user)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.TokenPairResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive || !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return s.issuePair(ctx, user)
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (*transport.TokenPairResponse, error) {
	accessExp := time.Now().Add(accessTTL)
	accessToken, err := tokens.NewAccessToken(roleOf(user), user.ID.String(), accessExp, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(refreshTTL)
	refreshToken, _, err := tokens.NewRefreshToken(user.ID.String(), refreshExp, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.AddRefreshToken(ctx, refreshToken, s.RefreshSecret); err != nil {
		return nil, err
	}

	return &transport.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp.Unix(),
		RefreshExp:   refreshExp.Unix(),
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*transport.TokenPairResponse, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
		}
		return nil, err
	}

	accessExp := time.Now().Add(accessTTL)
	accessToken, err := tokens.NewAccessToken(roleOf(user), user.ID.String(), accessExp, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	refreshExp := time.Now().Add(refreshTTL)
	newRefresh, _, err := tokens.NewRefreshToken(user.ID.String(), refreshExp, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, newRefresh, s.RefreshSecret); err != nil {
		return nil, fmt.Errorf("%w: refresh token expired or revoked", ErrUnauthorized)
	}

	return &transport.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		AccessExp:    accessExp.Unix(),
		RefreshExp:   refreshExp.Unix(),
	}, nil
}

func (s *AuthService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil || claims == nil {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, claims.ID)
}
