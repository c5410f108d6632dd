package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avkuzmin/shop-backend/internal/models"
	"github.com/avkuzmin/shop-backend/internal/repo"
	"github.com/avkuzmin/shop-backend/internal/transport"
)

type CustomerService struct {
	Repo *repo.GormRepo
}

func (s *CustomerService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ConfirmEmail stands in for the link from the confirmation mail.
func (s *CustomerService) ConfirmEmail(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	if user.IsConfirmedEmail {
		return nil, fmt.Errorf("%w: email already confirmed", ErrConflict)
	}

	if err := s.Repo.SetEmailConfirmed(ctx, userID); err != nil {
		return nil, err
	}
	user.IsConfirmedEmail = true
	return user, nil
}

func (s *CustomerService) UpsertAddress(ctx context.Context, userID uuid.UUID, req transport.UpsertAddressRequest) (*models.UserAddress, error) {
	if req.City == "" || req.StreetAddress == "" {
		return nil, fmt.Errorf("%w: city and street_address required", ErrValidation)
	}

	addr := &models.UserAddress{
		UserID:           userID,
		City:             req.City,
		StreetAddress:    req.StreetAddress,
		ApartmentAddress: req.ApartmentAddress,
		PostalCode:       req.PostalCode,
	}
	if err := s.Repo.UpsertUserAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}
