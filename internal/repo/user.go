package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avkuzmin/shop-backend/internal/models"
	"github.com/avkuzmin/shop-backend/pkg/tokens"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Preload("Address").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) SetEmailConfirmed(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("is_confirmed_email", true).Error
}

func (r *GormRepo) UpsertUserAddress(ctx context.Context, addr *models.UserAddress) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserAddress
		err := tx.Where("user_id = ?", addr.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(addr).Error
		}
		if err != nil {
			return err
		}

		existing.City = addr.City
		existing.StreetAddress = addr.StreetAddress
		existing.ApartmentAddress = addr.ApartmentAddress
		existing.PostalCode = addr.PostalCode
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*addr = existing
		return nil
	})
}

func (r *GormRepo) AddRefreshToken(ctx context.Context, refreshToken string, refreshSecret []byte) error {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, refreshSecret)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Create(&models.RefreshToken{
		Token:     tokens.Sha256Hex(refreshToken),
		UserID:    userID,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time.Unix(),
	}).Error
}

func (r *GormRepo) refreshExpiredOrRevoked(db *gorm.DB, jti string) (bool, error) {
	var refresh models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&refresh).Error; err != nil {
		return false, err
	}
	if refresh.ExpiresAt < time.Now().Unix() || refresh.Revoked {
		return true, nil
	}
	return false, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, jti string) error {
	return r.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}

// RotateRefreshToken revokes the old token and stores the new one in a single
// transaction.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI string, newToken string, refreshSecret []byte) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expired, err := r.refreshExpiredOrRevoked(tx, oldJTI)
		if err != nil {
			return err
		}
		if expired {
			return errors.New("token expired or revoked")
		}

		if err := tx.Model(&models.RefreshToken{}).
			Where("jti = ?", oldJTI).
			Update("revoked", true).Error; err != nil {
			return err
		}

		return (&GormRepo{DB: tx}).AddRefreshToken(ctx, newToken, refreshSecret)
	})
}
