package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avkuzmin/shop-backend/internal/models"
	"github.com/avkuzmin/shop-backend/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// one connection, so every query sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repo.AutoMigrate(db))
	return repo.New(db)
}

func newCatalogService(t *testing.T, depth CascadeDepth) (*CatalogService, *repo.GormRepo) {
	t.Helper()
	r := newTestRepo(t)
	return &CatalogService{Repo: r, Depth: depth}, r
}

func createBuyer(t *testing.T, r *repo.GormRepo, confirmed, withAddress bool) *models.User {
	t.Helper()

	user := &models.User{
		ID:               uuid.New(),
		Email:            uuid.NewString() + "@example.com",
		PasswordHash:     "x",
		IsActive:         true,
		IsConfirmedEmail: confirmed,
	}
	require.NoError(t, r.DB.Create(user).Error)

	if withAddress {
		addr := &models.UserAddress{
			UserID:           user.ID,
			City:             "Almaty",
			StreetAddress:    "Abay 10",
			ApartmentAddress: "5",
			PostalCode:       "050000",
		}
		require.NoError(t, r.DB.Create(addr).Error)
		user.Address = addr
	}
	return user
}

func seedCatalog(t *testing.T, r *repo.GormRepo) (*models.Category, *models.SubCategory, *models.Product) {
	t.Helper()

	cat := &models.Category{Name: "Electronics", IsActive: true}
	require.NoError(t, r.DB.Create(cat).Error)

	sub := &models.SubCategory{Name: "Phones", CategoryID: cat.ID, IsActive: true}
	require.NoError(t, r.DB.Create(sub).Error)

	prod := &models.Product{
		SubCategoryID: sub.ID,
		Name:          "Phone X",
		Brand:         "PhoneCo",
		Description:   "flagship",
		Price:         500,
		Quantity:      100,
		IsActive:      true,
	}
	require.NoError(t, r.DB.Create(prod).Error)

	return cat, sub, prod
}
