package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avkuzmin/shop-backend/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection, so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, AutoMigrate(db))
	return New(db)
}

func seedProduct(t *testing.T, r *GormRepo, quantity uint) *models.Product {
	t.Helper()
	cat := &models.Category{Name: "Electronics", IsActive: true}
	require.NoError(t, r.DB.Create(cat).Error)
	sub := &models.SubCategory{Name: "Phones", CategoryID: cat.ID, IsActive: true}
	require.NoError(t, r.DB.Create(sub).Error)
	prod := &models.Product{SubCategoryID: sub.ID, Name: "Phone X", Brand: "PhoneCo", Price: 500, Quantity: quantity, IsActive: true}
	require.NoError(t, r.DB.Create(prod).Error)
	return prod
}

func TestDecrementStock(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	prod := seedProduct(t, r, 5)

	ok, err := r.DecrementStock(ctx, prod.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	// exactly the remainder is still allowed
	ok, err = r.DecrementStock(ctx, prod.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// zero stock refuses any further decrement
	ok, err = r.DecrementStock(ctx, prod.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	var dbProd models.Product
	require.NoError(t, r.DB.First(&dbProd, prod.ID).Error)
	assert.EqualValues(t, 0, dbProd.Quantity)
}

func TestDecrementStock_NeverOversells(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	prod := seedProduct(t, r, 5)

	ok, err := r.DecrementStock(ctx, prod.ID, 6)
	require.NoError(t, err)
	assert.False(t, ok)

	var dbProd models.Product
	require.NoError(t, r.DB.First(&dbProd, prod.ID).Error)
	assert.EqualValues(t, 5, dbProd.Quantity)
}

func TestIsDuplicate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateCategory(ctx, &models.Category{Name: "Electronics", IsActive: true}))
	err := r.CreateCategory(ctx, &models.Category{Name: "Electronics", IsActive: true})
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
	assert.False(t, IsNotFound(err))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	err := r.WithTx(ctx, func(tx *GormRepo) error {
		if err := tx.CreateCategory(ctx, &models.Category{Name: "Electronics", IsActive: true}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	_, err = r.GetCategoryByName(ctx, "Electronics")
	assert.True(t, IsNotFound(err))
}
