package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkuzmin/shop-backend/internal/models"
	"github.com/avkuzmin/shop-backend/internal/transport"
)

func TestCreateCategory_DuplicateName(t *testing.T) {
	svc, _ := newCatalogService(t, CascadeSubCategories)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Electronics"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateSubCategory_ParentDoesNotExist(t *testing.T) {
	svc, _ := newCatalogService(t, CascadeSubCategories)

	_, err := svc.CreateSubCategory(context.Background(), transport.CreateSubCategoryRequest{
		Name:       "Phones",
		CategoryID: 42,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateProduct_SubCategoryDoesNotExist(t *testing.T) {
	svc, _ := newCatalogService(t, CascadeSubCategories)

	_, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		SubCategoryID: 42,
		Name:          "Phone X",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeactivateCategory_CascadesToSubCategories(t *testing.T) {
	svc, r := newCatalogService(t, CascadeSubCategories)
	ctx := context.Background()
	cat, sub, prod := seedCatalog(t, r)

	got, err := svc.DeactivateCategory(ctx, cat.Name)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	var dbSub models.SubCategory
	require.NoError(t, r.DB.First(&dbSub, sub.ID).Error)
	assert.False(t, dbSub.IsActive)

	// subcategory depth leaves products alone
	var dbProd models.Product
	require.NoError(t, r.DB.First(&dbProd, prod.ID).Error)
	assert.True(t, dbProd.IsActive)
	assert.Nil(t, dbProd.DeletedAt)
}

func TestDeactivateCategory_AlreadyDisabled(t *testing.T) {
	svc, r := newCatalogService(t, CascadeSubCategories)
	ctx := context.Background()
	cat, _, _ := seedCatalog(t, r)

	_, err := svc.DeactivateCategory(ctx, cat.Name)
	require.NoError(t, err)

	_, err = svc.DeactivateCategory(ctx, cat.Name)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeactivateCategory_NotFound(t *testing.T) {
	svc, _ := newCatalogService(t, CascadeSubCategories)

	_, err := svc.DeactivateCategory(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeactivateCategory_FullDepthDisablesProducts(t *testing.T) {
	svc, r := newCatalogService(t, CascadeFull)
	ctx := context.Background()
	cat, _, prod := seedCatalog(t, r)

	_, err := svc.DeactivateCategory(ctx, cat.Name)
	require.NoError(t, err)

	var dbProd models.Product
	require.NoError(t, r.DB.First(&dbProd, prod.ID).Error)
	assert.False(t, dbProd.IsActive)
	require.NotNil(t, dbProd.DeletedAt)
}

func TestDeactivateCategory_CategoryOnlyDepth(t *testing.T) {
	svc, r := newCatalogService(t, CascadeCategoryOnly)
	ctx := context.Background()
	cat, sub, _ := seedCatalog(t, r)

	_, err := svc.DeactivateCategory(ctx, cat.Name)
	require.NoError(t, err)

	var dbSub models.SubCategory
	require.NoError(t, r.DB.First(&dbSub, sub.ID).Error)
	assert.True(t, dbSub.IsActive)
}

func TestActivateCategory_DoesNotTouchChildren(t *testing.T) {
	svc, r := newCatalogService(t, CascadeSubCategories)
	ctx := context.Background()
	cat, sub, _ := seedCatalog(t, r)

	_, err := svc.DeactivateCategory(ctx, cat.Name)
	require.NoError(t, err)

	got, err := svc.ActivateCategory(ctx, cat.Name)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	var dbSub models.SubCategory
	require.NoError(t, r.DB.First(&dbSub, sub.ID).Error)
	assert.False(t, dbSub.IsActive)

	_, err = svc.ActivateCategory(ctx, cat.Name)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestActivateSubCategory_ParentMustBeActive(t *testing.T) {
	svc, r := newCatalogService(t, CascadeSubCategories)
	ctx := context.Background()
	cat, sub, _ := seedCatalog(t, r)

	_, err := svc.DeactivateCategory(ctx, cat.Name)
	require.NoError(t, err)

	_, err = svc.ActivateSubCategory(ctx, sub.Name)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ActivateCategory(ctx, cat.Name)
	require.NoError(t, err)

	got, err := svc.ActivateSubCategory(ctx, sub.Name)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	_, err = svc.ActivateSubCategory(ctx, sub.Name)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeactivateSubCategory_FullDepthDisablesProducts(t *testing.T) {
	svc, r := newCatalogService(t, CascadeFull)
	ctx := context.Background()
	_, sub, prod := seedCatalog(t, r)

	got, err := svc.DeactivateSubCategory(ctx, sub.Name)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	var dbProd models.Product
	require.NoError(t, r.DB.First(&dbProd, prod.ID).Error)
	assert.False(t, dbProd.IsActive)

	_, err = svc.DeactivateSubCategory(ctx, sub.Name)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestActivateSubCategories_Bulk(t *testing.T) {
	svc, r := newCatalogService(t, CascadeSubCategories)
	ctx := context.Background()
	cat, _, prod := seedCatalog(t, r)

	second := &models.SubCategory{Name: "Laptops", CategoryID: cat.ID, IsActive: true}
	require.NoError(t, r.DB.Create(second).Error)

	_, err := svc.DeactivateCategory(ctx, cat.Name)
	require.NoError(t, err)

	// bulk activation requires an active parent
	_, err = svc.ActivateSubCategories(ctx, cat.Name)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ActivateCategory(ctx, cat.Name)
	require.NoError(t, err)

	resp, err := svc.ActivateSubCategories(ctx, cat.Name)
	require.NoError(t, err)
	assert.Equal(t, cat.Name, resp.ParentCategory)
	require.Len(t, resp.SubCategories, 2)
	for _, sub := range resp.SubCategories {
		assert.True(t, sub.IsActive)
	}

	// products are not part of the bulk activation
	var dbProd models.Product
	require.NoError(t, r.DB.First(&dbProd, prod.ID).Error)
	assert.True(t, dbProd.IsActive)
}

func TestSetProductActive_Conflicts(t *testing.T) {
	svc, r := newCatalogService(t, CascadeSubCategories)
	ctx := context.Background()
	_, _, prod := seedCatalog(t, r)

	_, err := svc.SetProductActive(ctx, transport.ProductStatusRequest{ID: prod.ID, IsActive: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.SetProductActive(ctx, transport.ProductStatusRequest{ID: prod.ID, IsActive: false})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.DeletedAt)

	_, err = svc.SetProductActive(ctx, transport.ProductStatusRequest{ID: prod.ID, IsActive: false})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	got, err = svc.SetProductActive(ctx, transport.ProductStatusRequest{ID: prod.ID, IsActive: true})
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.DeletedAt)
}

func TestUpdateProduct(t *testing.T) {
	svc, r := newCatalogService(t, CascadeSubCategories)
	ctx := context.Background()
	_, _, prod := seedCatalog(t, r)

	newPrice := 450.0
	newQuantity := uint(80)
	got, err := svc.UpdateProduct(ctx, transport.UpdateProductRequest{
		ID:       prod.ID,
		Price:    &newPrice,
		Quantity: &newQuantity,
	})
	require.NoError(t, err)
	assert.Equal(t, 450.0, got.Price)
	assert.EqualValues(t, 80, got.Quantity)
	assert.Equal(t, prod.Name, got.Name)

	badPrice := -1.0
	_, err = svc.UpdateProduct(ctx, transport.UpdateProductRequest{ID: prod.ID, Price: &badPrice})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateProduct(ctx, transport.UpdateProductRequest{ID: 9999})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
