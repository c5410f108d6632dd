package repo

import (
	"context"
	"time"

	"github.com/avkuzmin/shop-backend/internal/models"
)

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) SetCategoryActive(ctx context.Context, id uint, active bool) error {
	return r.DB.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *GormRepo) CreateSubCategory(ctx context.Context, sub *models.SubCategory) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

func (r *GormRepo) GetSubCategoryByID(ctx context.Context, id uint) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.DB.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *GormRepo) GetSubCategoryByName(ctx context.Context, name string) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *GormRepo) ListSubCategories(ctx context.Context, categoryID uint, onlyActive bool) ([]models.SubCategory, error) {
	q := r.DB.WithContext(ctx).Where("category_id = ?", categoryID)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	var subs []models.SubCategory
	if err := q.Order("id ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *GormRepo) SetSubCategoryActive(ctx context.Context, id uint, active bool) error {
	return r.DB.WithContext(ctx).
		Model(&models.SubCategory{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *GormRepo) DeactivateSubCategories(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Model(&models.SubCategory{}).
		Where("id IN ? AND is_active = ?", ids, true).
		Update("is_active", false).Error
}

// ActivateSubCategoriesOfCategory flips every inactive direct subcategory of
// the category and returns the full list afterwards.
func (r *GormRepo) ActivateSubCategoriesOfCategory(ctx context.Context, categoryID uint) ([]models.SubCategory, error) {
	if err := r.DB.WithContext(ctx).
		Model(&models.SubCategory{}).
		Where("category_id = ? AND is_active = ?", categoryID, false).
		Update("is_active", true).Error; err != nil {
		return nil, err
	}
	return r.ListSubCategories(ctx, categoryID, false)
}

func (r *GormRepo) DeactivateProductsBySubCategories(ctx context.Context, subIDs []uint, now time.Time) error {
	if len(subIDs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("sub_category_id IN ? AND is_active = ?", subIDs, true).
		Updates(map[string]any{"is_active": false, "deleted_at": now}).Error
}
